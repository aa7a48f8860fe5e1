package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a text input as exactly one line of width bodyW on the input
// background.
func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// A newline in the view would wrap inside the modal and look like inserted text.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

// fitLine pads or cuts s to exactly width cells.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	switch {
	case w < width:
		return s + strings.Repeat(" ", width-w)
	case w > width:
		if width == 1 {
			return xansi.Cut(s, 0, 1)
		}
		return xansi.Cut(s, 0, width-1) + "…"
	}
	return s
}

// normalizePane makes s exactly height lines of at most width cells.
func normalizePane(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	if width > 0 {
		for i, ln := range lines {
			lines[i] = fitLine(ln, width)
		}
	}
	return strings.Join(lines, "\n")
}
