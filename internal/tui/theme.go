package tui

import (
	"os"
	"strconv"
	"strings"

	"countdown-cli/internal/model"
	"countdown-cli/internal/validate"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The editor must stay readable on light and dark terminals, so colors are adaptive and
// "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorSurfaceBg  lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorControlBg  lipgloss.TerminalColor = ac("252", "235")
	colorInputBg    lipgloss.TerminalColor = ac("254", "234")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg   lipgloss.TerminalColor = ac("255", "235")
	colorError      lipgloss.TerminalColor = ac("160", "203")
	colorDirty      lipgloss.TerminalColor = ac("166", "214")
	colorBorder     lipgloss.TerminalColor = ac("250", "243")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError).Bold(true)
}

func styleTab(active bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 2)
	if active {
		return st.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	}
	return st.Foreground(colorSurfaceFg).Background(colorControlBg)
}

// swatchColor converts a device color ("0xRRGGBB") to a terminal color. Anything that is
// not a valid device color shows the default countdown color.
func swatchColor(forecolor string) lipgloss.Color {
	if !validate.IsHexColor(forecolor) {
		forecolor = model.DefaultForecolor
	}
	return lipgloss.Color("#" + forecolor[2:])
}

func renderSwatch(forecolor string) string {
	return lipgloss.NewStyle().Background(swatchColor(forecolor)).Render("  ")
}

// applyColorProfilePreference sets Lip Gloss's color profile for the editor.
//
// termenv.EnvColorProfile honors CLICOLOR which can disable colors in a TUI; only NO_COLOR
// is respected here and otherwise the terminal's capabilities win.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// TERM/COLORTERM may claim more than the detector reports (macOS Terminal.app).
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection for adaptive colors.
//
// Priority:
// 1) COUNTDOWN_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("COUNTDOWN_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
