package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func (m appModel) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m appModel) View() string {
	w, h := m.size()

	header := m.viewHeader(w)
	footer := m.viewFooter(w)
	bodyH := h - lipgloss.Height(header) - lipgloss.Height(footer)

	var body string
	switch m.modal {
	case modalEditEvent:
		body = lipgloss.Place(w, bodyH, lipgloss.Center, lipgloss.Center, m.edit.view(w))
	case modalConfirmQuit:
		body = lipgloss.Place(w, bodyH, lipgloss.Center, lipgloss.Center,
			renderConfirmModal(w, "Quit?", unsavedChangesMsg, "Quit", "Cancel", m.confirmFocus))
	case modalConfirmOpen:
		body = lipgloss.Place(w, bodyH, lipgloss.Center, lipgloss.Center,
			renderConfirmModal(w, "Open another file?", unsavedChangesMsg, "Open", "Cancel", m.confirmFocus))
	case modalPickFile:
		body = renderModalBox(w, "Open config file", m.picker.View())
	default:
		if m.tab == tabSecrets {
			body = "\n" + m.secrets.view(w)
		} else {
			body = m.viewEvents(w, bodyH)
		}
	}

	return strings.Join([]string{
		header,
		normalizePane(body, w, bodyH),
		footer,
	}, "\n")
}

func (m appModel) viewHeader(w int) string {
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		styleTab(m.tab == tabEvents).Render(tabEvents.String()+" ("+strconv.Itoa(m.doc.Len())+")"),
		" ",
		styleTab(m.tab == tabSecrets).Render(tabSecrets.String()),
	)
	file := m.file.Abs()
	if m.doc.IsDirty() {
		file = lipgloss.NewStyle().Foreground(colorDirty).Render(glyphDirty()) + " " + file
	}
	right := styleMuted().Render(file)
	gap := w - lipgloss.Width(tabs) - lipgloss.Width(right) - 1
	if gap < 1 {
		return fitLine(tabs, w) + "\n"
	}
	return tabs + strings.Repeat(" ", gap) + right + "\n"
}

func (m appModel) viewEvents(w, h int) string {
	if m.doc.Len() == 0 {
		return "\n" + styleMuted().Render("  No events. Press a to add one.")
	}
	l := m.list
	l.SetSize(w, h)
	return l.View()
}

func (m appModel) viewFooter(w int) string {
	var help string
	switch {
	case m.modal != modalNone:
		help = ""
	case m.tab == tabSecrets:
		help = helpLine(keys.SwitchTab, keys.Prev, keys.Next, keys.Reveal, keys.Submit) + "   ctrl+c: quit"
	case m.rows.grabbed != 0:
		help = "↑/↓: choose position   enter: drop   esc: cancel"
	default:
		hasSel := !m.rows.selected.IsEmpty()
		cp, del := keys.Copy, keys.Delete
		cp.SetEnabled(hasSel)
		del.SetEnabled(hasSel)
		help = helpLine(keys.Select, keys.SelectAll, keys.Add, keys.Edit, cp, del,
			keys.MoveUp, keys.MoveDown, keys.Grab, keys.Save, keys.Open, keys.SwitchTab, keys.Quit)
	}

	status := m.status
	st := styleMuted()
	if m.statusErr {
		st = styleError()
	}
	if n := m.rows.selected.Cardinality(); n > 0 && m.tab == tabEvents && status == "" {
		status = strconv.Itoa(n) + " selected"
	}
	return fitLine(st.Render(status), w) + "\n" + fitLine(styleMuted().Render(help), w)
}
