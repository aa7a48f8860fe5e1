package tui

import (
	"countdown-cli/internal/document"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-5, 1))
		if m.modal == modalPickFile {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.modal {
		case modalEditEvent:
			return m.updateEditModal(msg)
		case modalConfirmQuit, modalConfirmOpen:
			return m.updateConfirmModal(msg)
		case modalPickFile:
			return m.updatePicker(msg)
		}
		if m.tab == tabSecrets {
			return m.updateSecrets(msg)
		}
		return m.updateEvents(msg)
	}

	// Non-key messages: directory reads for the picker, cursor blink for inputs.
	var cmd tea.Cmd
	switch {
	case m.modal == modalPickFile:
		return m.updatePicker(msg)
	case m.modal == modalEditEvent:
		m.edit.inputs[m.edit.focus], cmd = m.edit.inputs[m.edit.focus].Update(msg)
	case m.tab == tabSecrets:
		m.secrets.inputs[m.secrets.focus], cmd = m.secrets.inputs[m.secrets.focus].Update(msg)
	}
	return m, cmd
}

// requestLeave runs next directly when there is nothing to lose, otherwise asks first.
func (m appModel) requestLeave(kind modalKind, next func(appModel) (tea.Model, tea.Cmd)) (tea.Model, tea.Cmd) {
	if !m.doc.IsDirty() {
		return next(m)
	}
	m.modal = kind
	m.confirmFocus = confirmFocusCancel
	return m, nil
}

func quitNow(m appModel) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func openPicker(m appModel) (tea.Model, tea.Cmd) {
	cmd := m.startPicker()
	return m, cmd
}

func (m appModel) updateEvents(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Grab mode: focus moves freely, enter or m drops, esc puts the row back.
	if m.rows.grabbed != 0 {
		switch {
		case key.Matches(msg, keys.Grab), msg.String() == "enter":
			from := m.doc.IndexOf(m.rows.grabbed)
			to := m.list.Index()
			m.rows.grabbed = 0
			if m.doc.Move(from, to) {
				m.setStatus("Moved event %d to %d", from, to)
			}
			m.syncList(to)
			return m, nil
		case key.Matches(msg, keys.Cancel):
			m.rows.grabbed = 0
			m.setStatus("Move cancelled")
			return m, nil
		case key.Matches(msg, keys.Up):
			m.list.CursorUp()
			return m, nil
		case key.Matches(msg, keys.Down):
			m.list.CursorDown()
			return m, nil
		}
		return m, nil
	}

	i := m.focusedIndex()
	switch {
	case key.Matches(msg, keys.Quit):
		return m.requestLeave(modalConfirmQuit, quitNow)
	case key.Matches(msg, keys.Open):
		return m.requestLeave(modalConfirmOpen, openPicker)
	case key.Matches(msg, keys.SwitchTab):
		m.tab = tabSecrets
		return m, m.secrets.setFocus(m.secrets.focus)
	case key.Matches(msg, keys.Save):
		m.save()
		return m, nil

	case key.Matches(msg, keys.Add):
		m.edit = newEditForm(-1, document.NewEventForm(m.now()))
		m.modal = modalEditEvent
		return m, nil
	case key.Matches(msg, keys.Edit):
		f, ok := m.doc.EditForm(i)
		if !ok {
			return m, nil
		}
		m.edit = newEditForm(i, f)
		m.modal = modalEditEvent
		return m, nil

	case key.Matches(msg, keys.Select):
		if id, ok := m.doc.IDAt(i); ok {
			if !m.rows.selected.Add(id) {
				m.rows.selected.Remove(id)
			}
		}
		return m, nil
	case key.Matches(msg, keys.SelectAll):
		if m.doc.Len() > 0 && m.rows.selected.Cardinality() == m.doc.Len() {
			m.rows.selected.Clear()
			return m, nil
		}
		for _, e := range m.doc.Entries() {
			m.rows.selected.Add(e.ID)
		}
		return m, nil
	case key.Matches(msg, keys.Copy):
		if m.rows.selected.IsEmpty() {
			m.setStatus("Select events to copy first")
			return m, nil
		}
		n := len(m.doc.DuplicateIDs(m.rows.selected))
		m.rows.selected.Clear()
		m.syncList(i)
		m.setStatus("Copied %d event(s)", n)
		return m, nil
	case key.Matches(msg, keys.Delete):
		if m.rows.selected.IsEmpty() {
			m.setStatus("Select events to delete first")
			return m, nil
		}
		n := m.doc.DeleteIDs(m.rows.selected)
		m.syncList(i)
		m.setStatus("Deleted %d event(s)", n)
		return m, nil

	case key.Matches(msg, keys.MoveUp):
		if m.doc.MoveUp(i) {
			m.syncList(i - 1)
		}
		return m, nil
	case key.Matches(msg, keys.MoveDown):
		if m.doc.MoveDown(i) {
			m.syncList(i + 1)
		}
		return m, nil
	case key.Matches(msg, keys.Grab):
		if id, ok := m.doc.IDAt(i); ok {
			m.rows.grabbed = id
			m.setStatus("Move focus to the destination, then enter to drop")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateEditModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.edit.inputs) - 1
	switch {
	case key.Matches(msg, keys.Cancel):
		m.modal = modalNone
		return m, nil
	case key.Matches(msg, keys.Submit), msg.String() == "enter" && m.edit.focus == last:
		id, ok := m.edit.submit(m.doc)
		if !ok {
			return m, nil
		}
		m.modal = modalNone
		focus := m.doc.IndexOf(id)
		if focus < 0 {
			focus = m.list.Index()
		}
		m.syncList(focus)
		if m.edit.index < 0 {
			m.setStatus("Added event")
		} else {
			m.setStatus("Updated event")
		}
		return m, nil
	case key.Matches(msg, keys.Next), msg.String() == "enter":
		return m, m.edit.setFocus(m.edit.focus + 1)
	case key.Matches(msg, keys.Prev):
		return m, m.edit.setFocus(m.edit.focus - 1)
	}

	var cmd tea.Cmd
	m.edit.inputs[m.edit.focus], cmd = m.edit.inputs[m.edit.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm := func() (tea.Model, tea.Cmd) {
		kind := m.modal
		m.modal = modalNone
		if kind == modalConfirmQuit {
			return quitNow(m)
		}
		return openPicker(m)
	}
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.modal = modalNone
		return m, nil
	case "y":
		return confirm()
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return confirm()
		}
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Cancel) {
		m.modal = modalNone
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.modal = modalNone
		m.open(path)
		return m, nil
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.setStatus("Not a .json file: %s", path)
	}
	return m, cmd
}

func (m appModel) updateSecrets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.tab = tabEvents
		m.secrets.inputs[m.secrets.focus].Blur()
		return m, nil
	case "ctrl+c":
		return m.requestLeave(modalConfirmQuit, quitNow)
	case "ctrl+s":
		m.save()
		return m, nil
	case "ctrl+r":
		m.secrets.toggleReveal()
		return m, nil
	case "up", "shift+tab":
		return m, m.secrets.setFocus(m.secrets.focus - 1)
	case "down", "enter":
		return m, m.secrets.setFocus(m.secrets.focus + 1)
	}
	return m, m.secrets.update(msg, m.doc)
}
