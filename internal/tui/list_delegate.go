package tui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"countdown-cli/internal/document"
	"countdown-cli/internal/format"
	"countdown-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	mapset "github.com/deckarep/golang-set/v2"
)

// eventItem is one row of the events list.
type eventItem struct {
	id document.ID
	ev model.Event
}

func (it eventItem) FilterValue() string { return it.ev.Title }

func (it eventItem) date() string {
	return strconv.Itoa(it.ev.Year) + "-" + model.Pad2(it.ev.Month) + "-" + model.Pad2(it.ev.Day) +
		" " + model.Pad2(it.ev.Hour) + ":" + model.Pad2(it.ev.Minute)
}

// rowState is shared between the model and the list delegate so rows can show selection
// and the grabbed row without rebuilding the list.
type rowState struct {
	selected mapset.Set[document.ID]
	grabbed  document.ID // 0 when nothing is grabbed
	now      func() time.Time
}

type eventDelegate struct {
	state    *rowState
	normal   lipgloss.Style
	focused  lipgloss.Style
	grabbing lipgloss.Style
}

func newEventDelegate(state *rowState) eventDelegate {
	return eventDelegate{
		state:  state,
		normal: lipgloss.NewStyle(),
		focused: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		grabbing: lipgloss.NewStyle().
			Foreground(colorAccentFg).
			Background(colorAccent).
			Bold(true),
	}
}

func (d eventDelegate) Height() int  { return 1 }
func (d eventDelegate) Spacing() int { return 0 }
func (d eventDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d eventDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(eventItem)
	contentW := m.Width()
	if !ok || contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	mark := glyphUnchecked()
	if d.state.selected.Contains(it.id) {
		mark = glyphChecked()
	}
	if d.state.grabbed == it.id {
		mark = glyphGrabbed() + " "
	}

	until := format.Until(it.ev.Target(time.Local), d.state.now())
	left := fmt.Sprintf(" %s %s ", mark, renderSwatch(it.ev.Forecolor))
	right := fmt.Sprintf("  %s  %-18s", it.date(), until)

	titleW := contentW - lipgloss.Width(left) - lipgloss.Width(right)
	title := it.ev.Title
	if it.ev.Subtitle != "" {
		title += " · " + it.ev.Subtitle
	}
	line := left + fitLine(title, max(titleW, 0)) + right
	line = fitLine(line, contentW)

	style := d.normal
	switch {
	case d.state.grabbed == it.id:
		style = d.grabbing
	case index == m.Index():
		style = d.focused
	}
	fmt.Fprint(w, style.Render(line))
}
