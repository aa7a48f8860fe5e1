package tui

import (
	"errors"
	"strings"

	"countdown-cli/internal/document"
	"countdown-cli/internal/model"
	"countdown-cli/internal/validate"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var eventFieldLabels = map[model.EventField]string{
	model.EventTitle:          "Title",
	model.EventSubtitle:       "Subtitle",
	model.EventForecolor:      "Forecolor",
	model.EventYear:           "Year",
	model.EventMonth:          "Month",
	model.EventDay:            "Day",
	model.EventHour:           "Hour",
	model.EventMinute:         "Minute",
	model.EventImageCountDown: "Countdown image",
	model.EventImageEventDay:  "Event day image",
}

// editForm is the add/edit dialog. index is -1 when adding.
type editForm struct {
	index  int
	inputs []textinput.Model
	focus  int
	err    string
}

func newEditForm(index int, f validate.Form) editForm {
	fields := model.EventFields()
	e := editForm{index: index, inputs: make([]textinput.Model, len(fields))}
	for i, fld := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		if fld.Numeric() {
			in.CharLimit = 8
		}
		in.SetValue(f.Get(fld))
		e.inputs[i] = in
	}
	e.inputs[0].Focus()
	return e
}

func (e editForm) form() validate.Form {
	var f validate.Form
	for i, fld := range model.EventFields() {
		f.Set(fld, e.inputs[i].Value())
	}
	return f
}

func (e *editForm) setFocus(i int) tea.Cmd {
	n := len(e.inputs)
	i = ((i % n) + n) % n
	e.inputs[e.focus].Blur()
	e.focus = i
	return e.inputs[i].Focus()
}

func (e editForm) title() string {
	if e.index < 0 {
		return "Add event"
	}
	return "Edit event"
}

// submit validates the form and commits it to doc. On a validation failure the message
// is kept for display and focus moves to the offending field.
func (e *editForm) submit(doc *document.Document) (document.ID, bool) {
	id, err := doc.Submit(e.index, e.form())
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			e.err = verr.Message
			e.setFocus(int(verr.Field))
		} else {
			e.err = err.Error()
		}
		return 0, false
	}
	e.err = ""
	return id, true
}

func (e editForm) view(width int) string {
	bodyW := modalBodyWidth(width)
	labelW := 16
	inputW := bodyW - labelW - 1

	var b strings.Builder
	for i, fld := range model.EventFields() {
		in := e.inputs[i]
		in.Width = inputW - 3
		label := eventFieldLabels[fld]
		lst := styleMuted()
		if i == e.focus {
			lst = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		}
		row := lst.Width(labelW).Render(label) + " " + renderInputLine(inputW, in.View())
		if fld == model.EventForecolor {
			row = lst.Width(labelW).Render(label) + " " +
				renderInputLine(inputW-3, in.View()) + " " + renderSwatch(in.Value())
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if e.err != "" {
		b.WriteString(styleError().Width(bodyW).Render(e.err))
		b.WriteString("\n\n")
	}
	b.WriteString(styleMuted().Width(bodyW).Render(helpLine(keys.Next, keys.Prev, keys.Submit, keys.Cancel)))
	return renderModalBox(width, e.title(), b.String())
}
