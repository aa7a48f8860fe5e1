package tui

import (
	"strings"

	"countdown-cli/internal/document"
	"countdown-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var secretFieldLabels = map[model.SecretField]string{
	model.SecretSSID:        "SSID",
	model.SecretPassword:    "Password",
	model.SecretTimezone:    "Timezone",
	model.SecretAIOUsername: "AIO username",
	model.SecretAIOKey:      "AIO key",
}

// secretsForm edits the secrets section. Every keystroke is written straight to the
// document.
type secretsForm struct {
	inputs []textinput.Model
	focus  int
	reveal bool
}

func newSecretsForm(s model.Secrets) secretsForm {
	fields := model.SecretFields()
	f := secretsForm{inputs: make([]textinput.Model, len(fields))}
	for i, fld := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.SetValue(s.Get(fld))
		f.inputs[i] = in
	}
	f.applyEcho()
	f.inputs[0].Focus()
	return f
}

func (f *secretsForm) applyEcho() {
	for i, fld := range model.SecretFields() {
		if fld.Sensitive() && !f.reveal {
			f.inputs[i].EchoMode = textinput.EchoPassword
			f.inputs[i].EchoCharacter = '•'
		} else {
			f.inputs[i].EchoMode = textinput.EchoNormal
		}
	}
}

func (f *secretsForm) toggleReveal() {
	f.reveal = !f.reveal
	f.applyEcho()
}

func (f *secretsForm) setFocus(i int) tea.Cmd {
	n := len(f.inputs)
	i = ((i % n) + n) % n
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

// update feeds msg to the focused input and copies the result into doc.
func (f *secretsForm) update(msg tea.Msg, doc *document.Document) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	fld := model.SecretFields()[f.focus]
	if v := f.inputs[f.focus].Value(); v != doc.Secrets().Get(fld) {
		doc.SetSecret(fld, v)
	}
	return cmd
}

func (f secretsForm) view(width int) string {
	labelW := 14
	inputW := min(width-labelW-4, 60)

	var b strings.Builder
	for i, fld := range model.SecretFields() {
		in := f.inputs[i]
		in.Width = inputW - 3
		lst := styleMuted()
		if i == f.focus {
			lst = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		}
		b.WriteString(" " + lst.Width(labelW).Render(secretFieldLabels[fld]) + " " + renderInputLine(inputW, in.View()))
		b.WriteString("\n\n")
	}
	return b.String()
}
