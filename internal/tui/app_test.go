package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"countdown-cli/internal/document"
	"countdown-cli/internal/model"
	"countdown-cli/internal/store"
	"countdown-cli/internal/validate"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var fixedNow = time.Date(2026, 10, 17, 8, 30, 0, 0, time.Local)

func testModel(t *testing.T, titles ...string) appModel {
	t.Helper()
	doc := document.New(nil)
	for _, title := range titles {
		doc.Add(model.Event{Title: title, Forecolor: model.DefaultForecolor, Year: 2030, Month: 1, Day: 1})
	}
	doc.MarkSaved()

	m := newAppModel(Options{
		File: store.ConfigFile{Path: filepath.Join(t.TempDir(), "config.json")},
		Doc:  doc,
		Now:  func() time.Time { return fixedNow },
	})
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func send(t *testing.T, m appModel, msgs ...tea.Msg) appModel {
	t.Helper()
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		m = mm.(appModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func titles(m appModel) string {
	var out []string
	for _, e := range m.doc.Entries() {
		out = append(out, e.Event.Title)
	}
	return strings.Join(out, ",")
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
)

func TestSelectAndDelete(t *testing.T) {
	m := testModel(t, "A", "B", "C")

	m = send(t, m, keySpace, keyDown, keyDown, keySpace)
	if m.rows.selected.Cardinality() != 2 {
		t.Fatalf("expected 2 selected; got %d", m.rows.selected.Cardinality())
	}
	m = send(t, m, runes("d"))
	if got := titles(m); got != "B" {
		t.Fatalf("after delete: %s", got)
	}
	if !m.rows.selected.IsEmpty() {
		t.Fatalf("deleted ids should leave the selection")
	}
	if !m.doc.IsDirty() {
		t.Fatalf("delete should make the document dirty")
	}
}

func TestCopyWithoutSelectionIsDisabled(t *testing.T) {
	m := testModel(t, "A")
	m = send(t, m, runes("c"), runes("d"))
	if got := titles(m); got != "A" {
		t.Fatalf("nothing selected, nothing should change; got %s", got)
	}
	if !strings.Contains(m.status, "Select events") {
		t.Fatalf("expected hint; got %q", m.status)
	}
}

func TestSelectAllThenCopy(t *testing.T) {
	m := testModel(t, "A", "B")
	m = send(t, m, runes("A"))
	if m.rows.selected.Cardinality() != 2 {
		t.Fatalf("select all failed")
	}
	m = send(t, m, runes("c"))
	if got := titles(m); got != "A,B,B,A" {
		t.Fatalf("after copy: %s", got)
	}
	m = send(t, m, runes("A"))
	if m.rows.selected.Cardinality() != 4 {
		t.Fatalf("select all should cover the copies")
	}
	m = send(t, m, runes("A"))
	if !m.rows.selected.IsEmpty() {
		t.Fatalf("second A should clear the selection")
	}
}

func TestKeyboardReorder(t *testing.T) {
	m := testModel(t, "A", "B", "C")

	m = send(t, m, runes("J"))
	if got := titles(m); got != "B,A,C" {
		t.Fatalf("after J: %s", got)
	}
	if m.list.Index() != 1 {
		t.Fatalf("focus should follow the moved row; got %d", m.list.Index())
	}
	m = send(t, m, runes("K"), runes("K"))
	if got := titles(m); got != "A,B,C" {
		t.Fatalf("K at the top is a no-op; got %s", got)
	}
}

func TestGrabAndDrop(t *testing.T) {
	m := testModel(t, "A", "B", "C")

	m = send(t, m, runes("m"), keyDown, keyDown, keyEnter)
	if got := titles(m); got != "B,C,A" {
		t.Fatalf("after drop: %s", got)
	}
	if m.rows.grabbed != 0 {
		t.Fatalf("drop should release the row")
	}

	m = send(t, m, runes("m"), keyEsc)
	if got := titles(m); got != "B,C,A" {
		t.Fatalf("esc should cancel the move; got %s", got)
	}
}

func TestAddEvent_DefaultsAndCommit(t *testing.T) {
	m := testModel(t)

	m = send(t, m, runes("a"))
	if m.modal != modalEditEvent || m.edit.index != -1 {
		t.Fatalf("expected add dialog")
	}
	if got := m.edit.form().Year; got != "2026" {
		t.Fatalf("year should default to now; got %q", got)
	}
	m = send(t, m, runes("Launch"), keyCtrlS)
	if m.modal != modalNone {
		t.Fatalf("dialog should close; err=%q", m.edit.err)
	}
	ev, ok := m.doc.Event(0)
	if !ok || ev.Title != "Launch" || ev.Hour != 8 || ev.Minute != 30 || ev.Forecolor != model.DefaultForecolor {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestEditEvent_ValidationKeepsDialogOpen(t *testing.T) {
	m := testModel(t, "A")

	m = send(t, m, keyEnter)
	if m.modal != modalEditEvent || m.edit.index != 0 {
		t.Fatalf("expected edit dialog")
	}
	m.edit.inputs[int(model.EventMonth)].SetValue("13")
	m = send(t, m, keyCtrlS)
	if m.modal != modalEditEvent {
		t.Fatalf("invalid form must not close the dialog")
	}
	if m.edit.err != validate.MsgOutOfRange {
		t.Fatalf("unexpected message %q", m.edit.err)
	}
	if m.edit.focus != int(model.EventMonth) {
		t.Fatalf("focus should move to the bad field; got %d", m.edit.focus)
	}
	if m.doc.IsDirty() {
		t.Fatalf("document must be untouched")
	}
	if !strings.Contains(m.View(), validate.MsgOutOfRange) {
		t.Fatalf("message should be shown inline")
	}

	m.edit.inputs[int(model.EventMonth)].SetValue("12")
	m = send(t, m, keyCtrlS)
	if ev, _ := m.doc.Event(0); ev.Month != 12 || m.modal != modalNone {
		t.Fatalf("valid edit not applied: %+v", ev)
	}

	m = send(t, m, keyEnter, keyEsc)
	if m.modal != modalNone {
		t.Fatalf("esc should cancel")
	}
}

func TestQuit_ConfirmsWhenDirty(t *testing.T) {
	m := testModel(t, "A")

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("clean document should quit immediately")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit")
	}

	m = send(t, m, runes("J"), runes("a"), runes("x"), keyCtrlS)
	if !m.doc.IsDirty() {
		t.Fatalf("expected dirty document")
	}
	m = send(t, m, runes("q"))
	if m.modal != modalConfirmQuit {
		t.Fatalf("expected confirmation")
	}
	if !strings.Contains(m.View(), unsavedChangesMsg) {
		t.Fatalf("confirmation should explain unsaved changes")
	}
	m = send(t, m, keyEnter)
	if m.modal != modalNone {
		t.Fatalf("enter on default focus (cancel) should stay")
	}

	m = send(t, m, runes("q"))
	_, cmd = m.Update(runes("y"))
	if cmd == nil {
		t.Fatalf("y should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit")
	}
}

func TestSave_WritesFileAndCleans(t *testing.T) {
	m := testModel(t, "A", "B")
	m = send(t, m, runes("J"), runes("s"))

	if m.doc.IsDirty() {
		t.Fatalf("document should be clean after save")
	}
	b, err := os.ReadFile(m.file.Abs())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	cfg, err := document.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cfg.Events) != 2 || cfg.Events[0].Title != "B" {
		t.Fatalf("unexpected saved events: %+v", cfg.Events)
	}
}

func TestOpen_ParseErrorKeepsDocument(t *testing.T) {
	m := testModel(t, "A")
	bad := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(bad, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	orig := m.file

	m.open(bad)
	if !m.statusErr || titles(m) != "A" || m.file != orig {
		t.Fatalf("failed open must leave everything alone; status=%q", m.status)
	}

	good := filepath.Join(t.TempDir(), "other.json")
	if err := os.WriteFile(good, []byte(`{"events":[{"title":"Z","year":2031,"month":2,"day":3,"hour":"04","minute":"05"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	m.open(good)
	if titles(m) != "Z" || m.file.Path != good || m.doc.IsDirty() {
		t.Fatalf("open failed: status=%q titles=%s", m.status, titles(m))
	}
}

func TestSecretsTab(t *testing.T) {
	m := testModel(t)

	m = send(t, m, keyTab)
	if m.tab != tabSecrets {
		t.Fatalf("tab should switch to secrets")
	}
	m = send(t, m, runes("home"), keyDown, runes("pw"))
	s := m.doc.Secrets()
	if s.SSID != "home" || s.Password != "pw" {
		t.Fatalf("unexpected secrets: %+v", s)
	}
	pw := m.secrets.inputs[int(model.SecretPassword)]
	if pw.EchoMode != textinput.EchoPassword {
		t.Fatalf("password should be masked")
	}
	m = send(t, m, keyCtrlR)
	if m.secrets.inputs[int(model.SecretPassword)].EchoMode != textinput.EchoNormal {
		t.Fatalf("ctrl+r should reveal")
	}
	m = send(t, m, keyTab)
	if m.tab != tabEvents {
		t.Fatalf("tab should switch back")
	}
}

func TestView_ShowsRowsAndDirtyMarker(t *testing.T) {
	setGlyphs(glyphSetASCII)
	defer setGlyphs(glyphSetUnicode)

	m := testModel(t, "Launch")
	v := m.View()
	if !strings.Contains(v, "Launch") || !strings.Contains(v, "2030-01-01 00:00") {
		t.Fatalf("row missing from view:\n%s", v)
	}
	if strings.Contains(v, glyphDirty()+" ") {
		t.Fatalf("clean document should not show the dirty marker")
	}

	m = send(t, m, keySpace)
	if !strings.Contains(m.View(), glyphChecked()) {
		t.Fatalf("selected row should be marked")
	}
}
