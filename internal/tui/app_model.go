package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"countdown-cli/internal/document"
	"countdown-cli/internal/store"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	mapset "github.com/deckarep/golang-set/v2"
)

func newAppModel(opts Options) appModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	doc := opts.Doc
	if doc == nil {
		doc = document.New(opts.Logger)
	}

	m := appModel{
		ctx:     opts.Context,
		file:    opts.File,
		journal: opts.Journal,
		pretty:  opts.Pretty,
		log:     opts.Logger,
		now:     opts.Now,
		doc:     doc,
		tab:     tabEvents,
		rows: &rowState{
			selected: mapset.NewThreadUnsafeSet[document.ID](),
			now:      opts.Now,
		},
	}
	m.list = newEventsList(m.rows)
	m.secrets = newSecretsForm(doc.Secrets())
	m.syncList(0)
	return m
}

func newEventsList(rows *rowState) list.Model {
	l := list.New([]list.Item{}, newEventDelegate(rows), 0, 0)
	l.Title = "Events"
	// The footer and tabs are drawn by the app, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}

// syncList rebuilds the rows from the document and focuses index focus (clamped).
// Selected ids that no longer exist are dropped.
func (m *appModel) syncList(focus int) {
	entries := m.doc.Entries()
	items := make([]list.Item, 0, len(entries))
	live := mapset.NewThreadUnsafeSet[document.ID]()
	for _, e := range entries {
		items = append(items, eventItem{id: e.ID, ev: e.Event})
		live.Add(e.ID)
	}
	m.list.SetItems(items)
	m.rows.selected = m.rows.selected.Intersect(live)
	if !live.Contains(m.rows.grabbed) {
		m.rows.grabbed = 0
	}
	if focus >= len(items) {
		focus = len(items) - 1
	}
	if focus < 0 {
		focus = 0
	}
	if len(items) > 0 {
		m.list.Select(focus)
	}
}

func (m *appModel) focusedIndex() int {
	if m.doc.Len() == 0 {
		return -1
	}
	return m.list.Index()
}

func (m *appModel) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// save encodes the document and writes it to the current file. The snapshot only moves
// once the file is on disk.
func (m *appModel) save() {
	b, err := document.Encode(m.doc.Config(), m.pretty)
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.file.Save(m.ctx, m.journal, b, m.doc.Len()); err != nil {
		var herr *store.HistoryError
		if !errors.As(err, &herr) {
			m.log.Error("save failed", "file", m.file.Abs(), "err", err)
			m.setError(err)
			return
		}
		m.log.Warn("saved without history", "file", m.file.Abs(), "err", herr.Err)
	}
	m.doc.MarkSaved()
	m.log.Info("saved", "file", m.file.Abs(), "events", m.doc.Len())
	m.setStatus("Saved %s", m.file.Abs())
}

// open loads path into the document. A file that fails to parse leaves everything as it
// was.
func (m *appModel) open(path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.doc.Load(b); err != nil {
		m.log.Warn("open failed", "file", path, "err", err)
		m.setError(err)
		return
	}
	m.file = store.ConfigFile{Path: path}
	m.rows.selected.Clear()
	m.rows.grabbed = 0
	m.secrets = newSecretsForm(m.doc.Secrets())
	m.syncList(0)
	m.setStatus("Opened %s", m.file.Abs())
}

func (m *appModel) startPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".json"}
	fp.CurrentDirectory = filepath.Dir(m.file.Abs())
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = pickerHeight(m.height)
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.DisabledFile = styleMuted()
	m.picker = fp
	m.modal = modalPickFile
	return fp.Init()
}

func pickerHeight(screenH int) int {
	if screenH <= 0 {
		screenH = defaultHeight
	}
	return max(screenH-12, 5)
}
