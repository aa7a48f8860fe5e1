// Package tui is the interactive editor: an events list with selection and reordering, an
// edit dialog, and a secrets form, all operating on one document.Document.
package tui

import (
	"context"
	"log/slog"
	"time"

	"countdown-cli/internal/document"
	"countdown-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Context context.Context
	File    store.ConfigFile
	Doc     *document.Document
	// Journal may be nil; saves are then not recorded.
	Journal *store.Journal
	Pretty  bool
	Logger  *slog.Logger
	Now     func() time.Time
}

func Run(opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference()

	m := newAppModel(opts)
	popts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		popts = append(popts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, popts...).Run()
	return err
}
