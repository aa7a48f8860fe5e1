package cli

import (
	"errors"

	"countdown-cli/internal/document"
	"countdown-cli/internal/store"

	"github.com/spf13/cobra"
)

// session is one command's view of the config file: the file and the document loaded
// from it. A missing file opens as an empty configuration.
type session struct {
	file store.ConfigFile
	doc  *document.Document
}

func openSession(app *App) (*session, error) {
	f := app.configFile()
	b, err := f.Read()
	if err != nil {
		return nil, err
	}
	doc := document.New(app.logger)
	if b != nil {
		if err := doc.Load(b); err != nil {
			return nil, err
		}
	}
	return &session{file: f, doc: doc}, nil
}

// save writes the document back if it changed. It reports whether anything was written.
func (s *session) save(cmd *cobra.Command, app *App) (bool, error) {
	if !s.doc.IsDirty() {
		return false, nil
	}
	b, err := s.doc.Save(app.PrettyJSON)
	if err != nil {
		return false, err
	}
	ctx := cmd.Context()
	j := app.openJournal(ctx)
	if j != nil {
		defer j.Close()
	}
	if err := s.file.Save(ctx, j, b, s.doc.Len()); err != nil {
		var herr *store.HistoryError
		if !errors.As(err, &herr) {
			return false, err
		}
		app.logger.Warn("saved without history", "file", s.file.Abs(), "err", herr.Err)
	}
	app.logger.Info("saved", "file", s.file.Abs(), "events", s.doc.Len())
	return true, nil
}
