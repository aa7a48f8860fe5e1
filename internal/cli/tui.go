package cli

import (
	"fmt"

	"countdown-cli/internal/logging"
	"countdown-cli/internal/store"
	"countdown-cli/internal/tui"

	"github.com/spf13/cobra"
)

// runTUI opens the editor on app.File. Logs go to a file so they do not draw over the
// alternate screen.
func runTUI(cmd *cobra.Command, app *App) error {
	if app.logOut == nil {
		path, err := store.LogPath()
		if err != nil {
			return writeErr(cmd, err)
		}
		f, err := logging.OpenFile(path)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("open log file: %w", err))
		}
		app.logOut = f
		app.logger = logging.Setup(app.LogLevel, f)
	}

	s, err := openSession(app)
	if err != nil {
		return writeErr(cmd, err)
	}

	ctx := cmd.Context()
	j := app.openJournal(ctx)
	if j != nil {
		defer j.Close()
	}

	app.logger.Info("editor started", "file", s.file.Abs(), "events", s.doc.Len())
	return tui.Run(tui.Options{
		Context: ctx,
		File:    s.file,
		Doc:     s.doc,
		Journal: j,
		Pretty:  app.PrettyJSON,
		Logger:  app.logger,
	})
}
