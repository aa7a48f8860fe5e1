package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"countdown-cli/internal/document"
	"countdown-cli/internal/format"
	"countdown-cli/internal/store"

	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.New("history is disabled (set history: true in settings.yaml)")

type revisionRows []store.Revision

func (rs revisionRows) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.SavedAt.Local().Format(time.DateTime),
			format.Until(r.SavedAt, time.Now()),
			strconv.Itoa(r.Events),
		})
	}
	return []string{"id", "saved", "age", "events"}, rows
}

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and restore earlier saves of the config file",
	}
	cmd.AddCommand(newHistoryListCmd(app))
	cmd.AddCommand(newHistoryRestoreCmd(app))
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved revisions of the config file, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j := app.openJournal(ctx)
			if j == nil {
				return writeErr(cmd, errHistoryDisabled)
			}
			defer j.Close()

			revs, err := j.List(ctx, app.configFile().Abs())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: revisionRows(revs)})
		},
	}
}

type otherFileError struct {
	id   int64
	path string
}

func (e otherFileError) Error() string {
	return fmt.Sprintf("revision %d was saved for %s (use --force to restore it here)", e.id, e.path)
}

func newHistoryRestoreCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Write a saved revision back to the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("not a revision id: %q", args[0]))
			}
			ctx := cmd.Context()
			j := app.openJournal(ctx)
			if j == nil {
				return writeErr(cmd, errHistoryDisabled)
			}
			defer j.Close()

			rev, err := j.Get(ctx, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Revisions were valid when recorded; decoding again keeps a damaged row off the card.
			cfg, err := document.Decode(rev.Body)
			if err != nil {
				return writeErr(cmd, err)
			}
			f := app.configFile()
			if rev.Path != f.Abs() {
				if !force {
					return writeErr(cmd, otherFileError{id: rev.ID, path: rev.Path})
				}
				app.logger.Warn("restoring revision from another file", "id", rev.ID, "from", rev.Path, "file", f.Abs())
			}
			if err := f.Save(ctx, j, rev.Body, len(cfg.Events)); err != nil {
				var herr *store.HistoryError
				if !errors.As(err, &herr) {
					return writeErr(cmd, err)
				}
				app.logger.Warn("restored without history", "file", f.Abs(), "err", herr.Err)
			}
			app.logger.Info("revision restored", "id", rev.ID, "file", f.Abs())
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"restored": rev.ID,
				"file":     f.Abs(),
				"events":   len(cfg.Events),
			}})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Restore even if the revision was saved for another file")
	return cmd
}
