package cli

import (
	"path/filepath"
	"strconv"
	"time"

	"countdown-cli/internal/document"
	"countdown-cli/internal/format"
	"countdown-cli/internal/model"
	"countdown-cli/internal/store"
	"countdown-cli/internal/validate"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the whole configuration as the device reads it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: s.doc.Config()})
		},
	}
}

type statusPayload struct {
	File      string     `json:"file"`
	Exists    bool       `json:"exists"`
	Events    int        `json:"events"`
	History   bool       `json:"history"`
	LastSaved *time.Time `json:"lastSaved,omitempty"`
	// Dirty compares the file with its newest history revision; nil without history.
	Dirty *bool `json:"dirty,omitempty"`
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the config file and whether it changed since the last recorded save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := statusPayload{
				File:   s.file.Abs(),
				Exists: s.file.Exists(),
				Events: s.doc.Len(),
			}

			ctx := cmd.Context()
			if j := app.openJournal(ctx); j != nil {
				defer j.Close()
				out.History = true
				rev, ok, err := j.Latest(ctx, s.file.Abs())
				if err != nil {
					return writeErr(cmd, err)
				}
				if ok {
					saved := rev.SavedAt
					out.LastSaved = &saved
					dirty := true
					if cfg, err := document.Decode(rev.Body); err == nil {
						dirty = !document.ConfigsEqual(cfg, s.doc.Config())
					}
					out.Dirty = &dirty
				}
			}
			return writeOut(cmd, app, format.Envelope{Data: out})
		},
	}
}

type problem struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type problems []problem

func (ps problems) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []string{strconv.Itoa(p.Index), p.Field, p.Message})
	}
	return []string{"#", "field", "problem"}, rows
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every event the way the edit form would; exit non-zero on failure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := problems{}
			for i, e := range s.doc.Entries() {
				verr, ok := validate.CheckEvent(e.Event).(*validate.Error)
				if !ok || verr == nil {
					continue
				}
				out = append(out, problem{Index: i, Field: verr.Field.String(), Message: verr.Message})
			}
			if err := writeOut(cmd, app, format.Envelope{Data: out}); err != nil {
				return err
			}
			if len(out) > 0 {
				return writeErr(cmd, invalidEventsError{n: len(out)})
			}
			return nil
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report event images that do not exist under the SD card root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if root == "" {
				root = filepath.Dir(s.file.Abs())
			}
			out := problems{}
			for i, e := range s.doc.Entries() {
				for _, f := range []model.EventField{model.EventImageCountDown, model.EventImageEventDay} {
					ref := imageRef(e.Event, f)
					if len(store.MissingFiles(root, []string{ref})) == 0 {
						continue
					}
					out = append(out, problem{Index: i, Field: f.String(), Message: "missing: " + ref})
				}
			}
			if err := writeOut(cmd, app, format.Envelope{Data: out}); err != nil {
				return err
			}
			if len(out) > 0 {
				return writeErr(cmd, missingImagesError{n: len(out)})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "SD card root the image paths are relative to (default: the config file's directory)")
	return cmd
}

func imageRef(ev model.Event, f model.EventField) string {
	if f == model.EventImageCountDown {
		return ev.ImageCountDown
	}
	return ev.ImageEventDay
}
