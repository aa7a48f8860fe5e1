package cli

import (
	"strconv"
	"time"

	"countdown-cli/internal/document"
	"countdown-cli/internal/format"
	"countdown-cli/internal/model"
	"countdown-cli/internal/validate"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"
)

type eventRow struct {
	Index int         `json:"index"`
	Event model.Event `json:"event"`
	Until string      `json:"until"`
}

type eventRows []eventRow

func (rs eventRows) Table() ([]string, [][]string) {
	headers := []string{"#", "title", "subtitle", "date", "color", "until"}
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		ev := r.Event
		rows = append(rows, []string{
			strconv.Itoa(r.Index),
			ev.Title,
			ev.Subtitle,
			eventDate(ev),
			ev.Forecolor,
			r.Until,
		})
	}
	return headers, rows
}

func eventDate(ev model.Event) string {
	return strconv.Itoa(ev.Year) + "-" + model.Pad2(ev.Month) + "-" + model.Pad2(ev.Day) + " " + model.Pad2(ev.Hour) + ":" + model.Pad2(ev.Minute)
}

func listRows(doc *document.Document, now time.Time) eventRows {
	rows := make(eventRows, 0, doc.Len())
	for i, e := range doc.Entries() {
		rows = append(rows, eventRow{
			Index: i,
			Event: e.Event,
			Until: format.Until(e.Event.Target(now.Location()), now),
		})
	}
	return rows
}

// mutation is what every editing command reports.
type mutation struct {
	Changed bool      `json:"changed"`
	Saved   bool      `json:"saved"`
	Events  eventRows `json:"events"`
}

func (m mutation) Table() ([]string, [][]string) { return m.Events.Table() }

// edit loads the file, applies fn, saves when the document became dirty, and prints the
// resulting event list.
func edit(cmd *cobra.Command, app *App, fn func(doc *document.Document) (bool, error)) error {
	s, err := openSession(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	changed, err := fn(s.doc)
	if err != nil {
		return writeErr(cmd, err)
	}
	saved, err := s.save(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, format.Envelope{Data: mutation{
		Changed: changed,
		Saved:   saved,
		Events:  listRows(s.doc, time.Now()),
	}})
}

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and edit countdown events",
	}
	cmd.AddCommand(newEventsListCmd(app))
	cmd.AddCommand(newEventsAddCmd(app))
	cmd.AddCommand(newEventsEditCmd(app))
	cmd.AddCommand(newEventsCopyCmd(app))
	cmd.AddCommand(newEventsDeleteCmd(app))
	cmd.AddCommand(newEventsMoveCmd(app))
	cmd.AddCommand(newEventsStepCmd(app, "up"))
	cmd.AddCommand(newEventsStepCmd(app, "down"))
	return cmd
}

func newEventsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events with the time remaining until each",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: listRows(s.doc, time.Now())})
		},
	}
}

// eventFlags binds one string flag per event field. Only flags the user set are applied
// on top of the form being edited.
type eventFlags map[model.EventField]*string

var eventFlagNames = map[model.EventField]string{
	model.EventTitle:          "title",
	model.EventSubtitle:       "subtitle",
	model.EventForecolor:      "forecolor",
	model.EventYear:           "year",
	model.EventMonth:          "month",
	model.EventDay:            "day",
	model.EventHour:           "hour",
	model.EventMinute:         "minute",
	model.EventImageCountDown: "image-countdown",
	model.EventImageEventDay:  "image-eventday",
}

func bindEventFlags(cmd *cobra.Command) eventFlags {
	fl := eventFlags{}
	for _, f := range model.EventFields() {
		v := new(string)
		fl[f] = v
		cmd.Flags().StringVar(v, eventFlagNames[f], "", "Event "+f.String())
	}
	return fl
}

func (fl eventFlags) apply(cmd *cobra.Command, form *validate.Form) {
	for _, f := range model.EventFields() {
		if cmd.Flags().Changed(eventFlagNames[f]) {
			form.Set(f, *fl[f])
		}
	}
}

func newEventsAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append an event (unset date/time fields default to now)",
		Args:  cobra.NoArgs,
	}
	fl := bindEventFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return edit(cmd, app, func(doc *document.Document) (bool, error) {
			form := document.NewEventForm(time.Now())
			fl.apply(cmd, &form)
			if _, err := doc.Submit(-1, form); err != nil {
				return false, err
			}
			return true, nil
		})
	}
	return cmd
}

func newEventsEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit an event in place (unset flags keep current values)",
		Args:  cobra.ExactArgs(1),
	}
	fl := bindEventFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		i, err := parseIndex(args[0])
		if err != nil {
			return writeErr(cmd, err)
		}
		return edit(cmd, app, func(doc *document.Document) (bool, error) {
			form, ok := doc.EditForm(i)
			if !ok {
				return false, nil
			}
			fl.apply(cmd, &form)
			if _, err := doc.Submit(i, form); err != nil {
				return false, err
			}
			return true, nil
		})
	}
	return cmd
}

func newEventsCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "copy <index>...",
		Aliases: []string{"cp"},
		Short:   "Append a copy of each selected event (highest index first)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndices(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			return edit(cmd, app, func(doc *document.Document) (bool, error) {
				return len(doc.Duplicate(mapset.NewThreadUnsafeSet(idx...))) > 0, nil
			})
		},
	}
}

func newEventsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>...",
		Aliases: []string{"rm"},
		Short:   "Delete the selected events",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndices(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			return edit(cmd, app, func(doc *document.Document) (bool, error) {
				return doc.Delete(mapset.NewThreadUnsafeSet(idx...)) > 0, nil
			})
		},
	}
}

func newEventsMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move an event to another position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndices(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			return edit(cmd, app, func(doc *document.Document) (bool, error) {
				return doc.Move(idx[0], idx[1]), nil
			})
		},
	}
}

func newEventsStepCmd(app *App, dir string) *cobra.Command {
	return &cobra.Command{
		Use:   dir + " <index>",
		Short: "Move an event one position " + dir,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return edit(cmd, app, func(doc *document.Document) (bool, error) {
				if dir == "up" {
					return doc.MoveUp(i), nil
				}
				return doc.MoveDown(i), nil
			})
		},
	}
}
