// Package document owns the live configuration being edited, its last-saved snapshot,
// and every mutation the editor performs on it.
package document

import (
	"encoding/json"
	"log/slog"
	"time"

	"countdown-cli/internal/model"
	"countdown-cli/internal/validate"
)

// ID identifies an event for the lifetime of a Document. IDs are never reused and are
// independent of list position; they are not persisted.
type ID uint64

// Entry is an event together with its stable id.
type Entry struct {
	ID    ID
	Event model.Event
}

// Document is the single owner of the live configuration and its snapshot.
//
// It is not safe for concurrent use; callers serialize access (the TUI runs every
// mutation on its update loop, the CLI runs one command per process).
type Document struct {
	secrets model.Secrets
	entries []Entry
	extra   map[string]json.RawMessage

	snapshot  model.Config
	nextID    ID
	dirtySeen bool

	log *slog.Logger
}

// New returns an empty document whose snapshot matches it (clean).
func New(logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Document{log: logger}
	d.commit(model.Empty())
	return d
}

// Open decodes b into a new document. The document starts clean.
func Open(b []byte, logger *slog.Logger) (*Document, error) {
	d := New(logger)
	if err := d.Load(b); err != nil {
		return nil, err
	}
	return d, nil
}

// Config returns a deep copy of the live configuration.
func (d *Document) Config() model.Config {
	cfg := model.Config{
		Secrets: d.secrets,
		Events:  make([]model.Event, len(d.entries)),
		Extra:   d.extra,
	}
	for i, e := range d.entries {
		cfg.Events[i] = e.Event
	}
	return cfg.Clone()
}

func (d *Document) Secrets() model.Secrets {
	return d.secrets.Clone()
}

func (d *Document) Len() int {
	return len(d.entries)
}

// Event returns the event at index i.
func (d *Document) Event(i int) (model.Event, bool) {
	if !d.inRange(i) {
		return model.Event{}, false
	}
	return d.entries[i].Event.Clone(), true
}

// Entries returns the events with their ids, in list order.
func (d *Document) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	for i, e := range d.entries {
		out[i] = Entry{ID: e.ID, Event: e.Event.Clone()}
	}
	return out
}

// IDAt returns the id of the event at index i.
func (d *Document) IDAt(i int) (ID, bool) {
	if !d.inRange(i) {
		return 0, false
	}
	return d.entries[i].ID, true
}

// IndexOf returns the current position of id, or -1.
func (d *Document) IndexOf(id ID) int {
	for i, e := range d.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// SetSecret replaces one secrets field.
func (d *Document) SetSecret(f model.SecretField, v string) {
	d.secrets.Set(f, v)
}

// IsDirty reports whether the live configuration differs from the snapshot. The first
// check that finds unsaved changes after a clean one is logged.
func (d *Document) IsDirty() bool {
	dirty := !ConfigsEqual(d.Config(), d.snapshot)
	if dirty && !d.dirtySeen {
		d.log.Info("unsaved changes", "events", len(d.entries), "snapshotEvents", len(d.snapshot.Events))
	}
	d.dirtySeen = dirty
	return dirty
}

// Load replaces the whole configuration with the decoded contents of b and resets the
// snapshot. On a parse error nothing changes.
func (d *Document) Load(b []byte) error {
	cfg, err := Decode(b)
	if err != nil {
		return err
	}
	d.commit(cfg)
	d.log.Info("config loaded", "events", len(cfg.Events))
	return nil
}

// Reset swaps in cfg wholesale and resets the snapshot, as if cfg had just been loaded.
func (d *Document) Reset(cfg model.Config) {
	d.commit(cfg)
}

// Save encodes the live configuration and makes it the new snapshot.
func (d *Document) Save(pretty bool) ([]byte, error) {
	cfg := d.Config()
	b, err := Encode(cfg, pretty)
	if err != nil {
		return nil, err
	}
	d.snapshot = cfg
	d.log.Info("config saved", "events", len(cfg.Events), "bytes", len(b))
	return b, nil
}

// MarkSaved makes the live configuration the snapshot without encoding.
func (d *Document) MarkSaved() {
	d.snapshot = d.Config()
}

// NewEventForm returns the pre-filled form for adding an event at time now.
func NewEventForm(now time.Time) validate.Form {
	return validate.NewForm(now)
}

// EditForm returns the pre-filled form for editing the event at index i.
func (d *Document) EditForm(i int) (validate.Form, bool) {
	ev, ok := d.Event(i)
	if !ok {
		return validate.Form{}, false
	}
	return validate.FormFromEvent(ev), true
}

// Submit validates f and commits it: index -1 appends a new event, a valid index replaces
// that event in place, keeping any keys the form does not cover. An out-of-range index is
// a no-op. The returned error is always a *validate.Error.
func (d *Document) Submit(index int, f validate.Form) (ID, error) {
	ev, err := validate.Parse(f)
	if err != nil {
		return 0, err
	}
	if index == -1 {
		return d.Add(ev), nil
	}
	if old, ok := d.Event(index); ok {
		ev.Extra = old.Extra
	}
	if !d.Replace(index, ev) {
		return 0, nil
	}
	return d.entries[index].ID, nil
}

// SetEventField replaces a single field of the event at index i, validating the result
// like an edit form would.
func (d *Document) SetEventField(i int, f model.EventField, v string) error {
	form, ok := d.EditForm(i)
	if !ok {
		d.log.Debug("set field: index out of range", "index", i, "len", len(d.entries))
		return nil
	}
	form.Set(f, v)
	_, err := d.Submit(i, form)
	return err
}

func (d *Document) commit(cfg model.Config) {
	cfg = cfg.Clone()
	d.secrets = cfg.Secrets
	d.extra = cfg.Extra
	d.entries = make([]Entry, 0, len(cfg.Events))
	for _, ev := range cfg.Events {
		d.entries = append(d.entries, Entry{ID: d.newID(), Event: ev})
	}
	d.snapshot = d.Config()
}

func (d *Document) newID() ID {
	d.nextID++
	return d.nextID
}

func (d *Document) inRange(i int) bool {
	return i >= 0 && i < len(d.entries)
}
