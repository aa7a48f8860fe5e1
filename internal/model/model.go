package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultForecolor is the countdown text color used when an event does not set one.
const DefaultForecolor = "0xF0C810"

// Secrets holds the network and cloud credentials the display reads at boot.
//
// Extra carries keys the editor does not know about; they are written back unchanged.
type Secrets struct {
	SSID        string
	Password    string
	Timezone    string
	AIOUsername string
	AIOKey      string

	// Optional display geometry. The firmware falls back to 320x240 when absent.
	ScreenWidth  *int
	ScreenHeight *int

	Extra map[string]json.RawMessage
}

// Event is one countdown entry.
//
// Hour and Minute are persisted as two-character zero-padded strings ("07"), every
// other numeric field as a JSON number.
type Event struct {
	Title          string
	Subtitle       string
	Forecolor      string
	Year           int
	Month          int
	Day            int
	Hour           int
	Minute         int
	ImageCountDown string
	ImageEventDay  string

	// Keys outside the ten edited fields (the firmware also reads backcolor and
	// foreColorCount). Edits keep them.
	Extra map[string]json.RawMessage
}

// Config is the whole device configuration file.
//
// Extra carries unknown top-level keys from a loaded file so that saving does not drop them.
type Config struct {
	Secrets Secrets
	Events  []Event
	Extra   map[string]json.RawMessage
}

// Empty returns the default configuration: blank secrets and no events.
func Empty() Config {
	return Config{Events: []Event{}}
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	out := Config{
		Secrets: c.Secrets.Clone(),
		Events:  make([]Event, len(c.Events)),
		Extra:   cloneRaw(c.Extra),
	}
	for i, ev := range c.Events {
		out.Events[i] = ev.Clone()
	}
	return out
}

// Clone returns a copy that shares no extra keys with e.
func (e Event) Clone() Event {
	e.Extra = cloneRaw(e.Extra)
	return e
}

func (s Secrets) Clone() Secrets {
	out := s
	out.Extra = cloneRaw(s.Extra)
	if s.ScreenWidth != nil {
		w := *s.ScreenWidth
		out.ScreenWidth = &w
	}
	if s.ScreenHeight != nil {
		h := *s.ScreenHeight
		out.ScreenHeight = &h
	}
	return out
}

func (c Config) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+2)
	for k, v := range c.Extra {
		out[k] = v
	}
	events := c.Events
	if events == nil {
		events = []Event{}
	}
	out["secrets"] = c.Secrets
	out["events"] = events
	return json.Marshal(out)
}

type secretsWire struct {
	SSID         string `json:"ssid"`
	Password     string `json:"password"`
	Timezone     string `json:"timezone"`
	AIOUsername  string `json:"aio_username"`
	AIOKey       string `json:"aio_key"`
	ScreenWidth  *int   `json:"screen_width,omitempty"`
	ScreenHeight *int   `json:"screen_height,omitempty"`
}

func (s Secrets) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(secretsWire{
		SSID:         s.SSID,
		Password:     s.Password,
		Timezone:     s.Timezone,
		AIOUsername:  s.AIOUsername,
		AIOKey:       s.AIOKey,
		ScreenWidth:  s.ScreenWidth,
		ScreenHeight: s.ScreenHeight,
	})
	if err != nil {
		return nil, err
	}
	return appendExtra(b, s.Extra, s.encodes)
}

// UnmarshalJSON accepts any object. String fields take any scalar; screen sizes take
// numbers or numeric strings, and a size that is neither is kept verbatim in Extra.
func (s *Secrets) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Secrets{}
	for k, v := range raw {
		if f, ok := ParseSecretField(k); ok {
			s.Set(f, looseString(v))
			continue
		}
		switch k {
		case "screen_width", "screen_height":
			n, ok := ParseInt(looseString(v))
			if ok {
				if k == "screen_width" {
					s.ScreenWidth = &n
				} else {
					s.ScreenHeight = &n
				}
				continue
			}
			if looseString(v) == "" {
				continue
			}
		}
		if s.Extra == nil {
			s.Extra = map[string]json.RawMessage{}
		}
		s.Extra[k] = v
	}
	return nil
}

// encodes reports whether the fixed fields of s already write key k.
func (s Secrets) encodes(k string) bool {
	switch k {
	case "screen_width":
		return s.ScreenWidth != nil
	case "screen_height":
		return s.ScreenHeight != nil
	}
	_, ok := ParseSecretField(k)
	return ok
}

type eventWire struct {
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	Forecolor      string `json:"forecolor"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	Day            int    `json:"day"`
	Hour           string `json:"hour"`
	Minute         string `json:"minute"`
	ImageCountDown string `json:"imageCountDown"`
	ImageEventDay  string `json:"imageEventDay"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(eventWire{
		Title:          e.Title,
		Subtitle:       e.Subtitle,
		Forecolor:      e.Forecolor,
		Year:           e.Year,
		Month:          e.Month,
		Day:            e.Day,
		Hour:           Pad2(e.Hour),
		Minute:         Pad2(e.Minute),
		ImageCountDown: e.ImageCountDown,
		ImageEventDay:  e.ImageEventDay,
	})
	if err != nil {
		return nil, err
	}
	return appendExtra(b, e.Extra, isEventKey)
}

// UnmarshalJSON is lenient: numeric fields accept numbers or numeric strings, string
// fields accept any scalar, and anything unusable decodes to the zero value. Records are
// never rejected here; validation happens when an event is edited. Unknown keys land in
// Extra.
func (e *Event) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*e = Event{}
		return nil
	}
	*e = Event{
		Title:          looseString(raw["title"]),
		Subtitle:       looseString(raw["subtitle"]),
		Forecolor:      looseString(raw["forecolor"]),
		Year:           looseInt(raw["year"]),
		Month:          looseInt(raw["month"]),
		Day:            looseInt(raw["day"]),
		Hour:           looseInt(raw["hour"]),
		Minute:         looseInt(raw["minute"]),
		ImageCountDown: looseString(raw["imageCountDown"]),
		ImageEventDay:  looseString(raw["imageEventDay"]),
	}
	for k, v := range raw {
		if isEventKey(k) {
			continue
		}
		if e.Extra == nil {
			e.Extra = map[string]json.RawMessage{}
		}
		e.Extra[k] = v
	}
	return nil
}

func isEventKey(k string) bool {
	_, ok := ParseEventField(k)
	return ok
}

// appendExtra adds the entries of extra to the encoded object b, in key order. Keys for
// which known reports true are already in b and are skipped.
func appendExtra(b []byte, extra map[string]json.RawMessage, known func(string) bool) ([]byte, error) {
	if len(extra) == 0 {
		return b, nil
	}
	out := b[:len(b)-1]
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		if known(k) {
			continue
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		if out[len(out)-1] != '{' {
			out = append(out, ',')
		}
		out = append(out, kb...)
		out = append(out, ':')
		out = append(out, extra[k]...)
	}
	return append(out, '}'), nil
}

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	t := strings.TrimSpace(string(raw))
	if t == "null" {
		return ""
	}
	return t
}

func looseInt(raw json.RawMessage) int {
	s := looseString(raw)
	n, _ := ParseInt(s)
	return n
}

// ParseInt parses a decimal integer, tolerating surrounding spaces and integral
// floats ("2021.0"). ok is false for anything else.
func ParseInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// Pad2 formats n as at least two digits ("7" -> "07").
func Pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}

// Target is the moment the countdown reaches zero, in loc.
func (e Event) Target(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(e.Year, time.Month(e.Month), e.Day, e.Hour, e.Minute, 0, 0, loc)
}
