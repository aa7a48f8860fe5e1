// Package validate checks event edit forms before they are committed to a document.
package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"countdown-cli/internal/model"
)

const (
	MsgNotNumeric   = "Date and Time must be numeric values!"
	MsgOutOfRange   = "Date and Time must be within range values!"
	MsgInvalidDate  = "Date and Time must a valid date!"
	MsgInvalidColor = "Forecolor is not a valid color! Enter in the format of 0xRRGGBB, where RR GG BB are 00 through FF"
)

const (
	MinYear = 1970
	MaxYear = 3000
)

var hexColorRe = regexp.MustCompile(`^0x[0-9A-Fa-f]{6}$`)

// Error is a user-facing validation failure. Message is one of the Msg* constants.
type Error struct {
	Field   model.EventField
	Message string
}

func (e *Error) Error() string { return e.Message }

// Form is an event as typed into an edit form: every field is raw text.
type Form struct {
	Title          string
	Subtitle       string
	Forecolor      string
	Year           string
	Month          string
	Day            string
	Hour           string
	Minute         string
	ImageCountDown string
	ImageEventDay  string
}

// NewForm returns the defaults for adding an event: now's date/time and the default color.
func NewForm(now time.Time) Form {
	return Form{
		Forecolor: model.DefaultForecolor,
		Year:      strconv.Itoa(now.Year()),
		Month:     strconv.Itoa(int(now.Month())),
		Day:       strconv.Itoa(now.Day()),
		Hour:      strconv.Itoa(now.Hour()),
		Minute:    strconv.Itoa(now.Minute()),
	}
}

// FormFromEvent pre-fills a form for editing ev.
func FormFromEvent(ev model.Event) Form {
	return Form{
		Title:          ev.Title,
		Subtitle:       ev.Subtitle,
		Forecolor:      ev.Forecolor,
		Year:           strconv.Itoa(ev.Year),
		Month:          strconv.Itoa(ev.Month),
		Day:            strconv.Itoa(ev.Day),
		Hour:           model.Pad2(ev.Hour),
		Minute:         model.Pad2(ev.Minute),
		ImageCountDown: ev.ImageCountDown,
		ImageEventDay:  ev.ImageEventDay,
	}
}

func (f *Form) field(k model.EventField) *string {
	switch k {
	case model.EventTitle:
		return &f.Title
	case model.EventSubtitle:
		return &f.Subtitle
	case model.EventForecolor:
		return &f.Forecolor
	case model.EventYear:
		return &f.Year
	case model.EventMonth:
		return &f.Month
	case model.EventDay:
		return &f.Day
	case model.EventHour:
		return &f.Hour
	case model.EventMinute:
		return &f.Minute
	case model.EventImageCountDown:
		return &f.ImageCountDown
	case model.EventImageEventDay:
		return &f.ImageEventDay
	}
	return nil
}

func (f Form) Get(k model.EventField) string {
	if p := f.field(k); p != nil {
		return *p
	}
	return ""
}

func (f *Form) Set(k model.EventField, v string) {
	if p := f.field(k); p != nil {
		*p = v
	}
}

// IsHexColor reports whether s looks like 0xRRGGBB.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

type dateParts struct {
	year, month, day, hour, minute float64
}

// Check validates the date/time and color of f. Rules run in a fixed order and only the
// first failure is reported.
func Check(f Form) error {
	var p dateParts
	nums := []struct {
		field model.EventField
		raw   string
		dst   *float64
	}{
		{model.EventYear, f.Year, &p.year},
		{model.EventMonth, f.Month, &p.month},
		{model.EventDay, f.Day, &p.day},
		{model.EventHour, f.Hour, &p.hour},
		{model.EventMinute, f.Minute, &p.minute},
	}
	for _, n := range nums {
		v, ok := parseNumber(n.raw)
		if !ok {
			return &Error{Field: n.field, Message: MsgNotNumeric}
		}
		*n.dst = v
	}

	ranges := []struct {
		field    model.EventField
		v        float64
		min, max float64
	}{
		{model.EventYear, p.year, MinYear, MaxYear},
		{model.EventMonth, p.month, 1, 12},
		{model.EventDay, p.day, 1, 31},
		{model.EventHour, p.hour, 0, 23},
		{model.EventMinute, p.minute, 0, 59},
	}
	for _, r := range ranges {
		if r.v < r.min || r.v > r.max {
			return &Error{Field: r.field, Message: MsgOutOfRange}
		}
	}

	if !isValidDate(p) {
		return &Error{Field: model.EventDay, Message: MsgInvalidDate}
	}

	if !IsHexColor(f.Forecolor) {
		return &Error{Field: model.EventForecolor, Message: MsgInvalidColor}
	}
	return nil
}

// Parse validates f and converts it to an Event.
func Parse(f Form) (model.Event, error) {
	if err := Check(f); err != nil {
		return model.Event{}, err
	}
	// Check guarantees these are integral.
	y, _ := model.ParseInt(f.Year)
	mo, _ := model.ParseInt(f.Month)
	d, _ := model.ParseInt(f.Day)
	h, _ := model.ParseInt(f.Hour)
	mi, _ := model.ParseInt(f.Minute)
	return model.Event{
		Title:          f.Title,
		Subtitle:       f.Subtitle,
		Forecolor:      f.Forecolor,
		Year:           y,
		Month:          mo,
		Day:            d,
		Hour:           h,
		Minute:         mi,
		ImageCountDown: f.ImageCountDown,
		ImageEventDay:  f.ImageEventDay,
	}, nil
}

// CheckEvent runs the form rules against an already-parsed event.
func CheckEvent(ev model.Event) error {
	return Check(FormFromEvent(ev))
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isValidDate builds a calendar time from the parts and requires every component to
// survive the round trip (time.Date normalizes Feb 30 into March, for example).
func isValidDate(p dateParts) bool {
	parts := []float64{p.year, p.month, p.day, p.hour, p.minute}
	for _, v := range parts {
		if v != math.Trunc(v) {
			return false
		}
	}
	y, mo, d, h, mi := int(p.year), int(p.month), int(p.day), int(p.hour), int(p.minute)
	t := time.Date(y, time.Month(mo), d, h, mi, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == mo && t.Day() == d && t.Hour() == h && t.Minute() == mi
}
