package model

// SecretField names one of the Secrets string fields.
type SecretField int

const (
	SecretSSID SecretField = iota
	SecretPassword
	SecretTimezone
	SecretAIOUsername
	SecretAIOKey
)

var secretFieldKeys = [...]string{
	SecretSSID:        "ssid",
	SecretPassword:    "password",
	SecretTimezone:    "timezone",
	SecretAIOUsername: "aio_username",
	SecretAIOKey:      "aio_key",
}

var secretSetters = map[SecretField]func(*Secrets, string){
	SecretSSID:        func(s *Secrets, v string) { s.SSID = v },
	SecretPassword:    func(s *Secrets, v string) { s.Password = v },
	SecretTimezone:    func(s *Secrets, v string) { s.Timezone = v },
	SecretAIOUsername: func(s *Secrets, v string) { s.AIOUsername = v },
	SecretAIOKey:      func(s *Secrets, v string) { s.AIOKey = v },
}

var secretGetters = map[SecretField]func(Secrets) string{
	SecretSSID:        func(s Secrets) string { return s.SSID },
	SecretPassword:    func(s Secrets) string { return s.Password },
	SecretTimezone:    func(s Secrets) string { return s.Timezone },
	SecretAIOUsername: func(s Secrets) string { return s.AIOUsername },
	SecretAIOKey:      func(s Secrets) string { return s.AIOKey },
}

// SecretFields returns every secret field in file order.
func SecretFields() []SecretField {
	return []SecretField{SecretSSID, SecretPassword, SecretTimezone, SecretAIOUsername, SecretAIOKey}
}

func (f SecretField) String() string {
	if f < 0 || int(f) >= len(secretFieldKeys) {
		return "unknown"
	}
	return secretFieldKeys[f]
}

// Sensitive reports whether the value should be masked in the UI.
func (f SecretField) Sensitive() bool {
	return f == SecretPassword || f == SecretAIOKey
}

// ParseSecretField maps a JSON key ("aio_key") to its field.
func ParseSecretField(key string) (SecretField, bool) {
	for i, k := range secretFieldKeys {
		if k == key {
			return SecretField(i), true
		}
	}
	return 0, false
}

func (s Secrets) Get(f SecretField) string {
	get, ok := secretGetters[f]
	if !ok {
		return ""
	}
	return get(s)
}

// Set replaces one field. Unknown fields are ignored.
func (s *Secrets) Set(f SecretField, v string) {
	if set, ok := secretSetters[f]; ok {
		set(s, v)
	}
}

// EventField names one of the ten Event fields.
type EventField int

const (
	EventTitle EventField = iota
	EventSubtitle
	EventForecolor
	EventYear
	EventMonth
	EventDay
	EventHour
	EventMinute
	EventImageCountDown
	EventImageEventDay
)

var eventFieldKeys = [...]string{
	EventTitle:          "title",
	EventSubtitle:       "subtitle",
	EventForecolor:      "forecolor",
	EventYear:           "year",
	EventMonth:          "month",
	EventDay:            "day",
	EventHour:           "hour",
	EventMinute:         "minute",
	EventImageCountDown: "imageCountDown",
	EventImageEventDay:  "imageEventDay",
}

// EventFields returns every event field in file order.
func EventFields() []EventField {
	out := make([]EventField, len(eventFieldKeys))
	for i := range eventFieldKeys {
		out[i] = EventField(i)
	}
	return out
}

func (f EventField) String() string {
	if f < 0 || int(f) >= len(eventFieldKeys) {
		return "unknown"
	}
	return eventFieldKeys[f]
}

// Numeric reports whether the field holds a date/time component.
func (f EventField) Numeric() bool {
	return f >= EventYear && f <= EventMinute
}

func ParseEventField(key string) (EventField, bool) {
	for i, k := range eventFieldKeys {
		if k == key {
			return EventField(i), true
		}
	}
	return 0, false
}
