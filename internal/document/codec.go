package document

import (
	"encoding/json"
	"fmt"

	"countdown-cli/internal/model"
)

// ParseError reports a configuration file that is not a JSON object.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse config: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Decode parses a configuration file into a fresh value. Top-level keys present in the
// input replace the empty defaults; absent keys keep them. Unknown top-level keys are kept
// in Config.Extra. Secrets and event records are decoded leniently, never schema-checked.
func Decode(b []byte) (model.Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return model.Config{}, &ParseError{Err: err}
	}
	if raw == nil {
		return model.Config{}, &ParseError{Err: fmt.Errorf("top-level value is null")}
	}

	cfg := model.Empty()
	for k, v := range raw {
		switch k {
		case "secrets":
			if isNull(v) {
				continue
			}
			var s model.Secrets
			if err := json.Unmarshal(v, &s); err != nil {
				return model.Config{}, &ParseError{Err: fmt.Errorf("secrets: %w", err)}
			}
			cfg.Secrets = s
		case "events":
			if isNull(v) {
				continue
			}
			var evs []model.Event
			if err := json.Unmarshal(v, &evs); err != nil {
				return model.Config{}, &ParseError{Err: fmt.Errorf("events: %w", err)}
			}
			if evs == nil {
				evs = []model.Event{}
			}
			cfg.Events = evs
		default:
			if cfg.Extra == nil {
				cfg.Extra = map[string]json.RawMessage{}
			}
			cfg.Extra[k] = v
		}
	}
	return cfg, nil
}

// Encode serializes cfg. Output is compact unless pretty is set.
func Encode(cfg model.Config, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(cfg, "", "  ")
	}
	return json.Marshal(cfg)
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}
