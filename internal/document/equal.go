package document

import (
	"encoding/json"
	"strconv"

	"countdown-cli/internal/model"
)

// Equal compares two decoded JSON values.
//
// Both sides must be containers (objects or arrays). They are equal when they have the same
// key-set and, for every key, either both values are containers that are Equal or both are
// identical scalars. Arrays are compared as objects keyed by index.
func Equal(a, b any) bool {
	ka, ok := fields(a)
	if !ok {
		return false
	}
	kb, ok := fields(b)
	if !ok {
		return false
	}
	if len(ka) != len(kb) {
		return false
	}
	for k, va := range ka {
		vb, present := kb[k]
		if !present {
			return false
		}
		_, aObj := fields(va)
		_, bObj := fields(vb)
		switch {
		case aObj && bObj:
			if !Equal(va, vb) {
				return false
			}
		case aObj || bObj:
			return false
		case va != vb:
			return false
		}
	}
	return true
}

func fields(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case []any:
		out := make(map[string]any, len(t))
		for i, x := range t {
			out[strconv.Itoa(i)] = x
		}
		return out, true
	}
	return nil, false
}

// Tree converts a configuration to its generic JSON form.
func Tree(cfg model.Config) (any, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfigsEqual applies Equal to the JSON forms of a and b.
func ConfigsEqual(a, b model.Config) bool {
	ta, err := Tree(a)
	if err != nil {
		return false
	}
	tb, err := Tree(b)
	if err != nil {
		return false
	}
	return Equal(ta, tb)
}
