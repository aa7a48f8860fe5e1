package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tabular is implemented by command payloads that can also be shown as a table.
type Tabular interface {
	Table() (headers []string, rows [][]string)
}

// Envelope is the {"data": ...} wrapper printed by every command. In table format the
// payload itself is rendered when it is Tabular.
type Envelope struct {
	Data any `json:"data"`
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - table (payloads implementing Tabular; anything else falls back to json)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "table":
		if t, ok := tabular(v); ok {
			return WriteTable(w, t)
		}
		return WriteJSON(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable renders t as a bordered table.
func WriteTable(w io.Writer, t Tabular) error {
	headers, rows := t.Table()
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

func tabular(v any) (Tabular, bool) {
	if e, ok := v.(Envelope); ok {
		v = e.Data
	}
	t, ok := v.(Tabular)
	return t, ok
}
