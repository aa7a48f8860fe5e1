package format

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type sampleRows struct{}

func (sampleRows) Table() ([]string, [][]string) {
	return []string{"#", "title"}, [][]string{{"0", "Launch"}, {"1", "Party"}}
}

func TestWriteEDN_KebabKeywords(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"aio_key": "k", "imageCountDown": "a.bmp", "year": 2026}
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{:aio-key "k" :image-count-down "a.bmp" :year 2026}`
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestWrite_TableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"ok": true}, "table", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"ok":true}` {
		t.Fatalf("expected json fallback; got %q", buf.String())
	}
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleRows{}, "table", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Launch") || !strings.Contains(out, "title") {
		t.Fatalf("table missing content: %q", out)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "xml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWrite_EnvelopeTableRendersPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: sampleRows{}}, "table", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "Party") {
		t.Fatalf("expected payload table; got %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, Envelope{Data: sampleRows{}}, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"data":{}}` {
		t.Fatalf("unexpected json envelope: %q", buf.String())
	}
}

func TestUntil(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		target time.Time
		want   string
	}{
		{now.Add(30 * time.Second), "now"},
		{now.Add(72 * time.Hour), "3 days from now"},
		{now.Add(-2 * time.Hour), "2 hours ago"},
	}
	for _, c := range cases {
		if got := Until(c.target, now); got != c.want {
			t.Fatalf("Until(%s): got %q want %q", c.target, got, c.want)
		}
	}
}
