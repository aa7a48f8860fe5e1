package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"

	"countdown-cli/internal/model"
	"countdown-cli/internal/validate"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ev(title string) model.Event {
	return model.Event{Title: title, Forecolor: model.DefaultForecolor, Year: 2030, Month: 1, Day: 2, Hour: 3, Minute: 4}
}

func seeded(t *testing.T, titles ...string) *Document {
	t.Helper()
	cfg := model.Empty()
	for _, tt := range titles {
		cfg.Events = append(cfg.Events, ev(tt))
	}
	d := New(quietLogger())
	d.Reset(cfg)
	if d.IsDirty() {
		t.Fatalf("freshly reset document should be clean")
	}
	return d
}

func titles(d *Document) string {
	var out []string
	for _, e := range d.Entries() {
		out = append(out, e.Event.Title)
	}
	return strings.Join(out, ",")
}

func ints(xs ...int) mapset.Set[int] {
	return mapset.NewThreadUnsafeSet(xs...)
}

func TestMove_DragToEnd(t *testing.T) {
	d := seeded(t, "A", "B", "C")
	if !d.Move(0, 2) {
		t.Fatalf("expected move to succeed")
	}
	if got := titles(d); got != "B,C,A" {
		t.Fatalf("got %s", got)
	}
	if !d.IsDirty() {
		t.Fatalf("expected dirty after reorder")
	}
}

func TestMoveUp_LastRow(t *testing.T) {
	d := seeded(t, "A", "B", "C")
	d.MoveUp(2)
	if got := titles(d); got != "A,C,B" {
		t.Fatalf("got %s", got)
	}
}

func TestMove_OutOfRangeIsNoop(t *testing.T) {
	d := seeded(t, "A", "B", "C")
	for _, tc := range [][2]int{{0, -1}, {-1, 0}, {0, 3}, {5, 1}, {1, 1}} {
		if d.Move(tc[0], tc[1]) {
			t.Fatalf("Move(%d,%d) should be a no-op", tc[0], tc[1])
		}
	}
	if d.MoveUp(0) || d.MoveDown(2) {
		t.Fatalf("step moves past the ends should be no-ops")
	}
	if got := titles(d); got != "A,B,C" {
		t.Fatalf("got %s", got)
	}
	if d.IsDirty() {
		t.Fatalf("no-op moves must not dirty the document")
	}
}

func TestDelete_Selected(t *testing.T) {
	d := seeded(t, "A", "B", "C")
	if n := d.Delete(ints(0, 2)); n != 2 {
		t.Fatalf("expected 2 removed; got %d", n)
	}
	if got := titles(d); got != "B" {
		t.Fatalf("got %s", got)
	}
	if !d.IsDirty() {
		t.Fatalf("expected dirty after delete")
	}
}

func TestDelete_IgnoresOutOfRange(t *testing.T) {
	d := seeded(t, "A", "B")
	if n := d.Delete(ints(-1, 7, 1)); n != 1 {
		t.Fatalf("expected 1 removed; got %d", n)
	}
	if got := titles(d); got != "A" {
		t.Fatalf("got %s", got)
	}
}

func TestDuplicate_AppendsDistinctCopy(t *testing.T) {
	d := seeded(t, "A", "B")
	ids := d.Duplicate(ints(0))
	if len(ids) != 1 {
		t.Fatalf("expected one copy; got %d", len(ids))
	}
	if got := titles(d); got != "A,B,A" {
		t.Fatalf("got %s", got)
	}
	orig, _ := d.Event(0)
	cp, _ := d.Event(2)
	if !reflect.DeepEqual(orig, cp) {
		t.Fatalf("copy differs from original: %+v vs %+v", cp, orig)
	}
	origID, _ := d.IDAt(0)
	if ids[0] == origID {
		t.Fatalf("copy must get a new id")
	}

	if err := d.SetEventField(2, model.EventTitle, "A2"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if a, _ := d.Event(0); a.Title != "A" {
		t.Fatalf("mutating the copy changed the original: %q", a.Title)
	}
}

func TestDuplicate_DescendingOrder(t *testing.T) {
	d := seeded(t, "A", "B", "C")
	d.Duplicate(ints(0, 2))
	if got := titles(d); got != "A,B,C,C,A" {
		t.Fatalf("got %s", got)
	}
}

func TestIDs_SurviveReorder(t *testing.T) {
	d := seeded(t, "A", "B", "C")
	idA, _ := d.IDAt(0)
	idC, _ := d.IDAt(2)
	d.Move(0, 2)
	if d.IndexOf(idA) != 2 {
		t.Fatalf("expected A at 2; got %d", d.IndexOf(idA))
	}
	if n := d.DeleteIDs(mapset.NewThreadUnsafeSet(idC)); n != 1 {
		t.Fatalf("expected to delete C")
	}
	if got := titles(d); got != "B,A" {
		t.Fatalf("got %s", got)
	}
	d.DuplicateIDs(mapset.NewThreadUnsafeSet(idA))
	if got := titles(d); got != "B,A,A" {
		t.Fatalf("got %s", got)
	}
	if !d.MoveID(idA, 0) || titles(d) != "A,B,A" {
		t.Fatalf("MoveID failed: %s", titles(d))
	}
}

func TestSubmit_AddAndEdit(t *testing.T) {
	d := seeded(t, "A", "B")
	f := validate.FormFromEvent(ev("New"))
	if _, err := d.Submit(-1, f); err != nil {
		t.Fatalf("add: %v", err)
	}
	if d.Len() != 3 || titles(d) != "A,B,New" {
		t.Fatalf("add did not append: %s", titles(d))
	}

	f.Title = "B2"
	f.Hour = "9"
	if _, err := d.Submit(1, f); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if d.Len() != 3 || titles(d) != "A,B2,New" {
		t.Fatalf("edit changed length or order: %s", titles(d))
	}
	if b, _ := d.Event(1); b.Hour != 9 {
		t.Fatalf("expected hour 9; got %d", b.Hour)
	}

	if _, err := d.Submit(10, f); err != nil {
		t.Fatalf("out-of-range edit should be a silent no-op; got %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("out-of-range edit changed length")
	}
}

func TestSubmit_ValidationBlocksCommit(t *testing.T) {
	d := seeded(t, "A")
	f := validate.FormFromEvent(ev("A"))
	f.Forecolor = "0xGGGGGG"
	_, err := d.Submit(0, f)
	var verr *validate.Error
	if !errors.As(err, &verr) || verr.Message != validate.MsgInvalidColor {
		t.Fatalf("expected color error; got %v", err)
	}
	if d.IsDirty() {
		t.Fatalf("rejected edit must not change the document")
	}
}

func TestSetSecret_Dirty(t *testing.T) {
	d := seeded(t)
	d.SetSecret(model.SecretSSID, "home")
	if !d.IsDirty() {
		t.Fatalf("expected dirty after secret edit")
	}
	d.SetSecret(model.SecretSSID, "")
	if d.IsDirty() {
		t.Fatalf("reverting the edit should be clean again")
	}
}

func TestLoad_ParseErrorLeavesConfigUntouched(t *testing.T) {
	d := seeded(t, "A")
	d.SetSecret(model.SecretTimezone, "Europe/Oslo")
	err := d.Load([]byte(`{"secrets": {`))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError; got %v", err)
	}
	if titles(d) != "A" || d.Secrets().Timezone != "Europe/Oslo" {
		t.Fatalf("failed load mutated the document")
	}
	if !d.IsDirty() {
		t.Fatalf("failed load must not reset the snapshot")
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	d := seeded(t, "A")
	d.SetSecret(model.SecretSSID, "old")
	if err := d.Load([]byte(`{"events":[{"title":"X","hour":"07","minute":"5"}],"theme":"dark"}`)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Secrets().SSID != "" {
		t.Fatalf("absent secrets key should fall back to defaults")
	}
	if e, _ := d.Event(0); e.Title != "X" || e.Hour != 7 || e.Minute != 5 {
		t.Fatalf("unexpected event: %+v", e)
	}
	if d.IsDirty() {
		t.Fatalf("document should be clean right after load")
	}
	b, err := d.Save(false)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(string(b), `"theme":"dark"`) {
		t.Fatalf("unknown key dropped on save: %s", b)
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	d := seeded(t, "A", "B")
	d.SetSecret(model.SecretAIOKey, "k")
	b, err := d.Save(true)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if d.IsDirty() {
		t.Fatalf("expected clean right after save")
	}
	d2, err := Open(b, quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !ConfigsEqual(d.Config(), d2.Config()) {
		t.Fatalf("round trip changed the config")
	}
}

func TestEqual_Rules(t *testing.T) {
	parse := func(s string) any {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			t.Fatalf("bad fixture %s: %v", s, err)
		}
		return v
	}
	cases := []struct {
		a, b string
		want bool
	}{
		{`{"a":1,"b":{"c":"x"}}`, `{"b":{"c":"x"},"a":1}`, true},
		{`{"a":1}`, `{"a":"1"}`, false},
		{`{"a":1}`, `{"a":1,"b":2}`, false},
		{`{"a":[{"x":1}]}`, `{"a":[{"x":1}]}`, true},
		{`{"a":[{"x":1}]}`, `{"a":[{"y":1}]}`, false},
		{`{"a":[1,2]}`, `{"a":[2,1]}`, false},
		{`{"a":{}}`, `{"a":null}`, false},
		{`1`, `1`, false},
	}
	for _, tc := range cases {
		if got := Equal(parse(tc.a), parse(tc.b)); got != tc.want {
			t.Fatalf("Equal(%s, %s) = %v want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEdit_KeepsFirmwareKeys(t *testing.T) {
	in := `{"secrets":{"ssid":"a","mqtt":"x"},"events":[{"title":"T","forecolor":"0x112233","year":2030,"month":1,"day":2,"hour":"03","minute":"04","imageCountDown":"a.bmp","imageEventDay":"b.bmp","backcolor":1234,"foreColorCount":5678}]}`
	d, err := Open([]byte(in), quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	d.SetSecret(model.SecretSSID, "b")
	if err := d.SetEventField(0, model.EventTitle, "Renamed"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	d.Duplicate(ints(0))
	b, err := d.Save(false)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var out struct {
		Secrets map[string]any   `json:"secrets"`
		Events  []map[string]any `json:"events"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("saved bytes are not json: %v", err)
	}
	if out.Secrets["mqtt"] != "x" || out.Secrets["ssid"] != "b" {
		t.Fatalf("unexpected secrets: %v", out.Secrets)
	}
	if len(out.Events) != 2 {
		t.Fatalf("expected original and copy; got %d", len(out.Events))
	}
	for i, e := range out.Events {
		if e["title"] != "Renamed" || e["backcolor"] != float64(1234) || e["foreColorCount"] != float64(5678) {
			t.Fatalf("event %d lost keys: %v", i, e)
		}
	}
}

func TestIsDirty_LogsOncePerChange(t *testing.T) {
	var buf bytes.Buffer
	d := New(slog.New(slog.NewTextHandler(&buf, nil)))
	d.Add(ev("A"))
	d.IsDirty()
	d.IsDirty()
	if n := strings.Count(buf.String(), "unsaved changes"); n != 1 {
		t.Fatalf("expected one info line; got %d:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "level=INFO") {
		t.Fatalf("expected info level: %s", buf.String())
	}

	d.MarkSaved()
	d.IsDirty()
	d.Add(ev("B"))
	d.IsDirty()
	if n := strings.Count(buf.String(), "unsaved changes"); n != 2 {
		t.Fatalf("a new change after a clean check should log again; got %d", n)
	}
}
