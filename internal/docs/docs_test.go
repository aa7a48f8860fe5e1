package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "file-format,keys,validation" {
		t.Fatalf("unexpected topics: %s", got)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Validation ")
	if !ok || !strings.Contains(body, "0xRRGGBB") {
		t.Fatalf("expected validation topic; ok=%v", ok)
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("unknown topic should not resolve")
	}
}

func TestRender(t *testing.T) {
	body, _ := Get("keys")
	out, err := Render(body, 60)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Events tab") {
		t.Fatalf("rendered output lost heading: %q", out)
	}
}
