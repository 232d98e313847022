package storyboard_test

import (
	"testing"

	"github.com/anonymous-tct-authors/tct-models/storyboard"
)

const sampleBoard = `
storyboard Showcase v1 {
  defaults {
    width: 700
    height: 350
    speed: 800
  }

  # Pod manifest walkthrough
  anim tokens "pod" {
    input: "{\"apiVersion\": \"v1\", \"kind\": \"${meta.kind}\"}"
    out: "out/pod.gif"
    title: "TCT: ${meta.title}"
  }

  anim compare "fair" {
    out: "out/compare.gif"
    height: 380
  }

  anim schemas "vocab" {
    out: "out/schemas.gif"
  }
}
`

func TestParseBoard(t *testing.T) {
	doc, err := storyboard.ParseString(sampleBoard)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Showcase" {
		t.Fatalf("expected board name Showcase, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}
	if len(doc.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(doc.Entries))
	}
	if doc.Entries[0].Defaults == nil {
		t.Fatalf("defaults entry missing")
	}
	anim := doc.Entries[1].Anim
	if anim == nil || anim.Kind != "tokens" {
		t.Fatalf("expected tokens anim, got %+v", doc.Entries[1])
	}
	if string(anim.Name) != "pod" {
		t.Fatalf("expected anim name pod, got %s", anim.Name)
	}
	if len(anim.Block.Assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(anim.Block.Assignments))
	}
}

func TestCompileMergesDefaults(t *testing.T) {
	doc, err := storyboard.ParseString(sampleBoard)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	data := map[string]any{
		"meta": map[string]any{"title": "Pod manifest", "kind": "Pod"},
	}
	anims, err := storyboard.Compile(doc, data)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(anims) != 3 {
		t.Fatalf("expected 3 animations, got %d", len(anims))
	}

	pod := anims[0]
	if pod.Kind != storyboard.KindTokens || pod.Name != "pod" {
		t.Fatalf("unexpected first animation: %+v", pod)
	}
	if w, err := pod.Int("width", 0); err != nil || w != 700 {
		t.Fatalf("defaults should provide width 700, got %d (%v)", w, err)
	}
	if got := pod.String("title", ""); got != "TCT: Pod manifest" {
		t.Fatalf("interpolation failed: %q", got)
	}
	if got := pod.String("input", ""); got != `{"apiVersion": "v1", "kind": "Pod"}` {
		t.Fatalf("interpolation in input failed: %q", got)
	}

	fair := anims[1]
	if h, err := fair.Int("height", 0); err != nil || h != 380 {
		t.Fatalf("anim assignment should override defaults, got %d (%v)", h, err)
	}
	if s, err := fair.Int("speed", 0); err != nil || s != 800 {
		t.Fatalf("defaults should survive override of other keys, got %d (%v)", s, err)
	}
}

func TestCompileRejectsUnknownKind(t *testing.T) {
	doc, err := storyboard.ParseString(`
storyboard Bad v1 {
  anim spiral "x" {
    out: "x.gif"
  }
}
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := storyboard.Compile(doc, nil); err == nil {
		t.Fatalf("unknown kind should fail compile")
	}
}

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"user":  map[string]any{"name": "Ada"},
		"items": []any{map[string]any{"id": 7}},
	}
	cases := []struct {
		in, want string
	}{
		{"Hello, ${user.name}!", "Hello, Ada!"},
		{"id=${items[0].id}", "id=7"},
		{"missing ${user.age}", "missing ${user.age}"},
		{"no exprs", "no exprs"},
	}
	for _, c := range cases {
		if got := storyboard.Interpolate(c.in, data); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if got := storyboard.Interpolate("${user.name}", nil); got != "${user.name}" {
		t.Fatalf("nil data should keep placeholder, got %q", got)
	}
}
