package command_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"blox/command"
	"blox/store"
	"blox/style"
)

var (
	base        = style.DefaultContext
	mobileHover = style.Context{Device: "mobile", Orientation: "all", Pseudo: "hover"}
)

func TestSetGetStyle(t *testing.T) {
	s := fixture()
	c := testCommands(t, nil)

	r := c.SetStyle(s, "txt", "color", "red", base)
	if !r.Ok() {
		t.Fatalf("SetStyle() = %s", r.Error())
	}
	if diff := cmp.Diff([]string{"txt"}, r.Patch.IDs()); diff != "" {
		t.Errorf("patch ids mismatch (-want +got):\n%s", diff)
	}
	s.Apply(r.Patch)

	for _, ctx := range []style.Context{base, mobileHover} {
		g := c.GetStyle(s, "txt", "color", ctx)
		if !g.Ok() || g.Value != "red" {
			t.Errorf("GetStyle(%s) = %q, %s, want red", ctx, g.Value, g.Error())
		}
	}

	tests := []struct {
		name  string
		key   string
		value string
		ctx   style.Context
	}{
		{"bad value", "color", "10px", base},
		{"unknown key", "colour", "red", base},
		{"unknown device", "color", "red", style.Context{Device: "tv", Orientation: "all", Pseudo: "all"}},
		{"incomplete context", "color", "red", style.Context{Device: "all"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := c.SetStyle(s, "txt", tt.key, tt.value, tt.ctx); r.Status != command.StatusInvalid || len(r.Patch) != 0 {
				t.Errorf("SetStyle() = %v with %d patched, want invalid", r.Status, len(r.Patch))
			}
		})
	}
	if r := c.SetStyle(s, "nope", "color", "red", base); r.Status != command.StatusInvalid {
		t.Errorf("SetStyle(missing node) status = %v, want invalid", r.Status)
	}
}

func TestShorthandStyle(t *testing.T) {
	s := fixture()
	c := testCommands(t, nil)

	r := c.SetStyle(s, "box", "margin", "4px", mobileHover)
	if !r.Ok() {
		t.Fatalf("SetStyle() = %s", r.Error())
	}
	s.Apply(r.Patch)
	box, _ := s.Node("box")
	want := map[string]string{"margin-top": "4px", "margin-bottom": "4px"}
	if diff := cmp.Diff(want, style.Stored(box.Styles, mobileHover)); diff != "" {
		t.Errorf("stored mismatch (-want +got):\n%s", diff)
	}
	if g := c.GetStyle(s, "box", "margin", mobileHover); g.Value != "4px" {
		t.Errorf("GetStyle(margin) = %q, want 4px", g.Value)
	}
	if g := c.GetStyle(s, "box", "margin", base); g.Value != "" {
		t.Errorf("GetStyle(margin) at base = %q, want empty", g.Value)
	}
}

func TestResetStyle(t *testing.T) {
	s := fixture()
	c := testCommands(t, nil)
	s.Apply(c.SetStyle(s, "box", "color", "blue", mobileHover).Patch)

	r := c.ResetStyle(s, "box", "color", mobileHover)
	if !r.Ok() {
		t.Fatalf("ResetStyle() = %s", r.Error())
	}
	s.Apply(r.Patch)
	if g := c.GetStyle(s, "box", "color", mobileHover); g.Value != "" {
		t.Errorf("GetStyle() after reset = %q, want empty", g.Value)
	}
	if r := c.ResetStyle(s, "box", "color", mobileHover); r.Status != command.StatusNoOp {
		t.Errorf("repeated ResetStyle() status = %v, want no-op", r.Status)
	}
	if r := c.ResetStyle(s, "box", "colour", base); r.Status != command.StatusInvalid {
		t.Errorf("ResetStyle(unknown key) status = %v, want invalid", r.Status)
	}
}

func TestCopyPasteStyle(t *testing.T) {
	s := fixture()
	clip := &store.Clipboard{}
	c := testCommands(t, clip)

	if r := c.PasteStyle(s, "box", "color", base); r.Status != command.StatusFailed {
		t.Errorf("PasteStyle() from empty clipboard status = %v, want failed", r.Status)
	}

	s.Apply(c.SetStyle(s, "txt", "color", "#ff0000", base).Patch)
	if r := c.CopyStyle(s, "txt", "color", base); !r.Ok() || r.Value != "#ff0000" {
		t.Fatalf("CopyStyle() = %q, %s", r.Value, r.Error())
	}
	r := c.PasteStyle(s, "box", "color", mobileHover)
	if !r.Ok() {
		t.Fatalf("PasteStyle() = %s", r.Error())
	}
	s.Apply(r.Patch)
	if g := c.GetStyle(s, "box", "color", mobileHover); g.Value != "#ff0000" {
		t.Errorf("pasted value = %q, want #ff0000", g.Value)
	}

	// clipboard content is validated against the target property
	_ = clip.Copy("auto")
	if r := c.PasteStyle(s, "box", "color", base); r.Status != command.StatusInvalid {
		t.Errorf("PasteStyle(auto into color) status = %v, want invalid", r.Status)
	}

	noClip := testCommands(t, nil)
	if r := noClip.CopyStyle(s, "txt", "color", base); r.Status != command.StatusFailed {
		t.Errorf("CopyStyle() without clipboard status = %v, want failed", r.Status)
	}
}
