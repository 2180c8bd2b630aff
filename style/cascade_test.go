package style_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"blox/model"
	"blox/style"
)

func ctx(d, o, p string) style.Context {
	return style.Context{Device: d, Orientation: o, Pseudo: p}
}

func TestCascadeOrder(t *testing.T) {
	defaults := style.DefaultContext

	got := style.Cascade(ctx("mobile", "portrait", "all"), defaults)
	want := []style.Context{
		ctx("mobile", "portrait", "all"),
		ctx("mobile", "all", "all"),
		ctx("all", "portrait", "all"),
		ctx("all", "all", "all"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Cascade() at default pseudo mismatch (-want +got):\n%s", diff)
	}

	got = style.Cascade(ctx("mobile", "portrait", "hover"), defaults)
	want = []style.Context{
		ctx("mobile", "portrait", "hover"),
		ctx("mobile", "all", "hover"),
		ctx("all", "portrait", "hover"),
		ctx("all", "all", "hover"),
		ctx("mobile", "portrait", "all"),
		ctx("mobile", "all", "all"),
		ctx("all", "portrait", "all"),
		ctx("all", "all", "all"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Cascade() with pseudo mismatch (-want +got):\n%s", diff)
	}

	if got := style.Cascade(defaults, defaults); len(got) != 1 {
		t.Errorf("Cascade(defaults) = %v, want single path", got)
	}
}

func TestResolve(t *testing.T) {
	st := model.StyleTree{
		"all":    {"all": {"all": {"color": "red", "margin": "1px"}, "hover": {"color": "green"}}},
		"mobile": {"all": {"all": {"color": "blue", "padding": ""}}},
		"tablet": {"landscape": {"focus": {"margin": "3px"}}},
	}
	defaults := style.DefaultContext

	tests := []struct {
		name     string
		property string
		at       style.Context
		want     string
		from     style.Context
	}{
		{"device default pseudo", "color", ctx("mobile", "all", "focus"), "blue", ctx("mobile", "all", "all")},
		{"exact", "color", ctx("all", "all", "hover"), "green", ctx("all", "all", "hover")},
		{"pseudo wins over device", "color", ctx("tablet", "all", "hover"), "green", ctx("all", "all", "hover")},
		{"fallback to defaults", "margin", ctx("mobile", "portrait", "all"), "1px", ctx("all", "all", "all")},
		{"exact deep", "margin", ctx("tablet", "landscape", "focus"), "3px", ctx("tablet", "landscape", "focus")},
		{"stored empty skipped", "padding", ctx("mobile", "all", "all"), "", style.Context{}},
		{"unset", "width", ctx("mobile", "portrait", "hover"), "", style.Context{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, from, ok := style.Lookup(st, tt.property, tt.at, defaults)
			if v != tt.want || from != tt.from || ok != (tt.want != "") {
				t.Errorf("Lookup(%s at %v) = (%q, %v, %v), want (%q, %v)", tt.property, tt.at, v, from, ok, tt.want, tt.from)
			}
			if got := style.Resolve(st, tt.property, tt.at, defaults); got != tt.want {
				t.Errorf("Resolve(%s at %v) = %q, want %q", tt.property, tt.at, got, tt.want)
			}
		})
	}
}

func TestResolveMobileBlue(t *testing.T) {
	st := model.StyleTree{
		"all":    {"all": {"all": {"color": "red"}}},
		"mobile": {"all": {"all": {"color": "blue"}}},
	}
	if got := style.Resolve(st, "color", ctx("mobile", "all", "hover"), ctx("all", "all", "all")); got != "blue" {
		t.Errorf("Resolve() = %q, want blue", got)
	}
}

func TestResolveNilTree(t *testing.T) {
	if got := style.Resolve(nil, "color", ctx("x", "y", "z"), style.DefaultContext); got != "" {
		t.Errorf("Resolve(nil) = %q, want empty", got)
	}
}

func TestDimensions(t *testing.T) {
	d := style.Dimensions{
		Devices:      []string{"all", "mobile"},
		Orientations: []string{"all"},
	}

	tests := []struct {
		at    style.Context
		valid bool
	}{
		{ctx("mobile", "all", "hover"), true},
		{ctx("watch", "all", "all"), false},
		{ctx("all", "portrait", "all"), false},
		{ctx("all", "all", ""), false},
	}
	for _, tt := range tests {
		if got := d.Validate(tt.at); got.Valid != tt.valid {
			t.Errorf("Validate(%v) = %v, want %v (%s)", tt.at, got.Valid, tt.valid, got.Message)
		}
	}
	if got := (style.Dimensions{}).Validate(ctx("a", "b", "c")); !got.Valid {
		t.Errorf("unrestricted Validate() = %s", got.Message)
	}
}

func TestParseContext(t *testing.T) {
	defaults := style.Context{Device: "all", Orientation: "all", Pseudo: "none"}
	tests := []struct {
		in      string
		want    style.Context
		wantErr bool
	}{
		{"", defaults, false},
		{"mobile", style.Context{Device: "mobile", Orientation: "all", Pseudo: "none"}, false},
		{"mobile//hover", style.Context{Device: "mobile", Orientation: "all", Pseudo: "hover"}, false},
		{" tablet / portrait / focus ", style.Context{Device: "tablet", Orientation: "portrait", Pseudo: "focus"}, false},
		{"/landscape", style.Context{Device: "all", Orientation: "landscape", Pseudo: "none"}, false},
		{"a/b/c/d", style.Context{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := style.ParseContext(tt.in, defaults)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseContext(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseContext(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
