// Package style resolves and edits node styles. Values are stored per
// device, orientation and pseudo state context and resolved through a fixed
// fallback cascade towards the default context.
package style

import (
	"fmt"
	"strings"

	"blox/model"
)

// Context addresses one cell of a StyleTree.
type Context struct {
	Device      string `yaml:"device"`
	Orientation string `yaml:"orientation"`
	Pseudo      string `yaml:"pseudo"`
}

// DefaultContext is used when host does not configure anything else.
var DefaultContext = Context{Device: "all", Orientation: "all", Pseudo: "all"}

func (c Context) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Device, c.Orientation, c.Pseudo)
}

// ParseContext reads context written as "device/orientation/pseudo". Missing
// or empty components are taken from defaults, so "mobile" and "mobile//"
// are the same.
func ParseContext(s string, defaults Context) (Context, error) {
	ctx := defaults
	if strings.TrimSpace(s) == "" {
		return ctx, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return Context{}, fmt.Errorf("malformed style context %q", s)
	}
	fields := []*string{&ctx.Device, &ctx.Orientation, &ctx.Pseudo}
	for i, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			*fields[i] = p
		}
	}
	return ctx, nil
}

// Cascade lists contexts searched for a value at ctx in priority order,
// duplicates removed. When ctx pseudo differs from the default one all
// contexts carrying the exact pseudo go first, pseudo specific styling wins
// over device and orientation fallback.
func Cascade(ctx, defaults Context) []Context {
	d, o, p := ctx.Device, ctx.Orientation, ctx.Pseudo
	dd, do, dp := defaults.Device, defaults.Orientation, defaults.Pseudo

	var paths []Context
	if p != dp {
		paths = []Context{
			{d, o, p}, {d, do, p}, {dd, o, p}, {dd, do, p},
			{d, o, dp}, {d, do, dp}, {dd, o, dp}, {dd, do, dp},
		}
	} else {
		paths = []Context{
			{d, o, p}, {d, o, dp}, {d, do, p}, {d, do, dp},
			{dd, o, p}, {dd, o, dp}, {dd, do, p}, {dd, do, dp},
		}
	}

	out := paths[:0]
	seen := make(map[Context]bool, len(paths))
	for _, c := range paths {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Lookup finds effective value of property at ctx and the context it was
// found at. Stored empty strings are skipped like absent values.
func Lookup(st model.StyleTree, property string, ctx, defaults Context) (string, Context, bool) {
	for _, c := range Cascade(ctx, defaults) {
		if v, ok := st.Lookup(c.Device, c.Orientation, c.Pseudo, property); ok && v != "" {
			return v, c, true
		}
	}
	return "", Context{}, false
}

// Resolve returns effective value of property at ctx, empty string when
// nothing is set along the cascade.
func Resolve(st model.StyleTree, property string, ctx, defaults Context) string {
	v, _, _ := Lookup(st, property, ctx, defaults)
	return v
}
