package style

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"blox/catalog"
	"blox/common"
	"blox/css"
	"blox/model"
)

// ErrLonghandCycle is reported when shorthand definitions refer to each other.
var ErrLonghandCycle = errors.New("shorthand expands into itself")

// Engine reads, writes and validates style properties using style catalog
// definitions.
type Engine struct {
	styles   catalog.StyleLookup
	grammar  *css.Grammar
	defaults Context
	log      *zap.Logger
}

// New creates style engine. Defaults name the context every cascade falls
// back to.
func New(styles catalog.StyleLookup, grammar *css.Grammar, defaults Context, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		styles:   styles,
		grammar:  grammar,
		defaults: defaults,
		log:      log.Named("style"),
	}
}

// Defaults returns fallback context.
func (e *Engine) Defaults() Context {
	return e.defaults
}

func (e *Engine) definition(key string) (*catalog.StyleDefinition, error) {
	def, ok := e.styles.Style(key)
	if !ok {
		return nil, fmt.Errorf("style %q: %w", key, catalog.ErrUnknownKey)
	}
	return def, nil
}

// Longhands returns storage keys property writes to. A plain property is its
// own longhand, nested shorthands are flattened in declaration order.
func (e *Engine) Longhands(key string) ([]string, error) {
	var out []string
	if err := e.flatten(key, map[string]bool{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) flatten(key string, active map[string]bool, out *[]string) error {
	if active[key] {
		return fmt.Errorf("style %q: %w", key, ErrLonghandCycle)
	}
	def, err := e.definition(key)
	if err != nil {
		return err
	}
	if !def.IsShorthand() {
		if !slices.Contains(*out, key) {
			*out = append(*out, key)
		}
		return nil
	}
	active[key] = true
	defer delete(active, key)
	for _, lh := range def.Longhand {
		if err := e.flatten(lh, active, out); err != nil {
			return err
		}
	}
	return nil
}

// Get returns effective value of property at ctx. For a shorthand every
// longhand is resolved on its own: equal values collapse into one, all empty
// values give empty string. Disagreeing longhands give the value of the
// first one, callers can not tell such mixed state from a real value.
func (e *Engine) Get(st model.StyleTree, key string, ctx Context) (string, error) {
	return e.get(st, key, ctx, map[string]bool{})
}

func (e *Engine) get(st model.StyleTree, key string, ctx Context, active map[string]bool) (string, error) {
	if active[key] {
		return "", fmt.Errorf("style %q: %w", key, ErrLonghandCycle)
	}
	def, err := e.definition(key)
	if err != nil {
		return "", err
	}
	if !def.IsShorthand() {
		return Resolve(st, key, ctx, e.defaults), nil
	}

	active[key] = true
	defer delete(active, key)
	values := make([]string, len(def.Longhand))
	for i, lh := range def.Longhand {
		if values[i], err = e.get(st, lh, ctx, active); err != nil {
			return "", err
		}
	}
	first := values[0]
	for _, v := range values[1:] {
		if v != first {
			e.log.Debug("Shorthand constituents disagree", zap.String("key", key), zap.Strings("values", values))
			break
		}
	}
	return first, nil
}

// Set stores value for property at ctx after validating it. A shorthand is
// never stored itself, the value goes to every longhand instead. Empty value
// is stored as is and hides nothing: the cascade skips it.
func (e *Engine) Set(st model.StyleTree, key, raw string, ctx Context) common.Validation[model.StyleTree] {
	v := e.Validate(key, raw)
	if !v.Valid {
		return common.Invalid[model.StyleTree]("%s", v.Message)
	}
	keys, err := e.Longhands(key)
	if err != nil {
		return common.Invalid[model.StyleTree]("%v", err)
	}
	out := st
	for _, k := range keys {
		out = out.With(ctx.Device, ctx.Orientation, ctx.Pseudo, k, v.Value)
	}
	return common.Valid(out)
}

// Reset removes property at exact ctx so the cascade applies again. For a
// shorthand every longhand is removed.
func (e *Engine) Reset(st model.StyleTree, key string, ctx Context) (model.StyleTree, error) {
	keys, err := e.Longhands(key)
	if err != nil {
		return st, err
	}
	out := st
	for _, k := range keys {
		out = out.Without(ctx.Device, ctx.Orientation, ctx.Pseudo, k)
	}
	return out, nil
}

// Validate checks raw value for property. Empty value is always valid and
// clears the property, CSS-wide keywords are accepted everywhere. Shorthand
// value has to be valid for each of its longhands.
func (e *Engine) Validate(key, raw string) common.Validation[string] {
	keys, err := e.Longhands(key)
	if err != nil {
		return common.Invalid[string]("%v", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return common.Valid("")
	}
	var res common.Validation[string]
	for _, k := range keys {
		def, _ := e.styles.Style(k)
		if strings.TrimSpace(def.Syntax) == "" {
			// no grammar declared, anything goes
			res = common.Valid(css.Split(raw).String())
			continue
		}
		res = e.grammar.Validate(raw, def.Syntax)
		if !res.Valid {
			return common.Invalid[string]("%s: %s", k, res.Message)
		}
	}
	return res
}

// Computed resolves every non-shorthand property the catalog knows at ctx
// and returns those with a value.
func (e *Engine) Computed(st model.StyleTree, ctx Context) map[string]string {
	out := make(map[string]string)
	for _, key := range e.styles.StyleKeys() {
		def, ok := e.styles.Style(key)
		if !ok || def.IsShorthand() {
			continue
		}
		if v := Resolve(st, key, ctx, e.defaults); v != "" {
			out[key] = v
		}
	}
	return out
}

// Stored returns raw properties kept at exact ctx, shorthands never show up
// here.
func Stored(st model.StyleTree, ctx Context) map[string]string {
	return maps.Clone(st.Properties(ctx.Device, ctx.Orientation, ctx.Pseudo))
}
