package command

import (
	"fmt"

	"go.uber.org/zap"

	"blox/model"
	"blox/style"
)

func (c *Commands) target(src model.Source, id string, ctx style.Context) (*model.Node, *Result) {
	if v := c.dims.Validate(ctx); !v.Valid {
		r := invalid("%s", v.Message)
		return nil, &r
	}
	n, ok := src.Node(id)
	if !ok {
		r := invalid("node %q not found", id)
		return nil, &r
	}
	return n, nil
}

// SetStyle validates value and stores it for property of node at ctx.
func (c *Commands) SetStyle(src model.Source, id, key, value string, ctx style.Context) Result {
	r := c.setStyle(src, id, key, value, ctx)
	return c.report("set-style", r, zap.String("id", id), zap.String("key", key), zap.Stringer("context", ctx))
}

func (c *Commands) setStyle(src model.Source, id, key, value string, ctx style.Context) Result {
	n, fail := c.target(src, id, ctx)
	if fail != nil {
		return *fail
	}
	v := c.styles.Set(n.Styles, key, value, ctx)
	if !v.Valid {
		return invalid("%s", v.Message)
	}
	return done(model.Patch{id: n.WithStyles(v.Value)})
}

// GetStyle resolves effective value of property of node at ctx.
func (c *Commands) GetStyle(src model.Source, id, key string, ctx style.Context) Result {
	n, fail := c.target(src, id, ctx)
	if fail != nil {
		return c.report("get-style", *fail, zap.String("id", id), zap.String("key", key))
	}
	v, err := c.styles.Get(n.Styles, key, ctx)
	if err != nil {
		return c.report("get-style", Result{Status: StatusInvalid, Message: err.Error(), Err: err}, zap.String("id", id))
	}
	r := done(model.Patch{})
	r.Value = v
	return r
}

// ResetStyle removes property of node at exact ctx.
func (c *Commands) ResetStyle(src model.Source, id, key string, ctx style.Context) Result {
	r := c.resetStyle(src, id, key, ctx)
	return c.report("reset-style", r, zap.String("id", id), zap.String("key", key), zap.Stringer("context", ctx))
}

func (c *Commands) resetStyle(src model.Source, id, key string, ctx style.Context) Result {
	n, fail := c.target(src, id, ctx)
	if fail != nil {
		return *fail
	}
	st, err := c.styles.Reset(n.Styles, key, ctx)
	if err != nil {
		return Result{Status: StatusInvalid, Message: err.Error(), Err: err}
	}
	if st.Len() == n.Styles.Len() {
		return noop()
	}
	return done(model.Patch{id: n.WithStyles(st)})
}

// CopyStyle puts effective value of property to the clipboard.
func (c *Commands) CopyStyle(src model.Source, id, key string, ctx style.Context) Result {
	r := c.GetStyle(src, id, key, ctx)
	if !r.Ok() {
		return r
	}
	if c.clipboard == nil {
		return c.report("copy-style", failed(fmt.Errorf("no clipboard")), zap.String("id", id))
	}
	if err := c.clipboard.Copy(r.Value); err != nil {
		return c.report("copy-style", failed(fmt.Errorf("clipboard: %w", err)), zap.String("id", id))
	}
	return r
}

// PasteStyle sets property of node from the clipboard.
func (c *Commands) PasteStyle(src model.Source, id, key string, ctx style.Context) Result {
	if c.clipboard == nil {
		return c.report("paste-style", failed(fmt.Errorf("no clipboard")), zap.String("id", id))
	}
	v, err := c.clipboard.Paste()
	if err != nil {
		return c.report("paste-style", failed(fmt.Errorf("clipboard: %w", err)), zap.String("id", id))
	}
	r := c.SetStyle(src, id, key, v, ctx)
	r.Value = v
	return r
}
