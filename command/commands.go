package command

import (
	"fmt"

	"go.uber.org/zap"

	"blox/catalog"
	"blox/common"
	"blox/hierarchy"
	"blox/model"
	"blox/style"
	"blox/tree"
)

// Clipboard stores a single style value between CopyStyle and PasteStyle.
// Hosts provide their own implementation.
type Clipboard interface {
	Copy(value string) error
	Paste() (string, error)
}

// Deps lists collaborators of Commands.
type Deps struct {
	Blocks     catalog.BlockLookup
	Tree       *tree.Engine
	Styles     *style.Engine
	Dimensions style.Dimensions
	Clipboard  Clipboard
}

// Commands implements the command surface.
type Commands struct {
	blocks    catalog.BlockLookup
	tree      *tree.Engine
	rules     *hierarchy.Rules
	styles    *style.Engine
	dims      style.Dimensions
	clipboard Clipboard
	log       *zap.Logger
}

func New(deps Deps, log *zap.Logger) *Commands {
	if log == nil {
		log = zap.NewNop()
	}
	return &Commands{
		blocks:    deps.Blocks,
		tree:      deps.Tree,
		rules:     deps.Tree.Rules(),
		styles:    deps.Styles,
		dims:      deps.Dimensions,
		clipboard: deps.Clipboard,
		log:       log.Named("command"),
	}
}

// report logs failures, structural ones loudly.
func (c *Commands) report(op string, r Result, fields ...zap.Field) Result {
	fields = append(fields, zap.String("op", op), zap.Stringer("status", r.Status))
	switch r.Status {
	case StatusFailed:
		c.log.Warn("Command failed", append(fields, zap.Error(r.Err))...)
	case StatusInvalid, StatusRejected:
		c.log.Debug("Command refused", append(fields, zap.String("reason", r.Message))...)
	case StatusNoOp:
		c.log.Debug("Command is a no-op", fields...)
	}
	return r
}

// CreateNode builds node from block definition and attaches it under parent
// at index. Negative index appends.
func (c *Commands) CreateNode(src model.Source, blockKey, parentID, tag string, index int, data *tree.Overrides) Result {
	r := c.createNode(src, blockKey, parentID, tag, index, data)
	return c.report("create", r, zap.String("block", blockKey), zap.String("parent", parentID))
}

func (c *Commands) createNode(src model.Source, blockKey, parentID, tag string, index int, data *tree.Overrides) Result {
	def, ok := c.blocks.Block(blockKey)
	if !ok {
		return invalid("unknown block %q", blockKey)
	}
	parent, ok := src.Node(parentID)
	if !ok {
		return invalid("parent %q not found", parentID)
	}
	v := c.tree.Create(def, parentID, tag, data)
	if !v.Valid {
		return invalid("%s", v.Message)
	}
	n := v.Value
	if index < 0 || index > len(parent.ChildIDs) {
		index = len(parent.ChildIDs)
	}

	check := c.rules.PassesAllRules(src, n, parentID, index)
	switch {
	case !check.Success:
		return failed(check.Err)
	case !check.Passed:
		return rejected(fmt.Errorf("<%s> under <%s> at %d: %w", n.Tag, parent.Tag, index, tree.ErrRejected))
	}

	patch, err := tree.Attach(src, n, parentID, index)
	if err != nil {
		return classify(err)
	}
	r := done(patch)
	r.Node = n.ID
	return r
}

// DeleteNode runs the first phase of delete. Result carries the removal
// record which has to be passed to FinalizeDelete once the host is done with
// exit transitions.
func (c *Commands) DeleteNode(src model.Source, id string) Result {
	r := c.deleteNode(src, id)
	return c.report("delete", r, zap.String("id", id))
}

func (c *Commands) deleteNode(src model.Source, id string) Result {
	n, ok := src.Node(id)
	if !ok {
		return invalid("node %q not found", id)
	}
	if n.IsRoot() {
		return invalid("node %q has no parent and cannot be deleted", id)
	}
	removal, patch, err := c.tree.Detach(src, id)
	if err != nil {
		return classify(err)
	}
	r := done(patch)
	r.Removal = &removal
	return r
}

// FinalizeDelete purges subtree detached by DeleteNode. Running it again is
// a no-op. Selected is the id currently selected by the host, result carries
// the selection to keep.
func (c *Commands) FinalizeDelete(src model.Source, removal tree.Removal, selected string) Result {
	patch, sel := c.tree.Purge(src, removal, selected)
	r := done(patch)
	if len(patch) == 0 {
		r = noop()
	}
	r.Selected = sel
	return c.report("finalize-delete", r, zap.String("id", removal.ID))
}

// DuplicateNode clones subtree of id and places the clone right after the
// original.
func (c *Commands) DuplicateNode(src model.Source, id string) Result {
	r := c.duplicateNode(src, id)
	return c.report("duplicate", r, zap.String("id", id))
}

func (c *Commands) duplicateNode(src model.Source, id string) Result {
	n, ok := src.Node(id)
	if !ok {
		return invalid("node %q not found", id)
	}
	if n.IsRoot() {
		return invalid("node %q has no parent and cannot be duplicated", id)
	}
	parent, ok := src.Node(n.ParentID)
	if !ok {
		return failed(fmt.Errorf("parent %q of %q: %w", n.ParentID, id, hierarchy.ErrDangling))
	}
	cp, err := c.tree.Duplicate(src, id)
	if err != nil {
		return classify(err)
	}

	index := parent.ChildIndex(id) + 1
	clone := cp.Nodes[cp.Root]
	check := c.rules.PassesAllRules(src, clone, parent.ID, index)
	switch {
	case !check.Success:
		return failed(check.Err)
	case !check.Passed:
		return rejected(fmt.Errorf("copy of <%s> under <%s>: %w", clone.Tag, parent.Tag, tree.ErrRejected))
	}

	attach, err := tree.Attach(src, clone, parent.ID, index)
	if err != nil {
		return classify(err)
	}
	r := done(cp.Nodes.Merge(attach))
	r.Node = cp.Root
	return r
}

// MoveBefore places source right before target.
func (c *Commands) MoveBefore(src model.Source, sourceID, targetID string) Result {
	return c.move(src, sourceID, targetID, tree.ModeBefore)
}

// MoveAfter places source right after target.
func (c *Commands) MoveAfter(src model.Source, sourceID, targetID string) Result {
	return c.move(src, sourceID, targetID, tree.ModeAfter)
}

// MoveInto appends source to target children.
func (c *Commands) MoveInto(src model.Source, sourceID, targetID string) Result {
	return c.move(src, sourceID, targetID, tree.ModeInto)
}

func (c *Commands) move(src model.Source, sourceID, targetID string, mode tree.Mode) Result {
	var r Result
	res := c.tree.Move(src, sourceID, targetID, mode)
	switch res.Status {
	case common.FindStatusFound:
		r = done(res.Data)
	case common.FindStatusNotFound:
		r = noop()
	default:
		r = classify(res.Err)
	}
	return c.report("move-"+mode.String(), r, zap.String("source", sourceID), zap.String("target", targetID))
}
