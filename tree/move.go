package tree

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"blox/common"
	"blox/hierarchy"
	"blox/model"
)

//go:generate go tool go-enum --marshal --names --nocase

// Mode selects where a moved node lands relative to its target.
// ENUM(before, after, into)
type Mode int

// Placement is a destination computed for a move. Index is a position in
// parent children after the source has been removed from its old place.
type Placement struct {
	Parent string
	Index  int
}

// Place computes destination of source for mode relative to target. Not
// found result means source already occupies the requested position.
func Place(t model.Source, sourceID, targetID string, mode Mode) common.Find[Placement] {
	switch mode {
	case ModeBefore:
		return PlaceBefore(t, sourceID, targetID)
	case ModeAfter:
		return PlaceAfter(t, sourceID, targetID)
	case ModeInto:
		return PlaceInto(t, sourceID, targetID)
	}
	return common.FindFailed[Placement](fmt.Errorf("unknown move mode %d", int(mode)))
}

// PlaceInto appends source to target children.
func PlaceInto(t model.Source, sourceID, targetID string) common.Find[Placement] {
	if sourceID == targetID {
		return common.FindFailed[Placement](ErrSameNode)
	}
	if _, err := lookup(t, sourceID); err != nil {
		return common.FindFailed[Placement](err)
	}
	target, err := lookup(t, targetID)
	if err != nil {
		return common.FindFailed[Placement](err)
	}
	if target.HasChild(sourceID) {
		return common.NotFound[Placement]()
	}
	if err := notInside(t, sourceID, targetID); err != nil {
		return common.FindFailed[Placement](err)
	}
	return common.Found(Placement{Parent: targetID, Index: len(target.ChildIDs)})
}

// PlaceBefore puts source right before target among target siblings.
func PlaceBefore(t model.Source, sourceID, targetID string) common.Find[Placement] {
	return placeSibling(t, sourceID, targetID, ModeBefore)
}

// PlaceAfter puts source right after target among target siblings.
func PlaceAfter(t model.Source, sourceID, targetID string) common.Find[Placement] {
	return placeSibling(t, sourceID, targetID, ModeAfter)
}

func placeSibling(t model.Source, sourceID, targetID string, mode Mode) common.Find[Placement] {
	if sourceID == targetID {
		return common.FindFailed[Placement](ErrSameNode)
	}
	source, err := lookup(t, sourceID)
	if err != nil {
		return common.FindFailed[Placement](err)
	}
	target, err := lookup(t, targetID)
	if err != nil {
		return common.FindFailed[Placement](err)
	}
	if target.IsRoot() {
		return common.FindFailed[Placement](fmt.Errorf("target %q has no parent: %w", targetID, ErrNotFound))
	}
	parent, ok := t.Node(target.ParentID)
	if !ok {
		return common.FindFailed[Placement](fmt.Errorf("parent %q of %q: %w", target.ParentID, targetID, hierarchy.ErrDangling))
	}
	ti := parent.ChildIndex(targetID)
	if ti < 0 {
		return common.FindFailed[Placement](fmt.Errorf("target %q is not a child of %q: %w", targetID, parent.ID, ErrNotFound))
	}

	if source.ParentID != target.ParentID {
		if err := notInside(t, sourceID, parent.ID); err != nil {
			return common.FindFailed[Placement](err)
		}
		if mode == ModeAfter {
			ti++
		}
		return common.Found(Placement{Parent: parent.ID, Index: ti})
	}

	si := parent.ChildIndex(sourceID)
	if si < 0 {
		return common.FindFailed[Placement](fmt.Errorf("source %q is not a child of %q: %w", sourceID, parent.ID, hierarchy.ErrDangling))
	}
	// indexes are taken before the source is removed, removing it shifts
	// everything behind it one position left
	var idx int
	switch mode {
	case ModeBefore:
		if si == ti-1 {
			return common.NotFound[Placement]()
		}
		idx = ti
		if si < ti {
			idx = ti - 1
		}
	default:
		if si == ti+1 {
			return common.NotFound[Placement]()
		}
		idx = ti + 1
		if si < ti {
			idx = ti
		}
	}
	return common.Found(Placement{Parent: parent.ID, Index: idx})
}

// notInside rejects placement of source under its own subtree.
func notInside(t model.Source, sourceID, parentID string) error {
	inside, err := hierarchy.IsAncestor(t, sourceID, parentID)
	if err != nil {
		return err
	}
	if inside {
		return fmt.Errorf("%q at %q: %w", sourceID, parentID, ErrIntoSelf)
	}
	return nil
}

// Move relocates source relative to target. The destination is re-validated
// against hierarchy rules at the computed index and the whole move is
// returned as a single patch, nothing is produced when any step fails. Not
// found result signals no-op.
func (e *Engine) Move(t model.Source, sourceID, targetID string, mode Mode) common.Find[model.Patch] {
	place := Place(t, sourceID, targetID, mode)
	switch place.Status {
	case common.FindStatusNotFound:
		e.log.Debug("Move is a no-op", zap.String("source", sourceID), zap.String("target", targetID), zap.Stringer("mode", mode))
		return common.NotFound[model.Patch]()
	case common.FindStatusError:
		return common.FindFailed[model.Patch](place.Err)
	}
	dst := place.Data

	source, _ := t.Node(sourceID)
	if e.rules != nil {
		check := e.rules.PassesAllRules(t, source, dst.Parent, dst.Index)
		if !check.Success {
			return common.FindFailed[model.Patch](check.Err)
		}
		if !check.Passed {
			return common.FindFailed[model.Patch](fmt.Errorf("move %q %s %q: %w", sourceID, mode, targetID, ErrRejected))
		}
	}

	patch, err := relocate(t, source, dst)
	if err != nil {
		return common.FindFailed[model.Patch](err)
	}
	return common.Found(patch)
}

func relocate(t model.Source, source *model.Node, dst Placement) (model.Patch, error) {
	parent, err := lookup(t, dst.Parent)
	if err != nil {
		return nil, err
	}

	if source.ParentID == dst.Parent {
		kids := slices.Clone(parent.ChildIDs)
		i := slices.Index(kids, source.ID)
		if i < 0 {
			return nil, fmt.Errorf("source %q is not a child of %q: %w", source.ID, dst.Parent, hierarchy.ErrDangling)
		}
		kids = slices.Delete(kids, i, i+1)
		kids = slices.Insert(kids, min(max(dst.Index, 0), len(kids)), source.ID)
		return model.Patch{dst.Parent: parent.WithChildren(kids)}, nil
	}

	patch, err := DetachFrom(t, source.ID)
	if err != nil {
		return nil, err
	}
	detached := t.Nodes().Apply(patch)
	moved, _ := detached.Node(source.ID)
	attach, err := Attach(detached, moved, dst.Parent, dst.Index)
	if err != nil {
		return nil, err
	}
	return patch.Merge(attach), nil
}
