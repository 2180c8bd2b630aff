package tree

import (
	"fmt"
	"slices"

	"blox/hierarchy"
	"blox/model"
)

// Attach links unattached node n under parentID at index. Index is clamped
// to the valid range. The node does not have to be present in t yet, which
// is how freshly created nodes enter the tree.
func Attach(t model.Source, n *model.Node, parentID string, index int) (model.Patch, error) {
	parent, err := lookup(t, parentID)
	if err != nil {
		return nil, err
	}
	if n.ID == parentID {
		return nil, ErrSameNode
	}
	if cur, ok := t.Node(n.ID); ok && cur.ParentID != "" {
		return nil, fmt.Errorf("node %q under %q: %w", n.ID, cur.ParentID, ErrAttached)
	}
	if parent.HasChild(n.ID) {
		return nil, fmt.Errorf("node %q under %q: %w", n.ID, parentID, ErrAttached)
	}
	index = min(max(index, 0), len(parent.ChildIDs))
	return model.Patch{
		parentID: parent.WithChildren(slices.Insert(slices.Clone(parent.ChildIDs), index, n.ID)),
		n.ID:     n.WithParent(parentID),
	}, nil
}

// DetachFrom unlinks node from its parent. The node stays in the store as a
// new root. Detaching a root produces empty patch.
func DetachFrom(t model.Source, id string) (model.Patch, error) {
	n, err := lookup(t, id)
	if err != nil {
		return nil, err
	}
	if n.IsRoot() {
		return model.Patch{}, nil
	}
	parent, ok := t.Node(n.ParentID)
	if !ok {
		return nil, fmt.Errorf("parent %q of %q: %w", n.ParentID, id, hierarchy.ErrDangling)
	}
	idx := parent.ChildIndex(id)
	if idx < 0 {
		return nil, fmt.Errorf("node %q is not listed by its parent %q: %w", id, n.ParentID, hierarchy.ErrDangling)
	}
	return model.Patch{
		n.ParentID: parent.WithChildren(slices.Delete(slices.Clone(parent.ChildIDs), idx, idx+1)),
		id:         n.WithParent(""),
	}, nil
}
