package tree

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"blox/hierarchy"
	"blox/model"
)

// Structural violations reported by Verify.
var (
	ErrDanglingChild  = errors.New("child is missing")
	ErrDanglingParent = errors.New("parent is missing")
	ErrTwoParents     = errors.New("node is listed by several parents")
	ErrParentMismatch = errors.New("parent link does not match child list")
	ErrDuplicateChild = errors.New("child is listed twice")
)

// Verify checks structural invariants of the snapshot and reports all
// violations at once: every child id resolves, each node is listed by
// exactly the parent its own link names, children lists have no duplicates
// and parent chains end at a root.
func Verify(t model.Source) (err error) {
	nodes := t.Nodes()
	ids := make([]string, 0, len(nodes))
	for id, n := range nodes {
		if n != nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	listedBy := make(map[string]string, len(ids))
	for _, id := range ids {
		n := nodes[id]
		seen := make(map[string]bool, len(n.ChildIDs))
		for _, c := range n.ChildIDs {
			if seen[c] {
				err = multierr.Append(err, fmt.Errorf("%q in %q: %w", c, id, ErrDuplicateChild))
				continue
			}
			seen[c] = true
			child, ok := t.Node(c)
			if !ok {
				err = multierr.Append(err, fmt.Errorf("%q in %q: %w", c, id, ErrDanglingChild))
				continue
			}
			if prev, ok := listedBy[c]; ok {
				err = multierr.Append(err, fmt.Errorf("%q in %q and %q: %w", c, prev, id, ErrTwoParents))
			} else {
				listedBy[c] = id
			}
			if child.ParentID != id {
				err = multierr.Append(err, fmt.Errorf("%q in %q points to %q: %w", c, id, child.ParentID, ErrParentMismatch))
			}
		}
	}

	for _, id := range ids {
		n := nodes[id]
		if n.IsRoot() {
			continue
		}
		parent, ok := t.Node(n.ParentID)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%q of %q: %w", n.ParentID, id, ErrDanglingParent))
			continue
		}
		if !parent.HasChild(id) {
			err = multierr.Append(err, fmt.Errorf("%q not listed by %q: %w", id, n.ParentID, ErrParentMismatch))
		}
	}

	cyclic := make(map[string]bool)
	for _, id := range ids {
		if cyclic[id] {
			continue
		}
		var chain []string
		e := hierarchy.Ancestors(t, id, func(n *model.Node) bool {
			chain = append(chain, n.ID)
			return true
		})
		if errors.Is(e, hierarchy.ErrCycle) {
			for _, c := range chain {
				cyclic[c] = true
			}
			err = multierr.Append(err, fmt.Errorf("starting at %q: %w", id, e))
		}
	}
	return err
}
