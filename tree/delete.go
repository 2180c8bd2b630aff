package tree

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"blox/hierarchy"
	"blox/model"
)

//go:generate go tool go-enum --names

// State is a node deletion lifecycle stage. Live node is reachable through
// its parent or was never detached, detached node was unlinked from its
// parent and waits for purge, purged node is gone from the store.
// ENUM(live, detached, purged)
type State int

// Removal records the first phase of a delete. Subtree holds the detached
// node and every id reachable from it at detach time.
type Removal struct {
	ID      string
	Subtree []string
}

// Detach performs the first phase of delete: node is unlinked from its
// parent and becomes unreachable from the root, its data stays in the store
// so the host can finish exit transitions before calling Purge.
func (e *Engine) Detach(t model.Source, id string) (Removal, model.Patch, error) {
	n, err := lookup(t, id)
	if err != nil {
		return Removal{}, nil, err
	}
	ids, missing := hierarchy.Descendants(t, id)
	if len(missing) > 0 {
		return Removal{}, nil, fmt.Errorf("subtree of %q references %v: %w", id, missing, hierarchy.ErrDangling)
	}
	patch, err := DetachFrom(t, id)
	if err != nil {
		return Removal{}, nil, err
	}
	e.log.Debug("Node detached", zap.String("id", id), zap.String("parent", n.ParentID), zap.Int("subtree", len(ids)))
	return Removal{ID: id, Subtree: ids}, patch, nil
}

// Purge performs the second phase of delete and returns patch removing the
// detached subtree together with the selection to keep: selected is cleared
// when it points into removed nodes.
//
// Only ids recorded at detach time and still hanging under the detached node
// are removed. Nodes moved into the subtree meanwhile are kept as roots, a
// node which was re-attached is left alone. Repeated purge is a no-op.
func (e *Engine) Purge(t model.Source, r Removal, selected string) (model.Patch, string) {
	patch := model.Patch{}
	if Lifecycle(t, r.ID) != StateDetached {
		if selected != "" && slices.Contains(r.Subtree, selected) {
			if _, ok := t.Node(selected); !ok {
				selected = ""
			}
		}
		return patch, selected
	}

	recorded := make(map[string]bool, len(r.Subtree))
	for _, id := range r.Subtree {
		recorded[id] = true
	}
	current, _ := hierarchy.Descendants(t, r.ID)
	for _, id := range current {
		if recorded[id] {
			patch[id] = nil
		}
	}
	for _, id := range current {
		if patch.Has(id) {
			continue
		}
		n, _ := t.Node(id)
		if patch.Has(n.ParentID) {
			patch[id] = n.WithParent("")
		}
	}

	if selected != "" && patch.Has(selected) && patch[selected] == nil {
		selected = ""
	}
	e.log.Debug("Node purged", zap.String("id", r.ID), zap.Int("removed", len(patch)))
	return patch, selected
}

// Lifecycle reports deletion stage of a node which went through Detach. A
// parentless node nobody lists as a child is considered detached.
func Lifecycle(t model.Source, id string) State {
	n, ok := t.Node(id)
	switch {
	case !ok:
		return StatePurged
	case n.IsRoot() && !referenced(t, id):
		return StateDetached
	default:
		return StateLive
	}
}

func referenced(t model.Source, id string) bool {
	for _, n := range t.Nodes() {
		if n != nil && n.HasChild(id) {
			return true
		}
	}
	return false
}
