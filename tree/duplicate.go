package tree

import (
	"fmt"

	"go.uber.org/zap"

	"blox/hierarchy"
	"blox/model"
)

// Copy is a duplicated subtree. Root is the id of the clone of the
// duplicated node, Nodes holds every cloned node.
type Copy struct {
	Root    string
	Nodes   model.Patch
	Mapping map[string]string // original id -> clone id
}

// Duplicate deep-clones subtree rooted at id giving every node a fresh id.
// Child and parent references inside the subtree are rewritten, the clone
// root has no parent: attaching it is up to the caller.
func (e *Engine) Duplicate(t model.Source, id string) (Copy, error) {
	if _, err := lookup(t, id); err != nil {
		return Copy{}, err
	}
	ids, missing := hierarchy.Descendants(t, id)
	if len(missing) > 0 {
		return Copy{}, fmt.Errorf("subtree of %q references %v: %w", id, missing, hierarchy.ErrDangling)
	}

	mapping := make(map[string]string, len(ids))
	for _, old := range ids {
		fresh := e.newID()
		for t.Nodes()[fresh] != nil || containsValue(mapping, fresh) {
			fresh = e.newID()
		}
		mapping[old] = fresh
	}

	nodes := make(model.Patch, len(ids))
	for _, old := range ids {
		n, _ := t.Node(old)
		c := n.Clone()
		c.ID, c.ParentID = mapping[old], ""
		for i, child := range c.ChildIDs {
			c.ChildIDs[i] = mapping[child]
		}
		nodes[c.ID] = c
	}
	for _, c := range nodes {
		for _, child := range c.ChildIDs {
			nodes[child].ParentID = c.ID
		}
	}
	e.log.Debug("Subtree duplicated", zap.String("id", id), zap.String("clone", mapping[id]), zap.Int("nodes", len(nodes)))
	return Copy{Root: mapping[id], Nodes: nodes, Mapping: mapping}, nil
}

func containsValue(m map[string]string, v string) bool {
	for _, x := range m {
		if x == v {
			return true
		}
	}
	return false
}
