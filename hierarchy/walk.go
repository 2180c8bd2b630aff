package hierarchy

import (
	"fmt"

	"blox/model"
)

// Ancestors calls fn for id and each of its ancestors up to the root until
// fn returns false. A revisited node yields ErrCycle, a missing one
// ErrDangling.
func Ancestors(t model.Source, id string, fn func(n *model.Node) bool) error {
	seen := make(map[string]bool)
	for cur := id; cur != ""; {
		if seen[cur] {
			return fmt.Errorf("node %q: %w", cur, ErrCycle)
		}
		seen[cur] = true
		n, ok := t.Node(cur)
		if !ok {
			return fmt.Errorf("node %q: %w", cur, ErrDangling)
		}
		if !fn(n) {
			return nil
		}
		cur = n.ParentID
	}
	return nil
}

// IsAncestor reports whether ancestorID is id itself or lies on its parent
// chain.
func IsAncestor(t model.Source, ancestorID, id string) (bool, error) {
	found := false
	err := Ancestors(t, id, func(n *model.Node) bool {
		found = n.ID == ancestorID
		return !found
	})
	return found, err
}

// Descendants returns id followed by every node reachable from it through
// child links in depth-first pre-order. Missing children are skipped and
// returned separately.
func Descendants(t model.Source, id string) (ids, missing []string) {
	seen := make(map[string]bool)
	var walk func(string)
	walk = func(cur string) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		n, ok := t.Node(cur)
		if !ok {
			missing = append(missing, cur)
			return
		}
		ids = append(ids, cur)
		for _, c := range n.ChildIDs {
			walk(c)
		}
	}
	walk(id)
	return ids, missing
}
