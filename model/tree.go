package model

import (
	"maps"
	"slices"
)

// Tree is an immutable snapshot of all nodes keyed by id. Engines never
// modify a Tree or the nodes it points to, they produce a Patch instead.
type Tree map[string]*Node

// Patch is a minimal set of changed entities. A nil node means the id is
// removed from the store.
type Patch map[string]*Node

// Source gives read access to the current snapshot.
type Source interface {
	Node(id string) (*Node, bool)
	Nodes() Tree
}

// Provider is the authoritative store contract: a Source which accepts
// patches produced by commands.
type Provider interface {
	Source
	Apply(p Patch)
}

// Node returns node by id.
func (t Tree) Node(id string) (*Node, bool) {
	n, ok := t[id]
	return n, ok && n != nil
}

// Nodes returns the tree itself, which allows Tree to be used as a Source.
func (t Tree) Nodes() Tree {
	return t
}

// Apply returns new tree with patch applied. The receiver is left intact.
func (t Tree) Apply(p Patch) Tree {
	out := maps.Clone(t)
	if out == nil {
		out = make(Tree, len(p))
	}
	for id, n := range p {
		if n == nil {
			delete(out, id)
			continue
		}
		out[id] = n
	}
	return out
}

// Roots returns ids of all parentless nodes in sorted order. A well formed
// document has exactly one root, detached subtrees awaiting purge add more.
func (t Tree) Roots() []string {
	var roots []string
	for id, n := range t {
		if n != nil && n.IsRoot() {
			roots = append(roots, id)
		}
	}
	slices.Sort(roots)
	return roots
}

// Merge overlays other patch on top of p and returns the result. Later value
// for the same id wins.
func (p Patch) Merge(other Patch) Patch {
	out := make(Patch, len(p)+len(other))
	maps.Copy(out, p)
	maps.Copy(out, other)
	return out
}

// IDs returns patched ids in sorted order.
func (p Patch) IDs() []string {
	return slices.Sorted(maps.Keys(p))
}

// Has reports whether patch touches id, either replacing or removing it.
func (p Patch) Has(id string) bool {
	_, ok := p[id]
	return ok
}
