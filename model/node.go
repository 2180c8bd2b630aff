// Package model defines the page tree entities engines operate on.
package model

import (
	"maps"
	"slices"
)

// Node is a single structural unit of the page tree.
type Node struct {
	ID            string            `yaml:"id"`
	ParentID      string            `yaml:"parent,omitempty"`
	ChildIDs      []string          `yaml:"children,omitempty"`
	Tag           string            `yaml:"tag"`
	DefinitionKey string            `yaml:"definition,omitempty"`
	Styles        StyleTree         `yaml:"styles,omitempty"`
	Attributes    map[string]string `yaml:"attributes,omitempty"`
}

// IsRoot reports whether node has no parent.
func (n *Node) IsRoot() bool {
	return n.ParentID == ""
}

// ChildIndex returns position of id in node children or -1.
func (n *Node) ChildIndex(id string) int {
	return slices.Index(n.ChildIDs, id)
}

// HasChild reports whether id is a direct child of node.
func (n *Node) HasChild(id string) bool {
	return n.ChildIndex(id) >= 0
}

// Clone creates a deep copy of the node, nothing is shared with the original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	return &Node{
		ID:            n.ID,
		ParentID:      n.ParentID,
		ChildIDs:      cloneStrings(n.ChildIDs),
		Tag:           n.Tag,
		DefinitionKey: n.DefinitionKey,
		Styles:        n.Styles.Clone(),
		Attributes:    cloneAttributes(n.Attributes),
	}
}

// WithChildren returns a copy of the node with children replaced.
func (n *Node) WithChildren(ids []string) *Node {
	c := n.Clone()
	c.ChildIDs = ids
	return c
}

// WithParent returns a copy of the node with parent replaced.
func (n *Node) WithParent(id string) *Node {
	c := n.Clone()
	c.ParentID = id
	return c
}

// WithStyles returns a copy of the node with styles replaced.
func (n *Node) WithStyles(st StyleTree) *Node {
	c := n.Clone()
	c.Styles = st
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return slices.Clone(in)
}

func cloneAttributes(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	return maps.Clone(in)
}

// MergeAttributes returns new map with overrides applied on top of base.
func MergeAttributes(base, overrides map[string]string) map[string]string {
	if base == nil && overrides == nil {
		return nil
	}
	out := make(map[string]string, len(base)+len(overrides))
	maps.Copy(out, base)
	maps.Copy(out, overrides)
	return out
}
