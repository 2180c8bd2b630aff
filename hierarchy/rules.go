// Package hierarchy implements structural rules every insertion into the
// page tree must satisfy. The checks are pure predicates over a tree
// snapshot and the element catalog.
package hierarchy

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"blox/catalog"
	"blox/common"
	"blox/model"
)

var (
	// ErrCycle is reported when following parent links never reaches a root.
	ErrCycle = errors.New("cycle in parent chain")
	// ErrDangling is reported when a referenced node is absent from the snapshot.
	ErrDangling = errors.New("dangling node reference")
)

// Rules evaluates hierarchy rules declared in the element catalog.
type Rules struct {
	elements catalog.ElementLookup
	log      *zap.Logger
}

// New creates rule engine over element catalog.
func New(elements catalog.ElementLookup, log *zap.Logger) *Rules {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rules{elements: elements, log: log.Named("hierarchy")}
}

// AllowedChild passes if parent definition does not restrict its children or
// lists tag among allowed ones.
func (r *Rules) AllowedChild(parentDef *catalog.ElementDefinition, tag string) common.Check {
	if parentDef == nil {
		return common.Pass
	}
	return common.Checked(parentDef.AllowsChild(tag))
}

// ForbiddenAncestor fails if parentID or any of its ancestors carries a tag
// the source definition forbids above itself.
func (r *Rules) ForbiddenAncestor(t model.Source, parentID string, sourceDef *catalog.ElementDefinition) common.Check {
	if sourceDef == nil || len(sourceDef.ForbiddenAncestors) == 0 {
		return common.Pass
	}
	violated := false
	err := Ancestors(t, parentID, func(n *model.Node) bool {
		if sourceDef.ForbidsAncestor(n.Tag) {
			violated = true
			return false
		}
		return true
	})
	if err != nil {
		return common.CheckError(err)
	}
	return common.Checked(!violated)
}

// UniqueLimit fails if parent already has as many children with the source
// tag as its definition allows. The source itself is not counted so a move
// inside the same parent can be re-validated.
func (r *Rules) UniqueLimit(t model.Source, parent *model.Node, parentDef *catalog.ElementDefinition, source *model.Node) common.Check {
	if parentDef == nil {
		return common.Pass
	}
	limit, ok := parentDef.UniqueLimit(source.Tag)
	if !ok {
		return common.Pass
	}
	count := 0
	for _, id := range parent.ChildIDs {
		if id == source.ID {
			continue
		}
		child, ok := t.Node(id)
		if !ok {
			return common.CheckError(fmt.Errorf("child %q of %q: %w", id, parent.ID, ErrDangling))
		}
		if child.Tag == source.Tag {
			count++
		}
	}
	return common.Checked(count < limit)
}

// OrderedChildren projects parent children with source tag spliced at index
// and verifies the sequence respects declared group order. Every tag must be
// found in the current group or a later one, tags outside all groups fail.
func (r *Rules) OrderedChildren(t model.Source, parent *model.Node, parentDef *catalog.ElementDefinition, source *model.Node, index int) common.Check {
	if parentDef == nil || parentDef.OrderedChildren == nil {
		return common.Pass
	}
	tags := make([]string, 0, len(parent.ChildIDs)+1)
	for _, id := range parent.ChildIDs {
		if id == source.ID {
			continue
		}
		child, ok := t.Node(id)
		if !ok {
			return common.CheckError(fmt.Errorf("child %q of %q: %w", id, parent.ID, ErrDangling))
		}
		tags = append(tags, child.Tag)
	}
	index = min(max(index, 0), len(tags))
	tags = slices.Insert(tags, index, source.Tag)

	group := 0
	for _, tag := range tags {
		next := -1
		for g := group; g < len(parentDef.OrderedChildren); g++ {
			if slices.Contains(parentDef.OrderedChildren[g], tag) {
				next = g
				break
			}
		}
		if next < 0 {
			return common.Fail
		}
		group = next
	}
	return common.Pass
}

// PassesAllRules places source under parentID at index and runs all checks
// in order, stopping at the first one which does not pass. Missing parent or
// catalog entries make the check unsuccessful.
func (r *Rules) PassesAllRules(t model.Source, source *model.Node, parentID string, index int) common.Check {
	parent, ok := t.Node(parentID)
	if !ok {
		return common.CheckError(fmt.Errorf("parent %q: %w", parentID, ErrDangling))
	}
	parentDef, ok := r.elements.Element(parent.Tag)
	if !ok {
		return common.CheckError(fmt.Errorf("element %q: %w", parent.Tag, catalog.ErrUnknownKey))
	}
	sourceDef, ok := r.elements.Element(source.Tag)
	if !ok {
		return common.CheckError(fmt.Errorf("element %q: %w", source.Tag, catalog.ErrUnknownKey))
	}

	checks := []struct {
		name string
		run  func() common.Check
	}{
		{"allowed-child", func() common.Check { return r.AllowedChild(parentDef, source.Tag) }},
		{"forbidden-ancestor", func() common.Check { return r.ForbiddenAncestor(t, parentID, sourceDef) }},
		{"unique-limit", func() common.Check { return r.UniqueLimit(t, parent, parentDef, source) }},
		{"ordered-children", func() common.Check { return r.OrderedChildren(t, parent, parentDef, source, index) }},
	}
	for _, c := range checks {
		res := c.run()
		if !res.Ok() {
			r.log.Debug("Hierarchy rule not satisfied",
				zap.String("rule", c.name),
				zap.String("source", source.Tag),
				zap.String("parent", parent.Tag),
				zap.Int("index", index),
				zap.Stringer("result", res))
			return res
		}
	}
	return common.Pass
}
