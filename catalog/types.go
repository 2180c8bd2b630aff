// Package catalog defines read-only metadata tables consumed by the engines:
// element tag rules, block definitions, style properties and grammar tokens.
//
// Catalogs are populated once by the host and never modified afterwards,
// every engine receives the lookups it needs explicitly.
package catalog

import (
	"errors"
	"slices"

	"blox/model"
)

// ErrUnknownKey is reported when a declared key has no catalog entry.
var ErrUnknownKey = errors.New("unknown catalog key")

// ElementDefinition lists structural rules for a tag. Nil fields mean no
// restriction.
type ElementDefinition struct {
	Tag                string         `yaml:"tag"`
	AllowedChildren    []string       `yaml:"allowed_children,omitempty"`
	ForbiddenAncestors []string       `yaml:"forbidden_ancestors,omitempty"`
	UniqueChildren     map[string]int `yaml:"unique_children,omitempty"`
	OrderedChildren    [][]string     `yaml:"ordered_children,omitempty"`
}

// AllowsChild reports whether tag may be a direct child. Nil AllowedChildren
// means unrestricted.
func (d *ElementDefinition) AllowsChild(tag string) bool {
	if d.AllowedChildren == nil {
		return true
	}
	return slices.Contains(d.AllowedChildren, tag)
}

// ForbidsAncestor reports whether tag may not appear above this element.
func (d *ElementDefinition) ForbidsAncestor(tag string) bool {
	return slices.Contains(d.ForbiddenAncestors, tag)
}

// UniqueLimit returns declared limit of children with tag.
func (d *ElementDefinition) UniqueLimit(tag string) (int, bool) {
	if d.UniqueChildren == nil {
		return 0, false
	}
	limit, ok := d.UniqueChildren[tag]
	return limit, ok
}

// BlockDefinition describes a kind of block a user can create.
type BlockDefinition struct {
	Key        string            `yaml:"key"`
	Tags       []string          `yaml:"tags,omitempty"`
	DefaultTag string            `yaml:"default_tag"`
	Styles     model.StyleTree   `yaml:"styles,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// AllowsTag reports whether block may be rendered with tag. Empty Tags list
// means any tag is acceptable.
func (d *BlockDefinition) AllowsTag(tag string) bool {
	if len(d.Tags) == 0 {
		return true
	}
	return slices.Contains(d.Tags, tag)
}

// StyleDefinition describes a style property. A definition with Longhand is a
// shorthand and is never stored directly, only through its constituents.
type StyleDefinition struct {
	Key      string   `yaml:"key"`
	Syntax   string   `yaml:"syntax"`
	Longhand []string `yaml:"longhand,omitempty"`
}

// IsShorthand reports whether property expands into longhands.
func (d *StyleDefinition) IsShorthand() bool {
	return len(d.Longhand) > 0
}

// Range is an inclusive numeric range attached to a token.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v is within range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// TokenDefinition describes a grammar placeholder such as "<length>".
type TokenDefinition struct {
	Key     string  `yaml:"key"`
	Syntax  string  `yaml:"syntax,omitempty"`
	Default *string `yaml:"default,omitempty"`
	Range   *Range  `yaml:"range,omitempty"`
}

// DefaultValue returns token default value if declared.
func (d *TokenDefinition) DefaultValue() (string, bool) {
	if d.Default == nil {
		return "", false
	}
	return *d.Default, true
}

type (
	// ElementLookup gives access to element definitions by tag.
	ElementLookup interface {
		Element(tag string) (*ElementDefinition, bool)
	}
	// BlockLookup gives access to block definitions by key.
	BlockLookup interface {
		Block(key string) (*BlockDefinition, bool)
	}
	// StyleLookup gives access to style property definitions by key.
	StyleLookup interface {
		Style(key string) (*StyleDefinition, bool)
		StyleKeys() []string
	}
	// TokenLookup gives access to token definitions by key including angle
	// brackets, e.g. "<length>".
	TokenLookup interface {
		Token(key string) (*TokenDefinition, bool)
	}
)
