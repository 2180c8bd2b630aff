package catalog

import (
	"fmt"
	"io"
	"slices"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"
)

// Catalog is a read-only collection of all definitions. It satisfies every
// lookup interface of this package. Construct it with New and do not modify
// definitions obtained from it.
type Catalog struct {
	elements  map[string]*ElementDefinition
	blocks    map[string]*BlockDefinition
	styles    map[string]*StyleDefinition
	tokens    map[string]*TokenDefinition
	styleKeys []string
}

// Tables is the serialized form of a catalog.
type Tables struct {
	Elements []ElementDefinition `yaml:"elements"`
	Blocks   []BlockDefinition   `yaml:"blocks"`
	Styles   []StyleDefinition   `yaml:"styles"`
	Tokens   []TokenDefinition   `yaml:"tokens"`
}

// New builds catalog from definition tables. Later duplicates replace
// earlier ones.
func New(t Tables) *Catalog {
	c := &Catalog{
		elements: make(map[string]*ElementDefinition, len(t.Elements)),
		blocks:   make(map[string]*BlockDefinition, len(t.Blocks)),
		styles:   make(map[string]*StyleDefinition, len(t.Styles)),
		tokens:   make(map[string]*TokenDefinition, len(t.Tokens)),
	}
	for i := range t.Elements {
		d := t.Elements[i]
		c.elements[d.Tag] = &d
	}
	for i := range t.Blocks {
		d := t.Blocks[i]
		c.blocks[d.Key] = &d
	}
	for i := range t.Styles {
		d := t.Styles[i]
		c.styles[d.Key] = &d
	}
	for i := range t.Tokens {
		d := t.Tokens[i]
		c.tokens[d.Key] = &d
	}
	for k := range c.styles {
		c.styleKeys = append(c.styleKeys, k)
	}
	slices.SortFunc(c.styleKeys, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})
	return c
}

// Decode reads catalog tables from YAML. Unknown fields are rejected.
func Decode(r io.Reader) (*Catalog, error) {
	var t Tables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(t), nil
}

func (c *Catalog) Element(tag string) (*ElementDefinition, bool) {
	d, ok := c.elements[tag]
	return d, ok
}

func (c *Catalog) Block(key string) (*BlockDefinition, bool) {
	d, ok := c.blocks[key]
	return d, ok
}

func (c *Catalog) Style(key string) (*StyleDefinition, bool) {
	d, ok := c.styles[key]
	return d, ok
}

// StyleKeys returns all style property keys in natural order.
func (c *Catalog) StyleKeys() []string {
	return slices.Clone(c.styleKeys)
}

func (c *Catalog) Token(key string) (*TokenDefinition, bool) {
	d, ok := c.tokens[key]
	return d, ok
}

// Check reports references which cannot be resolved inside the catalog:
// longhands without style definition, block default tags which are not
// allowed by the block itself and element rules naming unknown tags.
func (c *Catalog) Check() (err error) {
	for _, key := range c.styleKeys {
		for _, lh := range c.styles[key].Longhand {
			if _, ok := c.styles[lh]; !ok {
				err = multierr.Append(err, fmt.Errorf("style %q longhand %q: %w", key, lh, ErrUnknownKey))
			}
		}
	}
	for key, d := range c.blocks {
		if d.DefaultTag == "" {
			err = multierr.Append(err, fmt.Errorf("block %q has no default tag", key))
			continue
		}
		if !d.AllowsTag(d.DefaultTag) {
			err = multierr.Append(err, fmt.Errorf("block %q default tag %q is not among its tags", key, d.DefaultTag))
		}
	}
	for tag, d := range c.elements {
		for _, group := range d.OrderedChildren {
			for _, t := range group {
				if _, ok := c.elements[t]; !ok {
					err = multierr.Append(err, fmt.Errorf("element %q ordered child %q: %w", tag, t, ErrUnknownKey))
				}
			}
		}
		for t := range d.UniqueChildren {
			if _, ok := c.elements[t]; !ok {
				err = multierr.Append(err, fmt.Errorf("element %q unique child %q: %w", tag, t, ErrUnknownKey))
			}
		}
	}
	return err
}
