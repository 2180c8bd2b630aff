// Package tree implements copy-on-write mutations of the page tree. Every
// operation takes a snapshot, never changes it and returns a patch with the
// nodes to replace or remove.
package tree

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blox/catalog"
	"blox/common"
	"blox/hierarchy"
	"blox/model"
)

var (
	ErrSameNode = errors.New("source and target are the same")
	ErrNotFound = errors.New("node not found")
	// ErrRejected is reported when hierarchy rules do not allow placement.
	ErrRejected = errors.New("rejected by hierarchy rules")
	// ErrAttached is reported when attaching a node which already has a parent.
	ErrAttached = errors.New("node is already attached")
	// ErrIntoSelf is reported when a node would end up inside its own subtree.
	ErrIntoSelf = errors.New("cannot move node into its own subtree")
)

// IDGenerator produces fresh unique node ids.
type IDGenerator func() string

// NewID returns time ordered UUID string.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Engine performs tree mutations.
type Engine struct {
	rules *hierarchy.Rules
	newID IDGenerator
	log   *zap.Logger
}

// Option configures Engine.
type Option func(*Engine)

// WithIDs replaces default id generator.
func WithIDs(gen IDGenerator) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// New creates tree engine which validates placements with rules.
func New(rules *hierarchy.Rules, log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		rules: rules,
		newID: NewID,
		log:   log.Named("tree"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns hierarchy rules engine uses.
func (e *Engine) Rules() *hierarchy.Rules {
	return e.rules
}

// Overrides are caller supplied values for a new node. They take precedence
// over definition defaults.
type Overrides struct {
	Styles     model.StyleTree
	Attributes map[string]string
}

// Create builds new node from block definition. Empty tag selects the
// definition default tag. The node remembers parentID as its intended parent
// but is not attached: the caller has to call Attach after running hierarchy
// rules.
func (e *Engine) Create(def *catalog.BlockDefinition, parentID, tag string, data *Overrides) common.Validation[*model.Node] {
	if def == nil {
		return common.Invalid[*model.Node]("no block definition")
	}
	if tag == "" {
		tag = def.DefaultTag
	}
	if tag == "" {
		return common.Invalid[*model.Node]("block %q: no tag given and no default tag declared", def.Key)
	}
	if !def.AllowsTag(tag) {
		return common.Invalid[*model.Node]("block %q does not allow tag %q", def.Key, tag)
	}

	n := &model.Node{
		ID:            e.newID(),
		ParentID:      parentID,
		Tag:           tag,
		DefinitionKey: def.Key,
		Styles:        def.Styles.Clone(),
		Attributes:    model.MergeAttributes(def.Attributes, nil),
	}
	if data != nil {
		n.Styles = n.Styles.Merge(data.Styles)
		n.Attributes = model.MergeAttributes(def.Attributes, data.Attributes)
	}
	e.log.Debug("Node created", zap.String("id", n.ID), zap.String("tag", tag), zap.String("block", def.Key))
	return common.Valid(n)
}

func lookup(t model.Source, id string) (*model.Node, error) {
	n, ok := t.Node(id)
	if !ok {
		return nil, fmt.Errorf("node %q: %w", id, ErrNotFound)
	}
	return n, nil
}
