// Package store keeps the authoritative page tree for a host process. It
// serializes writers and hands out immutable snapshots to the engines.
package store

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"blox/model"
)

// Memory is an in-memory Provider. Readers get the current snapshot, a
// patch replaces it with a new one.
type Memory struct {
	mu      sync.RWMutex
	tree    model.Tree
	version uint64
	log     *zap.Logger
}

// New creates store holding nodes.
func New(nodes model.Tree, log *zap.Logger) *Memory {
	if log == nil {
		log = zap.NewNop()
	}
	if nodes == nil {
		nodes = model.Tree{}
	}
	return &Memory{tree: nodes, log: log.Named("store")}
}

func (m *Memory) Node(id string) (*model.Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Node(id)
}

// Nodes returns current snapshot. It stays valid and unchanged after later
// patches.
func (m *Memory) Nodes() model.Tree {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree
}

func (m *Memory) Apply(p model.Patch) {
	if len(p) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree = m.tree.Apply(p)
	m.version++
	m.log.Debug("Patch applied", zap.Strings("ids", p.IDs()), zap.Uint64("version", m.version))
}

// Version counts applied non-empty patches.
func (m *Memory) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// Document is the serialized form of a page tree.
type Document struct {
	Nodes []*model.Node `yaml:"nodes"`
}

// Load reads YAML document into new store. Unknown fields are rejected.
func Load(r io.Reader, log *zap.Logger) (*Memory, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	nodes := make(model.Tree, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n == nil || n.ID == "" {
			return nil, fmt.Errorf("document node %d has no id", i)
		}
		if _, ok := nodes[n.ID]; ok {
			return nil, fmt.Errorf("document node %q listed twice", n.ID)
		}
		nodes[n.ID] = n
	}
	return New(nodes, log), nil
}

// Save writes current snapshot as YAML document, nodes ordered by id.
func (m *Memory) Save(w io.Writer) error {
	t := m.Nodes()
	doc := Document{Nodes: make([]*model.Node, 0, len(t))}
	for _, id := range model.Patch(t).IDs() {
		doc.Nodes = append(doc.Nodes, t[id])
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return enc.Close()
}

// Clipboard is a process local clipboard for style values.
type Clipboard struct {
	mu    sync.Mutex
	value string
	full  bool
}

func (c *Clipboard) Copy(value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value, c.full = value, true
	return nil
}

// Paste returns last copied value, error when nothing was copied yet.
func (c *Clipboard) Paste() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.full {
		return "", fmt.Errorf("clipboard is empty")
	}
	return c.value, nil
}
