package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"blox/catalog"
	"blox/command"
	"blox/css"
	"blox/hierarchy"
	"blox/store"
	"blox/style"
	"blox/tree"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:     time.Now(),
		Store:     store.New(nil, nil),
		Clipboard: &store.Clipboard{},
	}
}

func (e *LocalEnv) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// LoadCatalog reads catalog tables named by configuration or falls back to
// the built-in ones.
func (e *LocalEnv) LoadCatalog() error {
	var (
		c   *catalog.Catalog
		err error
	)
	if e.Cfg == nil || e.Cfg.Catalog.Path == "" {
		c, err = catalog.Builtin()
	} else {
		var f *os.File
		if f, err = os.Open(filepath.Clean(e.Cfg.Catalog.Path)); err != nil {
			return fmt.Errorf("unable to open catalog: %w", err)
		}
		defer f.Close()
		c, err = catalog.Decode(f)
	}
	if err != nil {
		return err
	}
	e.Catalog = c
	return nil
}

// LoadDocument replaces store content with nodes read from YAML file.
func (e *LocalEnv) LoadDocument(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open document: %w", err)
	}
	defer f.Close()

	s, err := store.Load(f, e.logger())
	if err != nil {
		return fmt.Errorf("unable to load document %q: %w", path, err)
	}
	e.Store = s
	return nil
}

// Context returns default style context from configuration.
func (e *LocalEnv) Context() style.Context {
	if e.Cfg == nil {
		return style.DefaultContext
	}
	return e.Cfg.Styles.Defaults()
}

func (e *LocalEnv) dimensions() style.Dimensions {
	if e.Cfg == nil {
		return style.Dimensions{}
	}
	return e.Cfg.Styles.Dimensions()
}

// Grammar returns grammar engine over loaded catalog.
func (e *LocalEnv) Grammar() *css.Grammar {
	return css.NewGrammar(e.Catalog, e.logger())
}

// Styles returns style engine over loaded catalog.
func (e *LocalEnv) Styles() *style.Engine {
	return style.New(e.Catalog, e.Grammar(), e.Context(), e.logger())
}

// Commands wires command surface to loaded catalog and environment
// clipboard. LoadCatalog has to be called first.
func (e *LocalEnv) Commands() *command.Commands {
	log := e.logger()
	return command.New(command.Deps{
		Blocks:     e.Catalog,
		Tree:       tree.New(hierarchy.New(e.Catalog, log), log),
		Styles:     e.Styles(),
		Dimensions: e.dimensions(),
		Clipboard:  e.Clipboard,
	}, log)
}
