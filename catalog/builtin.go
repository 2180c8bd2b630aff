package catalog

import (
	"bytes"
	_ "embed"
)

//go:embed builtin.yaml
var builtinTables []byte

// Builtin returns catalog of common HTML elements, blocks and style properties
// used when host does not supply its own tables.
func Builtin() (*Catalog, error) {
	return Decode(bytes.NewReader(builtinTables))
}
