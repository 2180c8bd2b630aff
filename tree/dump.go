package tree

import (
	"fmt"

	"blox/model"
	"blox/utils/debug"
)

// Dump renders subtree rooted at id as indented text. Styles are listed per
// context and attributes in natural key order. Unresolvable children and
// repeated nodes are marked instead of followed.
func Dump(t model.Source, id string) string {
	tw := debug.NewTreeWriter()
	dumpNode(tw, t, id, 0, make(map[string]bool))
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, t model.Source, id string, depth int, seen map[string]bool) {
	n, ok := t.Node(id)
	switch {
	case !ok:
		tw.Line(depth, "%s (missing)", id)
		return
	case seen[id]:
		tw.Line(depth, "%s (repeated)", id)
		return
	}
	seen[id] = true

	header := fmt.Sprintf("<%s> %s", n.Tag, n.ID)
	if n.DefinitionKey != "" {
		header += " [" + n.DefinitionKey + "]"
	}
	tw.Line(depth, "%s", header)
	tw.Fields(depth+1, "attributes", n.Attributes)
	if n.Styles.Len() > 0 {
		tw.Line(depth+1, "styles:")
		for _, d := range debug.SortedKeys(n.Styles) {
			for _, o := range debug.SortedKeys(n.Styles[d]) {
				for _, p := range debug.SortedKeys(n.Styles[d][o]) {
					tw.Fields(depth+2, d+"/"+o+"/"+p, n.Styles[d][o][p])
				}
			}
		}
	}
	for _, c := range n.ChildIDs {
		dumpNode(tw, t, c, depth+1, seen)
	}
}
