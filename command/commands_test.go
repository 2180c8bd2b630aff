package command_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"blox/catalog"
	"blox/command"
	"blox/css"
	"blox/hierarchy"
	"blox/model"
	"blox/store"
	"blox/style"
	"blox/tree"
)

func ptr[T any](v T) *T {
	return &v
}

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Tables{
		Elements: []catalog.ElementDefinition{
			{Tag: "body"},
			{Tag: "div"},
			{Tag: "p", AllowedChildren: []string{"span", "a"}},
			{Tag: "span"},
			{Tag: "a", ForbiddenAncestors: []string{"a"}},
			{Tag: "ul", AllowedChildren: []string{"li"}, OrderedChildren: [][]string{{"li"}}},
			{Tag: "li"},
		},
		Blocks: []catalog.BlockDefinition{
			{Key: "container", Tags: []string{"div"}, DefaultTag: "div"},
			{Key: "item", DefaultTag: "li"},
			{Key: "link", DefaultTag: "a", Attributes: map[string]string{"href": "#"}},
		},
		Styles: []catalog.StyleDefinition{
			{Key: "color", Syntax: "<color>"},
			{Key: "margin-top", Syntax: "<length-percentage> | auto"},
			{Key: "margin-bottom", Syntax: "<length-percentage> | auto"},
			{Key: "margin", Syntax: "[ <length-percentage> | auto ]{1,2}", Longhand: []string{"margin-top", "margin-bottom"}},
		},
		Tokens: []catalog.TokenDefinition{
			{Key: "<length>", Default: ptr("0px")},
			{Key: "<length-percentage>", Syntax: "<length> | <percentage>"},
		},
	})
}

// sequence returns id generator producing new1, new2, ...
func sequence() tree.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new%d", n)
	}
}

func testCommands(t *testing.T, clipboard command.Clipboard) *command.Commands {
	t.Helper()
	log := zaptest.NewLogger(t)
	c := testCatalog()
	return command.New(command.Deps{
		Blocks:     c,
		Tree:       tree.New(hierarchy.New(c, log), log, tree.WithIDs(sequence())),
		Styles:     style.New(c, css.NewGrammar(c, log), style.DefaultContext, log),
		Dimensions: style.Dimensions{Devices: []string{"all", "mobile"}, Pseudos: []string{"all", "hover"}},
		Clipboard:  clipboard,
	}, log)
}

func node(id, tag, parent string, children ...string) *model.Node {
	return &model.Node{ID: id, Tag: tag, ParentID: parent, ChildIDs: children}
}

// fixture is root(body)[list(ul)[i1(li), i2(li)], box(div)[txt(p)[lnk(a)]]]
func fixture() *store.Memory {
	nodes := model.Tree{}
	for _, n := range []*model.Node{
		node("root", "body", "", "list", "box"),
		node("list", "ul", "root", "i1", "i2"),
		node("i1", "li", "list"),
		node("i2", "li", "list"),
		node("box", "div", "root", "txt"),
		node("txt", "p", "box", "lnk"),
		node("lnk", "a", "txt"),
	} {
		nodes[n.ID] = n
	}
	return store.New(nodes, nil)
}

func children(s model.Source, id string) []string {
	n, ok := s.Node(id)
	if !ok {
		return nil
	}
	return n.ChildIDs
}

func TestCreateNode(t *testing.T) {
	tests := []struct {
		name    string
		block   string
		parent  string
		tag     string
		index   int
		status  command.Status
		parentC []string
	}{
		{"append", "container", "root", "", -1, command.StatusOk, []string{"list", "box", "new1"}},
		{"index past end appends", "container", "root", "", 99, command.StatusOk, []string{"list", "box", "new1"}},
		{"first", "container", "root", "", 0, command.StatusOk, []string{"new1", "list", "box"}},
		{"item into list", "item", "list", "", 1, command.StatusOk, []string{"i1", "new1", "i2"}},
		{"div into list", "container", "list", "", 0, command.StatusRejected, []string{"i1", "i2"}},
		{"nested link", "link", "lnk", "", 0, command.StatusRejected, nil},
		{"unknown block", "nope", "root", "", 0, command.StatusInvalid, []string{"list", "box"}},
		{"unknown parent", "container", "nope", "", 0, command.StatusInvalid, nil},
		{"tag not allowed", "container", "root", "span", 0, command.StatusInvalid, []string{"list", "box"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture()
			c := testCommands(t, nil)
			before := s.Nodes()

			r := c.CreateNode(s, tt.block, tt.parent, tt.tag, tt.index, nil)
			if r.Status != tt.status {
				t.Fatalf("CreateNode() status = %v, want %v (%s)", r.Status, tt.status, r.Error())
			}
			if !r.Ok() {
				if len(r.Patch) != 0 {
					t.Errorf("failed CreateNode() returned patch %v", r.Patch.IDs())
				}
				return
			}
			if r.Node != "new1" {
				t.Errorf("CreateNode() node = %q, want new1", r.Node)
			}
			s.Apply(r.Patch)
			if diff := cmp.Diff(tt.parentC, children(s, tt.parent)); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
			if n, _ := s.Node("new1"); n.ParentID != tt.parent {
				t.Errorf("created node parent = %q, want %q", n.ParentID, tt.parent)
			}
			if diff := cmp.Diff([]string{"list", "box"}, children(before, "root")); diff != "" {
				t.Errorf("snapshot modified (-want +got):\n%s", diff)
			}
			if err := tree.Verify(s); err != nil {
				t.Errorf("Verify() after create = %v", err)
			}
		})
	}
}

func TestCreateNodeOverrides(t *testing.T) {
	s := fixture()
	c := testCommands(t, nil)
	r := c.CreateNode(s, "link", "txt", "", -1, &tree.Overrides{Attributes: map[string]string{"href": "/home"}})
	if !r.Ok() {
		t.Fatalf("CreateNode() = %s", r.Error())
	}
	if got := r.Patch[r.Node].Attributes["href"]; got != "/home" {
		t.Errorf("href = %q, want /home", got)
	}
}

func TestDeleteNode(t *testing.T) {
	s := fixture()
	c := testCommands(t, nil)

	r := c.DeleteNode(s, "box")
	if !r.Ok() || r.Removal == nil {
		t.Fatalf("DeleteNode() = %s, removal %v", r.Error(), r.Removal)
	}
	if diff := cmp.Diff([]string{"box", "txt", "lnk"}, r.Removal.Subtree); diff != "" {
		t.Errorf("removal subtree mismatch (-want +got):\n%s", diff)
	}
	s.Apply(r.Patch)
	if diff := cmp.Diff([]string{"list"}, children(s, "root")); diff != "" {
		t.Errorf("root children mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Lifecycle(s, "box"); got != tree.StateDetached {
		t.Errorf("Lifecycle(box) = %v, want detached", got)
	}

	f := c.FinalizeDelete(s, *r.Removal, "txt")
	if !f.Ok() {
		t.Fatalf("FinalizeDelete() = %s", f.Error())
	}
	if f.Selected != "" {
		t.Errorf("FinalizeDelete() selected = %q, want cleared", f.Selected)
	}
	s.Apply(f.Patch)
	for _, id := range []string{"box", "txt", "lnk"} {
		if _, ok := s.Node(id); ok {
			t.Errorf("node %q not purged", id)
		}
	}

	again := c.FinalizeDelete(s, *r.Removal, "i1")
	if again.Status != command.StatusNoOp || again.Selected != "i1" {
		t.Errorf("repeated FinalizeDelete() = %v selected %q, want no-op keeping i1", again.Status, again.Selected)
	}
	if err := tree.Verify(s); err != nil {
		t.Errorf("Verify() after delete = %v", err)
	}
}

func TestDeleteNodeErrors(t *testing.T) {
	s := fixture()
	c := testCommands(t, nil)
	for _, id := range []string{"root", "nope"} {
		if r := c.DeleteNode(s, id); r.Status != command.StatusInvalid {
			t.Errorf("DeleteNode(%q) status = %v, want invalid", id, r.Status)
		}
	}
}

func TestDuplicateNode(t *testing.T) {
	s := fixture()
	c := testCommands(t, nil)

	r := c.DuplicateNode(s, "box")
	if !r.Ok() {
		t.Fatalf("DuplicateNode() = %s", r.Error())
	}
	s.Apply(r.Patch)
	if diff := cmp.Diff([]string{"list", "box", r.Node}, children(s, "root")); diff != "" {
		t.Errorf("root children mismatch (-want +got):\n%s", diff)
	}
	clone, _ := s.Node(r.Node)
	if clone.Tag != "div" || len(clone.ChildIDs) != 1 || clone.ChildIDs[0] == "txt" {
		t.Errorf("clone = %+v, want div with fresh child", clone)
	}
	if err := tree.Verify(s); err != nil {
		t.Errorf("Verify() after duplicate = %v", err)
	}

	if r := c.DuplicateNode(s, "root"); r.Status != command.StatusInvalid {
		t.Errorf("DuplicateNode(root) status = %v, want invalid", r.Status)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name   string
		move   func(c *command.Commands, s model.Source) command.Result
		status command.Status
		parent string
		want   []string
	}{
		{
			name:   "before",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveBefore(s, "i2", "i1") },
			status: command.StatusOk, parent: "list", want: []string{"i2", "i1"},
		},
		{
			name:   "after",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveAfter(s, "i1", "i2") },
			status: command.StatusOk, parent: "list", want: []string{"i2", "i1"},
		},
		{
			name:   "already before",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveBefore(s, "i1", "i2") },
			status: command.StatusNoOp, parent: "list", want: []string{"i1", "i2"},
		},
		{
			name:   "already inside",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveInto(s, "i2", "list") },
			status: command.StatusNoOp, parent: "list", want: []string{"i1", "i2"},
		},
		{
			name:   "into other parent",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveInto(s, "list", "box") },
			status: command.StatusOk, parent: "box", want: []string{"txt", "list"},
		},
		{
			name:   "same node",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveInto(s, "i1", "i1") },
			status: command.StatusInvalid, parent: "list", want: []string{"i1", "i2"},
		},
		{
			name:   "into own subtree",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveInto(s, "box", "txt") },
			status: command.StatusInvalid, parent: "box", want: []string{"txt"},
		},
		{
			name:   "rules",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveInto(s, "box", "list") },
			status: command.StatusRejected, parent: "list", want: []string{"i1", "i2"},
		},
		{
			name:   "missing",
			move:   func(c *command.Commands, s model.Source) command.Result { return c.MoveAfter(s, "nope", "i1") },
			status: command.StatusInvalid, parent: "list", want: []string{"i1", "i2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture()
			c := testCommands(t, nil)
			r := tt.move(c, s)
			if r.Status != tt.status {
				t.Fatalf("move status = %v, want %v (%s)", r.Status, tt.status, r.Error())
			}
			s.Apply(r.Patch)
			if diff := cmp.Diff(tt.want, children(s, tt.parent)); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
			if err := tree.Verify(s); err != nil {
				t.Errorf("Verify() after move = %v", err)
			}
		})
	}
}

func TestResultError(t *testing.T) {
	if got := (command.Result{Status: command.StatusOk}).Error(); got != "" {
		t.Errorf("Error() of ok result = %q", got)
	}
	r := command.Result{Status: command.StatusInvalid, Message: "bad"}
	if got := r.Error(); got != "invalid: bad" {
		t.Errorf("Error() = %q, want \"invalid: bad\"", got)
	}
}
