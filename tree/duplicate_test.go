package tree_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"blox/hierarchy"
	"blox/model"
	"blox/tree"
)

func TestDuplicate(t *testing.T) {
	e := testEngine(t)
	snap := deleteFixture()
	snap["b"] = snap["b"].WithStyles(model.StyleTree{"all": {"all": {"all": {"color": "red"}}}})

	cp, err := e.Duplicate(snap, "a")
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}
	if cp.Root != "new1" {
		t.Errorf("Root = %q, want new1", cp.Root)
	}
	if len(cp.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(cp.Nodes))
	}
	for id := range cp.Nodes {
		if _, ok := snap[id]; ok {
			t.Errorf("clone id %q collides with snapshot", id)
		}
	}

	root := cp.Nodes[cp.Root]
	if !root.IsRoot() {
		t.Errorf("clone root ParentID = %q, want empty", root.ParentID)
	}
	want := []string{cp.Mapping["b"], cp.Mapping["c"]}
	if diff := cmp.Diff(want, root.ChildIDs); diff != "" {
		t.Errorf("clone children mismatch (-want +got):\n%s", diff)
	}
	for _, old := range []string{"b", "c"} {
		c := cp.Nodes[cp.Mapping[old]]
		if c.ParentID != cp.Root {
			t.Errorf("clone of %q ParentID = %q, want %q", old, c.ParentID, cp.Root)
		}
		if c.Tag != snap[old].Tag {
			t.Errorf("clone of %q Tag = %q, want %q", old, c.Tag, snap[old].Tag)
		}
	}
	if diff := cmp.Diff(snap["b"].Styles, cp.Nodes[cp.Mapping["b"]].Styles); diff != "" {
		t.Errorf("clone styles mismatch (-want +got):\n%s", diff)
	}

	// clone shares nothing with the original
	cp.Nodes[cp.Mapping["b"]].Styles["all"]["all"]["all"]["color"] = "blue"
	if v, _ := snap["b"].Styles.Lookup("all", "all", "all", "color"); v != "red" {
		t.Errorf("original styles modified: %q", v)
	}

	next := snap.Apply(cp.Nodes)
	if err := tree.Verify(next); err != nil {
		t.Errorf("Verify() with unattached clone = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "d"}, children(next, "root")); diff != "" {
		t.Errorf("clone attached by Duplicate (-want +got):\n%s", diff)
	}
}

func TestDuplicateErrors(t *testing.T) {
	e := testEngine(t)

	if _, err := e.Duplicate(deleteFixture(), "zzz"); !errors.Is(err, tree.ErrNotFound) {
		t.Errorf("Duplicate(missing) error = %v, want ErrNotFound", err)
	}
	broken := build(node("a", "div", "", "gone"))
	if _, err := e.Duplicate(broken, "a"); !errors.Is(err, hierarchy.ErrDangling) {
		t.Errorf("Duplicate() with dangling child error = %v, want ErrDangling", err)
	}
}

func TestDuplicateSkipsTakenIDs(t *testing.T) {
	e := tree.New(testEngine(t).Rules(), nil, tree.WithIDs(sequence()))
	snap := build(
		node("new1", "div", "", "x"),
		node("x", "div", "new1"),
	)

	cp, err := e.Duplicate(snap, "new1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"new1": "new2", "x": "new3"}, cp.Mapping); diff != "" {
		t.Errorf("Mapping mismatch (-want +got):\n%s", diff)
	}
}
