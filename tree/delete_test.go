package tree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"blox/model"
	"blox/tree"
)

func deleteFixture() model.Tree {
	return build(
		node("root", "body", "", "a", "d"),
		node("a", "div", "root", "b", "c"),
		node("b", "div", "a"),
		node("c", "div", "a"),
		node("d", "div", "root"),
	)
}

func TestDeleteTwoPhase(t *testing.T) {
	e := testEngine(t)
	snap := deleteFixture()

	removal, patch, err := e.Detach(snap, "a")
	if err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, removal.Subtree); diff != "" {
		t.Errorf("Subtree mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Lifecycle(snap, "a"); got != tree.StateLive {
		t.Errorf("Lifecycle() before detach = %v, want live", got)
	}

	detached := snap.Apply(patch)
	if got := tree.Lifecycle(detached, "a"); got != tree.StateDetached {
		t.Errorf("Lifecycle() after detach = %v, want detached", got)
	}
	if diff := cmp.Diff([]string{"d"}, children(detached, "root")); diff != "" {
		t.Errorf("root children mismatch (-want +got):\n%s", diff)
	}
	// data stays until purge
	for _, id := range []string{"a", "b", "c"} {
		if _, ok := detached.Node(id); !ok {
			t.Errorf("node %q removed by detach", id)
		}
	}
	if err := tree.Verify(detached); err != nil {
		t.Errorf("Verify() after detach = %v", err)
	}

	purge, selected := e.Purge(detached, removal, "b")
	if selected != "" {
		t.Errorf("selection = %q, want cleared", selected)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, purge.IDs()); diff != "" {
		t.Errorf("purged ids mismatch (-want +got):\n%s", diff)
	}
	purged := detached.Apply(purge)
	if diff := cmp.Diff([]string{"d", "root"}, sortedIDs(purged)); diff != "" {
		t.Errorf("remaining ids mismatch (-want +got):\n%s", diff)
	}
	if got := tree.Lifecycle(purged, "a"); got != tree.StatePurged {
		t.Errorf("Lifecycle() after purge = %v, want purged", got)
	}
	if err := tree.Verify(purged); err != nil {
		t.Errorf("Verify() after purge = %v", err)
	}

	again, selected := e.Purge(purged, removal, "d")
	if len(again) != 0 || selected != "d" {
		t.Errorf("second Purge() = %v, %q, want no-op", again, selected)
	}
}

func TestPurgeKeepsUnrelatedSelection(t *testing.T) {
	e := testEngine(t)
	snap := deleteFixture()

	removal, patch, err := e.Detach(snap, "a")
	if err != nil {
		t.Fatal(err)
	}
	_, selected := e.Purge(snap.Apply(patch), removal, "d")
	if selected != "d" {
		t.Errorf("selection = %q, want d", selected)
	}
}

func TestPurgeAfterConcurrentMoves(t *testing.T) {
	e := testEngine(t)
	snap := deleteFixture()

	removal, patch, err := e.Detach(snap, "a")
	if err != nil {
		t.Fatal(err)
	}
	detached := snap.Apply(patch)

	// c leaves the detached subtree, n joins it before purge runs
	detached = detached.Apply(model.Patch{
		"a":    detached["a"].WithChildren([]string{"b", "n"}),
		"c":    detached["c"].WithParent("root"),
		"root": detached["root"].WithChildren([]string{"d", "c"}),
		"n":    node("n", "div", "a"),
	})
	if err := tree.Verify(detached); err != nil {
		t.Fatalf("fixture is inconsistent: %v", err)
	}

	purge, _ := e.Purge(detached, removal, "")
	next := detached.Apply(purge)
	if diff := cmp.Diff([]string{"c", "d", "n", "root"}, sortedIDs(next)); diff != "" {
		t.Errorf("remaining ids mismatch (-want +got):\n%s", diff)
	}
	if n, _ := next.Node("n"); !n.IsRoot() {
		t.Errorf("orphan ParentID = %q, want empty", n.ParentID)
	}
	if err := tree.Verify(next); err != nil {
		t.Errorf("Verify() after purge = %v", err)
	}
}

func TestPurgeReattached(t *testing.T) {
	e := testEngine(t)
	snap := deleteFixture()

	removal, _, err := e.Detach(snap, "a")
	if err != nil {
		t.Fatal(err)
	}
	// patch never applied, node is still live
	purge, selected := e.Purge(snap, removal, "b")
	if len(purge) != 0 || selected != "b" {
		t.Errorf("Purge() of live node = %v, %q, want no-op", purge, selected)
	}
}

func sortedIDs(t model.Tree) []string {
	return model.Patch(t).IDs()
}
