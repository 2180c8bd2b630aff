package tree_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"blox/hierarchy"
	"blox/model"
	"blox/tree"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name string
		snap model.Tree
		want []error
	}{
		{
			name: "consistent",
			snap: deleteFixture(),
		},
		{
			name: "dangling child",
			snap: build(node("root", "body", "", "gone")),
			want: []error{tree.ErrDanglingChild},
		},
		{
			name: "dangling parent",
			snap: build(node("a", "div", "gone")),
			want: []error{tree.ErrDanglingParent},
		},
		{
			name: "duplicate child",
			snap: build(node("root", "body", "", "a", "a"), node("a", "div", "root")),
			want: []error{tree.ErrDuplicateChild},
		},
		{
			name: "two parents",
			snap: build(
				node("root", "body", "", "p1", "p2"),
				node("p1", "div", "root", "a"),
				node("p2", "div", "root", "a"),
				node("a", "div", "p1"),
			),
			want: []error{tree.ErrTwoParents, tree.ErrParentMismatch},
		},
		{
			name: "cycle",
			snap: build(node("x", "div", "y", "y"), node("y", "div", "x", "x")),
			want: []error{hierarchy.ErrCycle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tree.Verify(tt.snap)
			if len(tt.want) == 0 {
				if err != nil {
					t.Errorf("Verify() = %v, want nil", err)
				}
				return
			}
			for _, w := range tt.want {
				if !errors.Is(err, w) {
					t.Errorf("Verify() = %v, want %v", err, w)
				}
			}
		})
	}
}

func TestVerifyReportsEverything(t *testing.T) {
	snap := build(
		node("root", "body", "", "gone1", "gone2"),
		node("a", "div", "missing"),
	)
	errs := multierr.Errors(tree.Verify(snap))
	if len(errs) != 3 {
		t.Errorf("Verify() reported %d errors, want 3: %v", len(errs), errs)
	}
}

func TestVerifyCycleReportedOnce(t *testing.T) {
	snap := build(node("x", "div", "y", "y"), node("y", "div", "x", "x"))
	count := 0
	for _, err := range multierr.Errors(tree.Verify(snap)) {
		if errors.Is(err, hierarchy.ErrCycle) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("cycle reported %d times, want 1", count)
	}
}

func TestDump(t *testing.T) {
	snap := build(
		node("root", "body", "", "a", "lost"),
		&model.Node{
			ID: "a", Tag: "div", ParentID: "root", DefinitionKey: "container",
			Attributes: map[string]string{"role": "group"},
			Styles:     model.StyleTree{"mobile": {"all": {"hover": {"color": "red"}}}},
		},
	)

	want := strings.Join([]string{
		"<body> root",
		"  <div> a [container]",
		"    attributes:",
		"      role: \"group\"",
		"    styles:",
		"      mobile/all/hover:",
		"        color: \"red\"",
		"  lost (missing)",
		"",
	}, "\n")
	if got := tree.Dump(snap, "root"); got != want {
		t.Errorf("Dump() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpRepeated(t *testing.T) {
	snap := build(node("x", "div", "", "x"))
	if got := tree.Dump(snap, "x"); got != "<div> x\n  x (repeated)\n" {
		t.Errorf("Dump() = %q", got)
	}
}
