package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"blox/catalog"
)

const tables = `elements:
  - tag: ul
    allowed_children: [li]
    ordered_children: [[li]]
  - tag: li
  - tag: a
    forbidden_ancestors: [a]
blocks:
  - key: list
    tags: [ul, ol]
    default_tag: ul
styles:
  - key: margin-top
    syntax: "<length> | auto"
  - key: margin
    syntax: "[ <length> | auto ]{1,4}"
    longhand: [margin-top]
  - key: z-index
    syntax: "<integer> | auto"
  - key: margin-10
    syntax: "<length>"
  - key: margin-2
    syntax: "<length>"
tokens:
  - key: <length>
    default: 0px
  - key: <opacity-value>
    syntax: <number>
    range: {min: 0, max: 1}
`

func TestDecode(t *testing.T) {
	c, err := catalog.Decode(strings.NewReader(tables))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	ul, ok := c.Element("ul")
	if !ok || !ul.AllowsChild("li") || ul.AllowsChild("div") {
		t.Errorf("Element(ul) = %+v", ul)
	}
	li, _ := c.Element("li")
	if !li.AllowsChild("div") {
		t.Error("element without allowed children must accept anything")
	}
	a, _ := c.Element("a")
	if !a.ForbidsAncestor("a") || a.ForbidsAncestor("p") {
		t.Errorf("Element(a) = %+v", a)
	}

	list, ok := c.Block("list")
	if !ok || !list.AllowsTag("ol") || list.AllowsTag("div") {
		t.Errorf("Block(list) = %+v", list)
	}

	margin, ok := c.Style("margin")
	if !ok || !margin.IsShorthand() {
		t.Errorf("Style(margin) = %+v", margin)
	}
	if diff := cmp.Diff([]string{"margin", "margin-2", "margin-10", "margin-top", "z-index"}, c.StyleKeys()); diff != "" {
		t.Errorf("StyleKeys() mismatch (-want +got):\n%s", diff)
	}

	length, ok := c.Token("<length>")
	if v, has := length.DefaultValue(); !ok || !has || v != "0px" {
		t.Errorf("Token(<length>) default = %q, %v", v, has)
	}
	opacity, _ := c.Token("<opacity-value>")
	if opacity.Range == nil || !opacity.Range.Contains(0.5) || opacity.Range.Contains(2) {
		t.Errorf("Token(<opacity-value>) range = %+v", opacity.Range)
	}
	if _, has := opacity.DefaultValue(); has {
		t.Error("token without default reports one")
	}
	if _, ok := c.Token("length"); ok {
		t.Error("token keys include angle brackets")
	}

	if err := c.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := catalog.Decode(strings.NewReader("elements:\n  - tag: p\n    children: [a]\n")); err == nil {
		t.Error("Decode() with unknown field error = nil")
	}
	c, err := catalog.Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode(empty) error = %v", err)
	}
	if _, ok := c.Element("p"); ok {
		t.Error("empty catalog has elements")
	}
}

func TestStyleKeysIsCopy(t *testing.T) {
	c := catalog.New(catalog.Tables{Styles: []catalog.StyleDefinition{{Key: "b"}, {Key: "a"}}})
	keys := c.StyleKeys()
	keys[0] = "z"
	if got := c.StyleKeys()[0]; got != "a" {
		t.Errorf("StyleKeys()[0] = %q after caller modification, want a", got)
	}
}

func TestCheck(t *testing.T) {
	c := catalog.New(catalog.Tables{
		Elements: []catalog.ElementDefinition{
			{Tag: "table", OrderedChildren: [][]string{{"caption"}, {"tr"}}, UniqueChildren: map[string]int{"caption": 1}},
			{Tag: "tr"},
		},
		Blocks: []catalog.BlockDefinition{
			{Key: "nodefault"},
			{Key: "mismatch", Tags: []string{"div"}, DefaultTag: "span"},
			{Key: "fine", DefaultTag: "div"},
		},
		Styles: []catalog.StyleDefinition{
			{Key: "margin", Longhand: []string{"margin-top"}},
		},
	})

	errs := multierr.Errors(c.Check())
	if len(errs) != 5 {
		t.Fatalf("Check() reported %d errors, want 5: %v", len(errs), errs)
	}
	var unknown int
	for _, err := range errs {
		if errors.Is(err, catalog.ErrUnknownKey) {
			unknown++
		}
	}
	if unknown != 3 {
		t.Errorf("Check() reported %d unknown keys, want 3", unknown)
	}
}

func TestRangeContains(t *testing.T) {
	r := catalog.Range{Min: 0, Max: 10}
	for v, want := range map[float64]bool{-1: false, 0: true, 5: true, 10: true, 10.5: false} {
		if got := r.Contains(v); got != want {
			t.Errorf("Contains(%v) = %v, want %v", v, got, want)
		}
	}
}

func TestBuiltin(t *testing.T) {
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	if err := c.Check(); err != nil {
		t.Errorf("Builtin().Check() = %v", err)
	}
	for _, key := range []string{"page", "container", "link", "list"} {
		if _, ok := c.Block(key); !ok {
			t.Errorf("Builtin() has no block %q", key)
		}
	}
	img, _ := c.Element("img")
	if img.AllowsChild("span") {
		t.Error("empty allowed children list must reject every child")
	}
	for _, key := range c.StyleKeys() {
		d, _ := c.Style(key)
		for _, lh := range d.Longhand {
			if _, ok := c.Style(lh); !ok {
				t.Errorf("style %q longhand %q not defined", key, lh)
			}
		}
	}
}
