package css

import (
	"slices"
	"strconv"
	"strings"
)

// matcher checks value components against a grammar tree directly, without
// enumerating alternatives, so it is not affected by enumeration limits.
type matcher struct {
	parts []string
	cand  [][]string
	terms map[string]Term
}

func matchTree(root gnode, c Components) bool {
	if root == nil || c.Len() == 0 {
		return false
	}
	m := &matcher{parts: c.Parts, cand: make([][]string, c.Len()), terms: make(map[string]Term)}
	for i, p := range c.Parts {
		m.cand[i] = Candidates(p)
	}
	return slices.Contains(m.match(root, 0), c.Len())
}

func (m *matcher) term(text string) Term {
	t, ok := m.terms[text]
	if !ok {
		t = newTerm(text)
		m.terms[text] = t
	}
	return t
}

// match returns every position a match of n starting at pos may end at.
func (m *matcher) match(n gnode, pos int) []int {
	switch n := n.(type) {
	case gterm:
		if pos < len(m.parts) && termAccepts(m.term(n.text), m.parts[pos], m.cand[pos]) {
			return []int{pos + 1}
		}
		return nil
	case gseq:
		ends := []int{pos}
		for _, it := range n.items {
			if ends = m.step(it, ends); len(ends) == 0 {
				return nil
			}
		}
		return ends
	case gchoice:
		var ends []int
		for _, it := range n.items {
			ends = addEnds(ends, m.match(it, pos)...)
		}
		return ends
	case gany:
		return m.orders(n.items, pos, false)
	case gall:
		return m.orders(n.items, pos, true)
	case grepeat:
		return m.repeat(n, pos)
	}
	return nil
}

func (m *matcher) step(n gnode, from []int) []int {
	var ends []int
	for _, p := range from {
		ends = addEnds(ends, m.match(n, p)...)
	}
	return ends
}

// orders matches items in any order, each at most once: all of them when
// all is set, otherwise at least one.
func (m *matcher) orders(items []gnode, pos int, all bool) []int {
	var (
		ends []int
		used = make([]byte, len(items))
		seen = make(map[string]bool)
	)
	var walk func(p, depth int)
	walk = func(p, depth int) {
		key := string(used) + ":" + strconv.Itoa(p)
		if seen[key] {
			return
		}
		seen[key] = true
		if depth > 0 && (!all || depth == len(items)) {
			ends = addEnds(ends, p)
		}
		for i, it := range items {
			if used[i] != 0 {
				continue
			}
			used[i] = 1
			for _, e := range m.match(it, p) {
				walk(e, depth+1)
			}
			used[i] = 0
		}
	}
	walk(pos, 0)
	return ends
}

func (m *matcher) repeat(r grepeat, pos int) []int {
	limit := r.max
	if r.unbounded {
		limit = max(limit, len(m.parts)-pos)
	}
	var ends []int
	cur := []int{pos}
	for n := 0; n <= limit && len(cur) > 0; n++ {
		if n > 0 {
			cur = m.step(r.item, cur)
		}
		if n < r.min {
			continue
		}
		for _, e := range cur {
			if r.required && e == pos {
				continue
			}
			ends = addEnds(ends, e)
		}
	}
	return ends
}

func addEnds(ends []int, more ...int) []int {
	for _, e := range more {
		if !slices.Contains(ends, e) {
			ends = append(ends, e)
		}
	}
	return ends
}

// compile expands syntax and parses it into a grammar tree. Empty syntax
// yields nil tree.
func (g *Grammar) compile(syntax string) (gnode, error) {
	if strings.TrimSpace(syntax) == "" {
		return nil, nil
	}
	return parseGrammar(g.Expand(syntax))
}
