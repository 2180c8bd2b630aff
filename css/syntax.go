package css

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Grammar strings follow CSS value definition syntax: juxtaposition, "|",
// "||", "&&", "[ ]" groups and the "* + ? # ! {m} {m,n} {m,}" multipliers.
// Literal "," and "/" separators are accepted and dropped: alternatives are
// compared as space joined token sequences.

// ErrSyntax is returned for malformed grammar strings.
var ErrSyntax = errors.New("malformed grammar")

const (
	// maxRepeat bounds unbounded multipliers when enumerating alternatives.
	maxRepeat = 4
	// maxAlternatives caps number of enumerated alternatives per grammar.
	maxAlternatives = 4096
)

type gkind int

const (
	gTerm gkind = iota
	gOpen
	gClose
	gBar
	gDoubleBar
	gDoubleAmp
	gMult
)

type gtoken struct {
	kind     gkind
	text     string
	min, max int
	required  bool // "!" multiplier
	comma     bool // "#" multiplier
	braces    bool // "{m,n}" multiplier
	unbounded bool // "* + #" and "{m,}", max only bounds enumeration
}

func scanGrammar(s string) ([]gtoken, error) {
	var toks []gtoken
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '<':
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated token at %d", ErrSyntax, i)
			}
			toks = append(toks, gtoken{kind: gTerm, text: s[i : i+end+1]})
			i += end + 1
		case c == '[':
			toks = append(toks, gtoken{kind: gOpen})
			i++
		case c == ']':
			toks = append(toks, gtoken{kind: gClose})
			i++
		case c == '|':
			if i+1 < len(s) && s[i+1] == '|' {
				toks = append(toks, gtoken{kind: gDoubleBar})
				i += 2
			} else {
				toks = append(toks, gtoken{kind: gBar})
				i++
			}
		case c == '&':
			if i+1 >= len(s) || s[i+1] != '&' {
				return nil, fmt.Errorf("%w: single '&' at %d", ErrSyntax, i)
			}
			toks = append(toks, gtoken{kind: gDoubleAmp})
			i += 2
		case c == '*':
			toks = append(toks, gtoken{kind: gMult, min: 0, max: maxRepeat, unbounded: true})
			i++
		case c == '+':
			toks = append(toks, gtoken{kind: gMult, min: 1, max: maxRepeat, unbounded: true})
			i++
		case c == '?':
			toks = append(toks, gtoken{kind: gMult, min: 0, max: 1})
			i++
		case c == '#':
			toks = append(toks, gtoken{kind: gMult, min: 1, max: maxRepeat, comma: true, unbounded: true})
			i++
		case c == '!':
			toks = append(toks, gtoken{kind: gMult, min: 1, max: 1, required: true})
			i++
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated multiplier at %d", ErrSyntax, i)
			}
			body := s[i+1 : i+end]
			lo, hi, err := parseCount(body)
			if err != nil {
				return nil, err
			}
			open := strings.HasSuffix(strings.TrimSpace(body), ",")
			toks = append(toks, gtoken{kind: gMult, min: lo, max: hi, braces: true, unbounded: open})
			i += end + 1
		case c == ',' || c == '/':
			i++
		case c == '\'':
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated quote at %d", ErrSyntax, i)
			}
			lit := s[i+1 : i+1+end]
			if lit != "," && lit != "/" {
				toks = append(toks, gtoken{kind: gTerm, text: lit})
			}
			i += end + 2
		default:
			j := i
			for j < len(s) && strings.IndexByte(" \t\n\r<>[]|&*+?#!{},/'(", s[j]) < 0 {
				j++
			}
			if j < len(s) && s[j] == '(' {
				end, err := matchParen(s, j)
				if err != nil {
					return nil, err
				}
				j = end + 1
			}
			if j == i {
				return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, i)
			}
			toks = append(toks, gtoken{kind: gTerm, text: s[i:j]})
			i = j
		}
	}
	return toks, nil
}

func matchParen(s string, open int) (int, error) {
	depth := 0
	for k := open; k < len(s); k++ {
		switch s[k] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return k, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unbalanced parentheses at %d", ErrSyntax, open)
}

func parseCount(s string) (int, int, error) {
	lo, hi, ranged := strings.Cut(s, ",")
	minV, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil || minV < 0 {
		return 0, 0, fmt.Errorf("%w: bad multiplier {%s}", ErrSyntax, s)
	}
	if !ranged {
		return minV, minV, nil
	}
	hi = strings.TrimSpace(hi)
	if hi == "" {
		return minV, max(minV, maxRepeat), nil
	}
	maxV, err := strconv.Atoi(hi)
	if err != nil || maxV < minV {
		return 0, 0, fmt.Errorf("%w: bad multiplier {%s}", ErrSyntax, s)
	}
	return minV, maxV, nil
}

// grammar tree

type gnode interface {
	expand() [][]string
}

type (
	gterm   struct{ text string }
	gseq    struct{ items []gnode }
	gchoice struct{ items []gnode }
	gany    struct{ items []gnode } // "||" one or more, any order
	gall    struct{ items []gnode } // "&&" all, any order
	grepeat struct {
		item      gnode
		min, max  int
		required  bool
		unbounded bool
	}
)

type gparser struct {
	toks []gtoken
	pos  int
}

func parseGrammar(s string) (gnode, error) {
	toks, err := scanGrammar(s)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, nil
	}
	p := &gparser{toks: toks}
	n, err := p.choice()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("%w: unexpected token at position %d", ErrSyntax, p.pos)
	}
	return n, nil
}

func (p *gparser) peek() (gtoken, bool) {
	if p.pos >= len(p.toks) {
		return gtoken{}, false
	}
	return p.toks[p.pos], true
}

func (p *gparser) binary(kind gkind, next func() (gnode, error), build func([]gnode) gnode) (gnode, error) {
	first, err := next()
	if err != nil {
		return nil, err
	}
	items := []gnode{first}
	for {
		t, ok := p.peek()
		if !ok || t.kind != kind {
			break
		}
		p.pos++
		n, err := next()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if len(items) == 1 {
		return first, nil
	}
	return build(items), nil
}

func (p *gparser) choice() (gnode, error) {
	return p.binary(gBar, p.anyOrder, func(items []gnode) gnode { return gchoice{items} })
}

func (p *gparser) anyOrder() (gnode, error) {
	return p.binary(gDoubleBar, p.allOrder, func(items []gnode) gnode { return gany{items} })
}

func (p *gparser) allOrder() (gnode, error) {
	return p.binary(gDoubleAmp, p.sequence, func(items []gnode) gnode { return gall{items} })
}

func (p *gparser) sequence() (gnode, error) {
	var items []gnode
	for {
		t, ok := p.peek()
		if !ok || t.kind == gBar || t.kind == gDoubleBar || t.kind == gDoubleAmp || t.kind == gClose {
			break
		}
		n, err := p.unit()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	switch len(items) {
	case 0:
		return nil, fmt.Errorf("%w: empty sequence at position %d", ErrSyntax, p.pos)
	case 1:
		return items[0], nil
	default:
		return gseq{items}, nil
	}
}

func (p *gparser) unit() (gnode, error) {
	t, _ := p.peek()
	var n gnode
	switch t.kind {
	case gTerm:
		p.pos++
		n = gterm{t.text}
	case gOpen:
		p.pos++
		inner, err := p.choice()
		if err != nil {
			return nil, err
		}
		if c, ok := p.peek(); !ok || c.kind != gClose {
			return nil, fmt.Errorf("%w: missing ']'", ErrSyntax)
		}
		p.pos++
		n = inner
	default:
		return nil, fmt.Errorf("%w: unexpected operator at position %d", ErrSyntax, p.pos)
	}
	for {
		m, ok := p.peek()
		if !ok || m.kind != gMult {
			break
		}
		p.pos++
		if m.comma {
			// "#{m,n}" is a comma separated list with explicit bounds
			if c, ok := p.peek(); ok && c.kind == gMult && c.braces {
				p.pos++
				m.min, m.max, m.unbounded = c.min, c.max, c.unbounded
			}
		}
		n = grepeat{item: n, min: m.min, max: m.max, required: m.required, unbounded: m.unbounded}
	}
	return n, nil
}

// enumeration

func (t gterm) expand() [][]string {
	return [][]string{{t.text}}
}

func (s gseq) expand() [][]string {
	out := [][]string{{}}
	for _, it := range s.items {
		out = product(out, it.expand())
	}
	return out
}

func (c gchoice) expand() [][]string {
	var out [][]string
	for _, it := range c.items {
		out = appendCapped(out, it.expand()...)
	}
	return out
}

func (a gany) expand() [][]string {
	return orderings(a.items, false)
}

func (a gall) expand() [][]string {
	return orderings(a.items, true)
}

func (r grepeat) expand() [][]string {
	item := r.item.expand()
	var out [][]string
	cur := [][]string{{}}
	for n := 0; n <= r.max; n++ {
		if n > 0 {
			cur = product(cur, item)
		}
		if n < r.min {
			continue
		}
		for _, seq := range cur {
			if r.required && len(seq) == 0 {
				continue
			}
			out = appendCapped(out, seq)
		}
	}
	return out
}

func product(left, right [][]string) [][]string {
	out := make([][]string, 0, min(len(left)*len(right), maxAlternatives))
	for _, l := range left {
		for _, r := range right {
			if len(out) >= maxAlternatives {
				return out
			}
			seq := make([]string, 0, len(l)+len(r))
			seq = append(seq, l...)
			seq = append(seq, r...)
			out = append(out, seq)
		}
	}
	return out
}

func appendCapped(out [][]string, seqs ...[]string) [][]string {
	for _, s := range seqs {
		if len(out) >= maxAlternatives {
			break
		}
		out = append(out, s)
	}
	return out
}

// orderings enumerates items in every order: all of them when all is set,
// otherwise every non-empty subset. Generation stops at maxAlternatives.
func orderings(items []gnode, all bool) [][]string {
	exp := make([][][]string, len(items))
	for i, it := range items {
		exp[i] = it.expand()
	}

	var out [][]string
	used := make([]bool, len(items))
	var walk func(prefix [][]string, depth int)
	walk = func(prefix [][]string, depth int) {
		if depth > 0 && (!all || depth == len(items)) {
			out = appendCapped(out, prefix...)
		}
		for i := range items {
			if len(out) >= maxAlternatives {
				return
			}
			if used[i] {
				continue
			}
			used[i] = true
			walk(product(prefix, exp[i]), depth+1)
			used[i] = false
		}
	}
	walk([][]string{{}}, 0)
	return out
}
