package css

import (
	"strings"

	"go.uber.org/zap"

	"blox/catalog"
	"blox/common"
)

// Grammar expands, enumerates and matches value grammars using token
// definitions from the catalog. It keeps no state besides the lookups and is
// safe for concurrent use.
type Grammar struct {
	tokens catalog.TokenLookup
	log    *zap.Logger
}

// NewGrammar creates grammar engine over token catalog.
func NewGrammar(tokens catalog.TokenLookup, log *zap.Logger) *Grammar {
	if log == nil {
		log = zap.NewNop()
	}
	return &Grammar{tokens: tokens, log: log.Named("grammar")}
}

// Term is a single position of a syntax alternative.
type Term struct {
	Text  string         // term as it appears in expanded grammar, e.g. "<length [0,∞]>"
	Token string         // canonical form used for comparison
	Range *catalog.Range // numeric constraint, if any
}

// IsReference reports whether term refers to a token rather than a literal.
func (t Term) IsReference() bool {
	return IsReference(t.Token)
}

func newTerm(text string) Term {
	t := Term{Text: text, Token: Canonical(text)}
	if r, ok := ParseRange(text); ok {
		t.Range = &r
	}
	return t
}

// Alternative is one concrete token sequence a grammar accepts.
type Alternative struct {
	Terms []Term
}

// String returns normalized form: canonical tokens joined by single spaces.
func (a Alternative) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.Token
	}
	return strings.Join(parts, " ")
}

// SyntaxSet is the set of concrete normalized alternatives of a grammar in
// declaration order. Enumeration is capped, Truncated is set when some
// alternatives were left out.
type SyntaxSet struct {
	Alternatives []Alternative
	Truncated    bool

	root gnode
}

// Len returns number of alternatives.
func (s SyntaxSet) Len() int {
	return len(s.Alternatives)
}

// Strings returns normalized alternatives.
func (s SyntaxSet) Strings() []string {
	out := make([]string, len(s.Alternatives))
	for i, a := range s.Alternatives {
		out[i] = a.String()
	}
	return out
}

// Contains reports whether normalized alternative is a member of the set.
func (s SyntaxSet) Contains(normalized string) bool {
	normalized = strings.Join(strings.Fields(normalized), " ")
	for _, a := range s.Alternatives {
		if a.String() == normalized {
			return true
		}
	}
	return false
}

// Matches reports whether raw value satisfies some alternative. Every
// top-level component must carry the token of the corresponding term and
// numeric components must fall into the range of ranged terms. Sets built by
// Grammar match against the grammar itself, alternatives left out by
// truncation are still accepted.
func (s SyntaxSet) Matches(raw string) bool {
	if s.root != nil {
		return matchTree(s.root, Split(raw))
	}
	c := Split(raw)
	if c.Len() == 0 {
		return false
	}
	cand := make([][]string, c.Len())
	for i, p := range c.Parts {
		cand[i] = Candidates(p)
	}
	for _, a := range s.Alternatives {
		if len(a.Terms) != c.Len() {
			continue
		}
		ok := true
		for i, t := range a.Terms {
			if !termAccepts(t, c.Parts[i], cand[i]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func termAccepts(t Term, part string, candidates []string) bool {
	found := false
	for _, c := range candidates {
		if c == t.Token {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if t.Range != nil {
		if v, ok := Numeric(part); ok && !t.Range.Contains(v) {
			return false
		}
	}
	return true
}

// Expand recursively replaces token references in syntax with their
// grammar from the token catalog. Range of an outer reference is propagated
// into every inner reference which does not declare its own. Primitive
// tokens, unknown tokens and tokens already being expanded are left as is.
func (g *Grammar) Expand(syntax string) string {
	return g.expand(syntax, map[string]bool{}, nil)
}

func (g *Grammar) expand(syntax string, active map[string]bool, outer *catalog.Range) string {
	var sb strings.Builder
	for i := 0; i < len(syntax); {
		if syntax[i] != '<' {
			sb.WriteByte(syntax[i])
			i++
			continue
		}
		end := strings.IndexByte(syntax[i:], '>')
		if end < 0 {
			sb.WriteString(syntax[i:])
			break
		}
		ref := syntax[i : i+end+1]
		i += end + 1

		canon := Canonical(ref)
		rng := outer
		if r, ok := ParseRange(ref); ok {
			rng = &r
		}

		def, known := g.tokens.Token(canon)
		if !known || primitiveTokens[canon] || active[canon] || strings.TrimSpace(def.Syntax) == "" ||
			Canonical(def.Syntax) == canon {
			if active[canon] {
				g.log.Debug("Token cycle, leaving reference unexpanded", zap.String("token", canon))
			}
			if rng != nil {
				sb.WriteString(WithRange(ref, *rng))
			} else {
				sb.WriteString(ref)
			}
			continue
		}

		inner := rng
		if r, ok := ParseRange(ref); ok {
			inner = &r
		} else if def.Range != nil {
			r := *def.Range
			inner = &r
		}
		active[canon] = true
		sb.WriteString("[ ")
		sb.WriteString(g.expand(def.Syntax, active, inner))
		sb.WriteString(" ]")
		delete(active, canon)
	}
	return sb.String()
}

// SyntaxSet expands syntax and enumerates its concrete alternatives.
// Duplicate and empty alternatives are dropped. Empty syntax produces empty
// set.
func (g *Grammar) SyntaxSet(syntax string) (SyntaxSet, error) {
	tree, err := g.compile(syntax)
	if err != nil {
		return SyntaxSet{}, err
	}
	if tree == nil {
		return SyntaxSet{}, nil
	}
	var (
		set  = SyntaxSet{root: tree}
		seen = make(map[string]bool)
	)
	seqs := tree.expand()
	if len(seqs) >= maxAlternatives {
		set.Truncated = true
		g.log.Debug("Syntax set truncated", zap.String("syntax", syntax), zap.Int("limit", maxAlternatives))
	}
	for _, seq := range seqs {
		if len(seq) == 0 {
			continue
		}
		alt := Alternative{Terms: make([]Term, len(seq))}
		for i, text := range seq {
			alt.Terms[i] = newTerm(text)
		}
		// ranged and unranged variants of the same token are different alternatives
		key := strings.Join(strings.Fields(strings.Join(seq, " ")), " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		set.Alternatives = append(set.Alternatives, alt)
	}
	return set, nil
}

// Validate checks raw value against syntax. Empty value is always valid and
// means the property is cleared. Value is returned with components
// normalized.
func (g *Grammar) Validate(raw, syntax string) common.Validation[string] {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return common.Valid("")
	}
	if IsWideKeyword(raw) {
		return common.Valid(lower(raw))
	}
	tree, err := g.compile(syntax)
	if err != nil {
		return common.Invalid[string]("syntax %q: %v", syntax, err)
	}
	if !matchTree(tree, Split(raw)) {
		return common.Invalid[string]("value %q does not match %q", raw, syntax)
	}
	return common.Valid(Split(raw).String())
}

// ValidAtSlot reports whether substituting candidate at slot of raw value
// yields a value accepted by syntax. Slot equal to number of components
// appends candidate.
func (g *Grammar) ValidAtSlot(raw string, slot int, candidate, syntax string) bool {
	c := Split(raw)
	if slot < 0 || slot > c.Len() {
		return false
	}
	tree, err := g.compile(syntax)
	if err != nil {
		g.log.Debug("Unable to parse syntax", zap.String("syntax", syntax), zap.Error(err))
		return false
	}
	return matchTree(tree, Split(c.Replace(slot, strings.TrimSpace(candidate)).String()))
}

// Match reports whether raw value is accepted by syntax. Unlike Validate it
// does not treat empty value and CSS-wide keywords specially.
func (g *Grammar) Match(raw, syntax string) bool {
	tree, err := g.compile(syntax)
	if err != nil {
		g.log.Debug("Unable to parse syntax", zap.String("syntax", syntax), zap.Error(err))
		return false
	}
	return matchTree(tree, Split(raw))
}
