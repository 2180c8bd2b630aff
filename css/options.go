package css

import (
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Option is a candidate value a user may pick for one slot of a value.
type Option struct {
	Value   string // concrete value to put into the slot
	Token   string // canonical token the option stands for
	Current bool   // value currently occupying the slot
}

// OptionTable holds options for every slot of a value.
type OptionTable [][]Option

// Slots returns number of slots in the table.
func (t OptionTable) Slots() int {
	return len(t)
}

// SlotOptions builds candidate values for slot of raw value under syntax.
// Only alternatives compatible with the other occupied slots contribute,
// options are deduplicated by canonical token, references to tokens unknown
// to the catalog (or without default value) are skipped and the value
// currently at slot is always present. Empty value results in no options.
func (g *Grammar) SlotOptions(raw string, slot int, syntax string) []Option {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	set, err := g.SyntaxSet(syntax)
	if err != nil {
		g.log.Debug("Unable to build syntax set", zap.String("syntax", syntax), zap.Error(err))
		return nil
	}
	if set.Len() == 0 || slot < 0 {
		return nil
	}
	return g.slotOptions(set, Split(raw), slot)
}

// OptionTable builds options for every slot reachable by syntax or occupied
// by raw value. Empty syntax or empty value results in empty table.
func (g *Grammar) OptionTable(raw, syntax string) OptionTable {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	set, err := g.SyntaxSet(syntax)
	if err != nil {
		g.log.Debug("Unable to build syntax set", zap.String("syntax", syntax), zap.Error(err))
		return nil
	}
	if set.Len() == 0 {
		return nil
	}
	c := Split(raw)
	slots := c.Len()
	for _, a := range set.Alternatives {
		slots = max(slots, len(a.Terms))
	}
	table := make(OptionTable, slots)
	for i := range slots {
		table[i] = g.slotOptions(set, c, i)
	}
	return table
}

func (g *Grammar) slotOptions(set SyntaxSet, c Components, slot int) []Option {
	cand := make([][]string, c.Len())
	for i, p := range c.Parts {
		cand[i] = Candidates(p)
	}

	var (
		opts []Option
		seen = make(map[string]bool)
	)
	for _, a := range set.Alternatives {
		if slot >= len(a.Terms) || !compatible(a, c, cand, slot) {
			continue
		}
		t := a.Terms[slot]
		if seen[t.Token] {
			continue
		}
		opt, ok := g.option(t)
		if !ok {
			continue
		}
		seen[t.Token] = true
		opts = append(opts, opt)
	}

	if slot >= c.Len() {
		return opts
	}
	current := c.Parts[slot]
	for i := range opts {
		if slices.Contains(cand[slot], opts[i].Token) {
			opts[i].Value, opts[i].Current = current, true
			return opts
		}
	}
	return append(opts, Option{Value: current, Token: TokenOf(current), Current: true})
}

// compatible reports whether every occupied slot other than slot fits the
// alternative.
func compatible(a Alternative, c Components, cand [][]string, slot int) bool {
	for j, part := range c.Parts {
		if j == slot {
			continue
		}
		if j >= len(a.Terms) || !termAccepts(a.Terms[j], part, cand[j]) {
			return false
		}
	}
	return true
}

func (g *Grammar) option(t Term) (Option, bool) {
	if !t.IsReference() {
		return Option{Value: t.Token, Token: t.Token}, true
	}
	def, ok := g.tokens.Token(t.Token)
	if !ok {
		return Option{}, false
	}
	v, ok := def.DefaultValue()
	if !ok {
		return Option{}, false
	}
	return Option{Value: v, Token: t.Token}, true
}
