package css

import (
	"math"
	"strconv"
	"strings"

	"blox/catalog"
)

// IsReference reports whether grammar term is a "<name>" token reference.
func IsReference(term string) bool {
	term = stripMultipliers(strings.TrimSpace(term))
	return len(term) > 2 && term[0] == '<' && term[len(term)-1] == '>'
}

// Canonical strips range and qualifier information from a grammar token so
// tokens can be compared for type equality:
//
//	<length [0,10]>  -> <length>
//	<length>#        -> <length>
//	<integer>{1,4}   -> <integer>
//	rgb( <number>#{3} ) -> rgb()
//	AUTO             -> auto
//
// Canonical is idempotent.
func Canonical(token string) string {
	s := stripMultipliers(strings.TrimSpace(token))
	if s == "" {
		return ""
	}
	if s[0] == '<' {
		end := strings.LastIndexByte(s, '>')
		if end < 0 {
			end = len(s)
		}
		inner := strings.TrimSpace(s[1:end])
		if i := strings.IndexAny(inner, " \t["); i >= 0 {
			inner = strings.TrimSpace(inner[:i])
		}
		return "<" + inner + ">"
	}
	if i := strings.IndexByte(s, '('); i > 0 {
		return lower(s[:i]) + "()"
	}
	return lower(s)
}

// stripMultipliers removes trailing grammar multipliers: * + ? # ! {m,n}.
func stripMultipliers(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		switch {
		case strings.IndexByte("*+?#!", last) >= 0 && len(s) > 1:
			s = strings.TrimSpace(s[:len(s)-1])
		case last == '}':
			open := strings.LastIndexByte(s, '{')
			if open <= 0 {
				return s
			}
			s = strings.TrimSpace(s[:open])
		default:
			return s
		}
	}
	return s
}

// ParseRange extracts declared numeric range from a token such as
// "<length [0,∞]>". Infinity may be written as ∞, inf or infinity with
// optional sign.
func ParseRange(token string) (catalog.Range, bool) {
	s := stripMultipliers(strings.TrimSpace(token))
	if len(s) < 2 || s[0] != '<' {
		return catalog.Range{}, false
	}
	open := strings.IndexByte(s, '[')
	closing := strings.LastIndexByte(s, ']')
	if open < 0 || closing < open {
		return catalog.Range{}, false
	}
	lo, hi, ok := strings.Cut(s[open+1:closing], ",")
	if !ok {
		return catalog.Range{}, false
	}
	minV, ok1 := parseBound(lo)
	maxV, ok2 := parseBound(hi)
	if !ok1 || !ok2 || minV > maxV {
		return catalog.Range{}, false
	}
	return catalog.Range{Min: minV, Max: maxV}, true
}

func parseBound(s string) (float64, bool) {
	s = lower(s)
	sign := 1.0
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = -1, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	switch s {
	case "∞", "inf", "infinity":
		return sign * math.Inf(1), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return sign * v, true
}

// WithRange returns token reference carrying range r. Existing range of the
// token is replaced, multipliers are not preserved.
func WithRange(token string, r catalog.Range) string {
	c := Canonical(token)
	if !IsReference(c) {
		return token
	}
	return c[:len(c)-1] + " [" + formatBound(r.Min) + "," + formatBound(r.Max) + "]>"
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
