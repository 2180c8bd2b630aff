package css

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// classifier order is significant: color functions are syntactically
// functions too, so color must be tried before function.
var classifiers = []struct {
	typ   ValueType
	match func(raw string, lx lexeme) bool
}{
	{ValueTypeLink, isLink},
	{ValueTypeDimension, isDimension},
	{ValueTypeKeyword, isKeyword},
	{ValueTypeColor, isColor},
	{ValueTypeFunction, isFunction},
	{ValueTypeInteger, isInteger},
	{ValueTypeNumber, isNumber},
}

var linkPrefixes = []string{"http://", "https://", "//", "mailto:", "tel:", "data:"}

func isLink(raw string, lx lexeme) bool {
	for _, p := range linkPrefixes {
		if strings.HasPrefix(lower(raw), p) {
			return true
		}
	}
	return lx.single() && (lx.kind == css.URLToken || lx.functionName() == "url")
}

func isDimension(_ string, lx lexeme) bool {
	return lx.single() && (lx.kind == css.DimensionToken || lx.kind == css.PercentageToken)
}

func isKeyword(_ string, lx lexeme) bool {
	return lx.single() && lx.kind == css.IdentToken
}

func isColor(_ string, lx lexeme) bool {
	if !lx.single() {
		return false
	}
	switch lx.kind {
	case css.HashToken:
		return isHexColor(lx.data)
	case css.FunctionToken:
		return colorFunctions[lx.functionName()]
	}
	return false
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func isFunction(_ string, lx lexeme) bool {
	return lx.single() && lx.kind == css.FunctionToken
}

func isInteger(_ string, lx lexeme) bool {
	if !lx.single() || lx.kind != css.NumberToken {
		return false
	}
	_, err := strconv.ParseInt(lx.data, 10, 64)
	return err == nil
}

func isNumber(_ string, lx lexeme) bool {
	return lx.single() && lx.kind == css.NumberToken
}

// Classify returns category of a single raw value component.
func Classify(raw string) ValueType {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ValueTypeUnknown
	}
	lx := lex(raw)
	for _, c := range classifiers {
		if c.match(raw, lx) {
			return c.typ
		}
	}
	return ValueTypeUnknown
}

// TokenOf converts raw value component into its token form, e.g. "12px"
// becomes "<length>", "rgb(0,0,0)" becomes "<color>", "auto" stays "auto" and
// "calc(1px + 2px)" becomes "calc()".
func TokenOf(raw string) string {
	c := Candidates(raw)
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Candidates returns every token form raw component satisfies, the primary
// one first. An integer satisfies <number> as well, zero is also a valid
// <length>, named colors and color functions satisfy <color> in addition to
// their literal form.
func Candidates(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	lx := lex(raw)

	var typ ValueType
	for _, c := range classifiers {
		if c.match(raw, lx) {
			typ = c.typ
			break
		}
	}

	switch typ {
	case ValueTypeLink:
		return []string{TokenURL}
	case ValueTypeDimension:
		if lx.kind == css.PercentageToken {
			return []string{TokenPercentage}
		}
		_, unit := parseDimension(lx.data)
		if t, ok := unitTokens[unit]; ok {
			return []string{t}
		}
		return []string{TokenDimension}
	case ValueTypeKeyword:
		kw := lower(lx.data)
		out := []string{kw}
		if namedColors[kw] {
			out = append(out, TokenColor)
		}
		if !cssWideKeywords[kw] {
			out = append(out, TokenIdent)
		}
		return out
	case ValueTypeColor:
		if name := lx.functionName(); name != "" {
			return []string{TokenColor, name + "()"}
		}
		return []string{TokenColor}
	case ValueTypeFunction:
		return []string{lx.functionName() + "()"}
	case ValueTypeInteger:
		if v, _ := strconv.ParseFloat(lx.data, 64); v == 0 {
			return []string{TokenInteger, TokenNumber, TokenLength}
		}
		return []string{TokenInteger, TokenNumber}
	case ValueTypeNumber:
		if v, _ := strconv.ParseFloat(lx.data, 64); v == 0 {
			return []string{TokenNumber, TokenLength}
		}
		return []string{TokenNumber}
	}

	if lx.single() && lx.kind == css.StringToken {
		return []string{TokenString}
	}
	return []string{raw}
}

// Numeric returns numeric part of a dimension, integer or number component.
func Numeric(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	lx := lex(raw)
	if !lx.single() {
		return 0, false
	}
	switch lx.kind {
	case css.NumberToken:
		v, err := strconv.ParseFloat(lx.data, 64)
		return v, err == nil
	case css.PercentageToken:
		v, err := strconv.ParseFloat(strings.TrimSuffix(lx.data, "%"), 64)
		return v, err == nil
	case css.DimensionToken:
		v, unit := parseDimension(lx.data)
		return v, unit != ""
	}
	return 0, false
}

// URL returns target of a link component.
func URL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if Classify(raw) != ValueTypeLink {
		return "", false
	}
	lx := lex(raw)
	if lx.single() && (lx.kind == css.URLToken || lx.functionName() == "url") {
		s := strings.TrimSpace(raw[strings.IndexByte(raw, '(')+1:])
		s = strings.TrimSuffix(s, ")")
		return unquote(s), true
	}
	return raw, true
}
