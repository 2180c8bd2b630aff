package css

import (
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Components is a raw value split into top-level parts. Separators between
// parts are kept so the value can be rebuilt after a part is replaced.
type Components struct {
	Parts []string
	seps  []string // seps[i] sits between Parts[i] and Parts[i+1]
}

// Split breaks raw value into space, slash and comma separated top-level
// components. Anything nested inside function parentheses stays within its
// component.
func Split(raw string) Components {
	var (
		c       Components
		cur     strings.Builder
		pending string
		depth   int
	)

	flush := func() {
		part := strings.TrimSpace(cur.String())
		cur.Reset()
		if part == "" {
			return
		}
		if len(c.Parts) > 0 {
			if pending == "" {
				pending = " "
			}
			c.seps = append(c.seps, pending)
		}
		c.Parts = append(c.Parts, part)
		pending = ""
	}

	l := css.NewLexer(parse.NewInputString(raw))
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if depth == 0 {
			switch {
			case tt == css.WhitespaceToken:
				flush()
				if pending == "" && len(c.Parts) > 0 {
					pending = " "
				}
				continue
			case tt == css.CommaToken, tt == css.DelimToken && string(data) == "/":
				flush()
				if len(c.Parts) > 0 {
					pending = string(data)
				}
				continue
			}
		}
		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth > 0 {
				depth--
			}
		}
		cur.Write(data)
	}
	flush()
	return c
}

// Len returns number of components.
func (c Components) Len() int {
	return len(c.Parts)
}

// String rebuilds the value using recorded separators.
func (c Components) String() string {
	var sb strings.Builder
	for i, p := range c.Parts {
		if i > 0 {
			switch c.seps[i-1] {
			case ",":
				sb.WriteString(", ")
			case "/":
				sb.WriteString(" / ")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// Replace returns components with part at slot replaced by v. Slot equal to
// Len appends, empty v removes the part.
func (c Components) Replace(slot int, v string) Components {
	out := Components{
		Parts: append([]string(nil), c.Parts...),
		seps:  append([]string(nil), c.seps...),
	}
	switch {
	case slot < 0 || slot > len(out.Parts):
		return out
	case v == "":
		if slot == len(out.Parts) {
			return out
		}
		out.Parts = append(out.Parts[:slot], out.Parts[slot+1:]...)
		if len(out.seps) > 0 {
			i := min(slot, len(out.seps)-1)
			out.seps = append(out.seps[:i], out.seps[i+1:]...)
		}
	case slot == len(out.Parts):
		if len(out.Parts) > 0 {
			out.seps = append(out.seps, " ")
		}
		out.Parts = append(out.Parts, v)
	default:
		out.Parts[slot] = v
	}
	return out
}

// lexeme summarizes a single component for classification.
type lexeme struct {
	kind  css.TokenType
	data  string // data of the first significant token
	items int    // number of top-level items in the component
	open  int    // unbalanced parentheses left at the end
}

func lex(component string) lexeme {
	var (
		lx    lexeme
		depth int
	)
	l := css.NewLexer(parse.NewInputString(component))
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		if depth == 0 {
			if tt == css.RightParenthesisToken {
				lx.items++
				continue
			}
			if lx.items == 0 {
				lx.kind, lx.data = tt, string(data)
			}
			lx.items++
		}
		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		}
	}
	lx.open = depth
	return lx
}

// single reports whether component consists of exactly one well formed item.
func (lx lexeme) single() bool {
	return lx.items == 1 && lx.open == 0
}

// functionName returns lower-cased function name for function tokens.
func (lx lexeme) functionName() string {
	if lx.kind != css.FunctionToken {
		return ""
	}
	return lower(strings.TrimSuffix(lx.data, "("))
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' ||
			((r == 'e' || r == 'E') && i > 0 && i+1 < len(s) && (unicode.IsDigit(rune(s[i+1])) || s[i+1] == '-' || s[i+1] == '+')) {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}
	num, err := strconv.ParseFloat(s[:numEnd], 64)
	if err != nil {
		return 0, ""
	}
	return num, lower(s[numEnd:])
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
