package css

//go:generate go tool go-enum --names

// ValueType is the category of a single raw value component.
// ENUM(unknown, link, dimension, keyword, color, function, integer, number)
type ValueType int

// Primitive tokens are produced by classification of raw values. They are
// terminals of the grammar and never expanded through the token catalog.
const (
	TokenURL        = "<url>"
	TokenLength     = "<length>"
	TokenPercentage = "<percentage>"
	TokenAngle      = "<angle>"
	TokenTime       = "<time>"
	TokenFrequency  = "<frequency>"
	TokenResolution = "<resolution>"
	TokenFlex       = "<flex>"
	TokenDimension  = "<dimension>"
	TokenColor      = "<color>"
	TokenInteger    = "<integer>"
	TokenNumber     = "<number>"
	TokenString     = "<string>"
	TokenIdent      = "<custom-ident>"
)

var primitiveTokens = map[string]bool{
	TokenURL:        true,
	TokenLength:     true,
	TokenPercentage: true,
	TokenAngle:      true,
	TokenTime:       true,
	TokenFrequency:  true,
	TokenResolution: true,
	TokenFlex:       true,
	TokenDimension:  true,
	TokenColor:      true,
	TokenInteger:    true,
	TokenNumber:     true,
	TokenString:     true,
	TokenIdent:      true,
}

// IsPrimitive reports whether canonical token is a grammar terminal.
func IsPrimitive(token string) bool {
	return primitiveTokens[Canonical(token)]
}

// unitTokens maps lower-cased CSS units to dimension tokens.
var unitTokens = map[string]string{
	"%": TokenPercentage,

	"px": TokenLength, "em": TokenLength, "rem": TokenLength, "ex": TokenLength, "ch": TokenLength,
	"cap": TokenLength, "ic": TokenLength, "lh": TokenLength, "rlh": TokenLength,
	"vw": TokenLength, "vh": TokenLength, "vmin": TokenLength, "vmax": TokenLength,
	"svw": TokenLength, "svh": TokenLength, "lvw": TokenLength, "lvh": TokenLength, "dvw": TokenLength, "dvh": TokenLength,
	"vi": TokenLength, "vb": TokenLength, "cqw": TokenLength, "cqh": TokenLength, "cqi": TokenLength, "cqb": TokenLength,
	"cm": TokenLength, "mm": TokenLength, "q": TokenLength, "in": TokenLength, "pt": TokenLength, "pc": TokenLength,

	"deg": TokenAngle, "grad": TokenAngle, "rad": TokenAngle, "turn": TokenAngle,

	"s": TokenTime, "ms": TokenTime,

	"hz": TokenFrequency, "khz": TokenFrequency,

	"dpi": TokenResolution, "dpcm": TokenResolution, "dppx": TokenResolution, "x": TokenResolution,

	"fr": TokenFlex,
}

// cssWideKeywords are accepted for every property.
var cssWideKeywords = map[string]bool{
	"inherit":      true,
	"initial":      true,
	"unset":        true,
	"revert":       true,
	"revert-layer": true,
}

// IsWideKeyword reports whether raw value is a CSS-wide keyword.
func IsWideKeyword(raw string) bool {
	return cssWideKeywords[lower(raw)]
}

// colorFunctions lists function names producing colors.
var colorFunctions = map[string]bool{
	"rgb": true, "rgba": true, "hsl": true, "hsla": true, "hwb": true,
	"lab": true, "lch": true, "oklab": true, "oklch": true,
	"color": true, "color-mix": true, "light-dark": true,
}
