package identity

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// hydrationSuffix matches trailing hydration/solvation notation: a separator
// (middle dot, plain dot, or a literal x/×), a numeric count, and a solvent
// token, with optional spacing throughout. Examples: "·7H2O", ".2H2O",
// " x 6H2O", " x 7 H2O". An "x" separator must stand alone; a name whose
// last word merely ends in "x" (e.g. "borax 10h2o") keeps its core intact.
var hydrationSuffix = regexp.MustCompile(`(?:\s*[·.×]|(?:^|\s)x)\s*\d+\s*(?:h2o|d2o)\s*$`)

// NormalizeName canonicalizes a free-text ingredient name for identity
// comparison. Unicode compatibility folding runs first so typographic variants
// (subscript digits, fullwidth forms) collapse before the ASCII-level rules:
// lowercase, strip any hydration suffix, and collapse runs of whitespace to a
// single space. Distinct internal words stay distinct ("Na Cl" -> "na cl",
// never "nacl").
func NormalizeName(name string) string {
	s := norm.NFKC.String(name)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	s = hydrationSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
