package identity

import (
	"sort"
	"strings"

	"mediamerge/internal/medium"
)

// Source tags which identifier system produced a signature.
type Source string

const (
	// SourceChEBI marks signatures derived from a chemical-ontology reference.
	SourceChEBI Source = "chebi"
	// SourceName marks signatures derived from a normalized free-text name.
	SourceName Source = "name"
)

// Signature is the identity of one ingredient: an identifier plus the system
// it came from. Two ingredients are the same ingredient exactly when their
// signatures are equal.
type Signature struct {
	Source     Source `json:"source"`
	Identifier string `json:"identifier"`
}

// Less orders signatures by (source, identifier) for canonical serialization.
func (s Signature) Less(other Signature) bool {
	if s.Source != other.Source {
		return s.Source < other.Source
	}
	return s.Identifier < other.Identifier
}

// ExtractSignature derives the identity signature for one ingredient.
// Ontology identity wins over name identity. The second return value is false
// when the ingredient carries neither a usable ontology reference nor a name;
// such ingredients contribute nothing to recipe identity.
func ExtractSignature(ing medium.Ingredient) (Signature, bool) {
	if !ing.Term.Empty() {
		return Signature{Source: SourceChEBI, Identifier: strings.TrimSpace(ing.Term.ID)}, true
	}
	name := NormalizeName(ing.PreferredTerm)
	if name == "" {
		return Signature{}, false
	}
	return Signature{Source: SourceName, Identifier: name}, true
}

// Signatures collects the deduplicated signature set for a whole recipe,
// covering top-level ingredients and every solution composition, sorted by
// (source, identifier). Concentrations and other non-identity attributes are
// ignored.
func Signatures(recipe *medium.Recipe) []Signature {
	if recipe == nil {
		return nil
	}
	seen := make(map[Signature]struct{})
	collect := func(ings []medium.Ingredient) {
		for _, ing := range ings {
			sig, ok := ExtractSignature(ing)
			if !ok {
				continue
			}
			seen[sig] = struct{}{}
		}
	}
	collect(recipe.Ingredients)
	for _, sol := range recipe.Solutions {
		collect(sol.Composition)
	}

	sigs := make([]Signature, 0, len(seen))
	for sig := range seen {
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Less(sigs[j]) })
	return sigs
}
