package medium

import (
	"strings"
	"time"
)

// OntologyRef links an ingredient to a chemical-ontology entry. The ID follows
// "<PREFIX>:<numeric-id>" (e.g. "CHEBI:26710") and is treated as an opaque
// identity token; no prefix validation happens in this repository.
type OntologyRef struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Empty reports whether the reference carries no usable identifier.
func (r *OntologyRef) Empty() bool {
	return r == nil || strings.TrimSpace(r.ID) == ""
}

// Concentration records how much of an ingredient a recipe calls for. It is
// descriptive metadata only and never participates in recipe identity.
type Concentration struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Ingredient is a named component of a recipe or of a solution composition.
type Ingredient struct {
	PreferredTerm string         `json:"preferred_term"`
	Term          *OntologyRef   `json:"term,omitempty"`
	Concentration *Concentration `json:"concentration,omitempty"`
}

// Solution is a named sub-mixture with its own ingredient composition.
type Solution struct {
	PreferredTerm string       `json:"preferred_term"`
	Composition   []Ingredient `json:"composition,omitempty"`
}

// Provenance identifies one source record that contributed to a recipe.
type Provenance struct {
	Source     string `json:"source"`
	SourceFile string `json:"source_file,omitempty"`
	RecordID   string `json:"record_id,omitempty"`
}

// CurationEvent is one entry in a recipe's curation history.
type CurationEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
	Note      string    `json:"note"`
}

// Recipe is a normalized growth-medium record. The dedupe pipeline mutates the
// merged copy in place; imported records are treated as read-only inputs.
type Recipe struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Solutions   []Solution   `json:"solutions,omitempty"`

	Source     string `json:"source"`
	SourceFile string `json:"source_file,omitempty"`

	Synonyms        []string        `json:"synonyms,omitempty"`
	Provenance      []Provenance    `json:"provenance,omitempty"`
	CurationHistory []CurationEvent `json:"curation_history,omitempty"`
	QualityFlags    []string        `json:"data_quality_flags,omitempty"`
}

// Label returns a human-readable handle for logs and errors.
func (r *Recipe) Label() string {
	if r == nil {
		return "<nil recipe>"
	}
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	if id := strings.TrimSpace(r.ID); id != "" {
		return id
	}
	return "<unnamed recipe>"
}

// ProvenanceEntries returns the recipe's provenance list, synthesizing a
// single entry from the source fields when the list is empty. Imported records
// carry one implicit entry; merged records carry the union.
func (r *Recipe) ProvenanceEntries() []Provenance {
	if len(r.Provenance) > 0 {
		return r.Provenance
	}
	if strings.TrimSpace(r.Source) == "" && strings.TrimSpace(r.SourceFile) == "" {
		return nil
	}
	return []Provenance{{Source: r.Source, SourceFile: r.SourceFile, RecordID: r.ID}}
}

// Clone returns a deep copy of the recipe. The merger anchors merged output on
// a clone so cluster members are never mutated.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	out := *r
	out.Ingredients = cloneIngredients(r.Ingredients)
	out.Solutions = make([]Solution, len(r.Solutions))
	for i, sol := range r.Solutions {
		out.Solutions[i] = Solution{
			PreferredTerm: sol.PreferredTerm,
			Composition:   cloneIngredients(sol.Composition),
		}
	}
	out.Synonyms = append([]string(nil), r.Synonyms...)
	out.Provenance = append([]Provenance(nil), r.Provenance...)
	out.CurationHistory = append([]CurationEvent(nil), r.CurationHistory...)
	out.QualityFlags = append([]string(nil), r.QualityFlags...)
	return &out
}

func cloneIngredients(src []Ingredient) []Ingredient {
	if src == nil {
		return nil
	}
	out := make([]Ingredient, len(src))
	for i, ing := range src {
		out[i] = ing
		if ing.Term != nil {
			term := *ing.Term
			out[i].Term = &term
		}
		if ing.Concentration != nil {
			conc := *ing.Concentration
			out[i].Concentration = &conc
		}
	}
	return out
}
