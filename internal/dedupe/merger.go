package dedupe

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediamerge/internal/identity"
	"mediamerge/internal/medium"
)

// mergeActor is the curation-history actor recorded for automated merges.
const mergeActor = "mediamerge"

// Alternate records a cross-member disagreement on a non-identity ingredient
// attribute. The fingerprint intentionally excludes concentrations and
// formatting, so disagreements are preserved here instead of being silently
// overwritten.
type Alternate struct {
	Signature     identity.Signature    `json:"signature"`
	Source        string                `json:"source"`
	PreferredTerm string                `json:"preferred_term"`
	Concentration *medium.Concentration `json:"concentration,omitempty"`
}

// MergeAudit is the inspectable record of one merge.
type MergeAudit struct {
	MergeID     string      `json:"merge_id"`
	Fingerprint string      `json:"fingerprint"`
	Sources     []string    `json:"sources"`
	MemberIDs   []string    `json:"member_ids"`
	FieldNotes  []string    `json:"field_notes,omitempty"`
	Alternates  []Alternate `json:"alternates,omitempty"`
	MergedAt    time.Time   `json:"merged_at"`
}

// MergedRecipe is the consolidated output for one cluster.
type MergedRecipe struct {
	Recipe *medium.Recipe
	Audit  MergeAudit
}

// Merger consolidates duplicate clusters. Source priority breaks base-recipe
// ties: earlier sources win. Sources absent from the list rank after every
// listed source, ordered alphabetically so selection never depends on input
// order.
type Merger struct {
	priority map[string]int
}

// NewMerger builds a merger with the given source-priority order.
func NewMerger(sourcePriority []string) *Merger {
	priority := make(map[string]int, len(sourcePriority))
	for i, source := range sourcePriority {
		source = strings.ToLower(strings.TrimSpace(source))
		if source == "" {
			continue
		}
		if _, exists := priority[source]; !exists {
			priority[source] = i
		}
	}
	return &Merger{priority: priority}
}

// Merge consolidates one cluster into a single recipe plus its audit trail.
// An empty cluster fails with *MergeInputError. Singleton clusters pass
// through as trivial merges: the audit lists the lone contributor and no
// curation event is appended.
func (m *Merger) Merge(cluster Cluster) (*MergedRecipe, error) {
	if len(cluster.Members) == 0 {
		return nil, &MergeInputError{Reason: "cluster has no members"}
	}
	for _, member := range cluster.Members {
		if member == nil {
			return nil, &MergeInputError{Reason: "cluster contains a nil recipe"}
		}
	}

	ranked := m.rankMembers(cluster.Members)
	base := ranked[0]
	merged := base.Clone()

	audit := MergeAudit{
		MergeID:     uuid.NewString(),
		Fingerprint: cluster.Fingerprint,
		MergedAt:    time.Now().UTC(),
	}
	for _, member := range ranked {
		audit.Sources = appendUnique(audit.Sources, provenanceLabel(member))
		audit.MemberIDs = appendUnique(audit.MemberIDs, memberID(member))
	}

	m.mergeScalars(merged, ranked, &audit)
	m.mergeLists(merged, ranked)
	audit.Alternates = collectAlternates(base, ranked[1:])

	if len(cluster.Members) > 1 {
		note := fmt.Sprintf("Merged %d duplicate records from %s (fingerprint %s)",
			len(cluster.Members), strings.Join(audit.Sources, ", "), shortFingerprint(cluster.Fingerprint))
		merged.CurationHistory = append(merged.CurationHistory, medium.CurationEvent{
			Timestamp: audit.MergedAt,
			Actor:     mergeActor,
			Note:      note,
		})
		audit.FieldNotes = append(audit.FieldNotes, note)
	}

	return &MergedRecipe{Recipe: merged, Audit: audit}, nil
}

// rankMembers orders cluster members by merge preference: most populated
// optional fields first, then source priority, then source file name, then
// record ID. The order is total, so the base recipe never depends on
// accidental input ordering.
func (m *Merger) rankMembers(members []*medium.Recipe) []*medium.Recipe {
	ranked := append([]*medium.Recipe(nil), members...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		scoreA, scoreB := populationScore(a), populationScore(b)
		if scoreA != scoreB {
			return scoreA > scoreB
		}
		prioA, prioB := m.sourceRank(a.Source), m.sourceRank(b.Source)
		if prioA != prioB {
			return prioA < prioB
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		return a.ID < b.ID
	})
	return ranked
}

func (m *Merger) sourceRank(source string) int {
	if rank, ok := m.priority[strings.ToLower(strings.TrimSpace(source))]; ok {
		return rank
	}
	return len(m.priority)
}

// populationScore counts non-empty optional fields. All members of a cluster
// share the same ingredient-identity set by construction, so identity fields
// do not participate.
func populationScore(r *medium.Recipe) int {
	score := 0
	if strings.TrimSpace(r.Name) != "" {
		score++
	}
	if strings.TrimSpace(r.Description) != "" {
		score++
	}
	if len(r.Synonyms) > 0 {
		score++
	}
	if len(r.CurationHistory) > 0 {
		score++
	}
	if len(r.QualityFlags) > 0 {
		score++
	}
	return score
}

// mergeScalars fills empty scalar fields from the first ranked member that has
// them and surfaces cross-member name disagreements as synonyms.
func (m *Merger) mergeScalars(merged *medium.Recipe, ranked []*medium.Recipe, audit *MergeAudit) {
	for _, member := range ranked[1:] {
		if strings.TrimSpace(merged.Name) == "" && strings.TrimSpace(member.Name) != "" {
			merged.Name = member.Name
			audit.FieldNotes = append(audit.FieldNotes,
				fmt.Sprintf("name taken from %s", provenanceLabel(member)))
		}
		if strings.TrimSpace(merged.Description) == "" && strings.TrimSpace(member.Description) != "" {
			merged.Description = member.Description
			audit.FieldNotes = append(audit.FieldNotes,
				fmt.Sprintf("description taken from %s", provenanceLabel(member)))
		}
	}
	// Member names that disagree with the merged name survive as synonyms.
	for _, member := range ranked[1:] {
		name := strings.TrimSpace(member.Name)
		if name != "" && !strings.EqualFold(name, strings.TrimSpace(merged.Name)) {
			merged.Synonyms = appendUnique(merged.Synonyms, name)
		}
	}
}

// mergeLists unions provenance, synonyms, curation history, and quality flags
// across every member, value-deduplicated and append-only.
func (m *Merger) mergeLists(merged *medium.Recipe, ranked []*medium.Recipe) {
	merged.Provenance = merged.ProvenanceEntries()
	for _, member := range ranked[1:] {
		for _, entry := range member.ProvenanceEntries() {
			merged.Provenance = appendUniqueProvenance(merged.Provenance, entry)
		}
		for _, synonym := range member.Synonyms {
			merged.Synonyms = appendUnique(merged.Synonyms, synonym)
		}
		for _, event := range member.CurationHistory {
			merged.CurationHistory = appendUniqueEvent(merged.CurationHistory, event)
		}
		for _, flag := range member.QualityFlags {
			merged.QualityFlags = appendUnique(merged.QualityFlags, flag)
		}
	}
}

// collectAlternates compares every non-base member's ingredients against the
// base recipe by signature and records concentration or spelling differences.
func collectAlternates(base *medium.Recipe, others []*medium.Recipe) []Alternate {
	baseBySig := make(map[identity.Signature]medium.Ingredient)
	forEachIngredient(base, func(ing medium.Ingredient) {
		sig, ok := identity.ExtractSignature(ing)
		if !ok {
			return
		}
		if _, exists := baseBySig[sig]; !exists {
			baseBySig[sig] = ing
		}
	})

	var alternates []Alternate
	for _, member := range others {
		forEachIngredient(member, func(ing medium.Ingredient) {
			sig, ok := identity.ExtractSignature(ing)
			if !ok {
				return
			}
			baseIng, exists := baseBySig[sig]
			if !exists {
				return
			}
			if sameConcentration(baseIng.Concentration, ing.Concentration) &&
				strings.TrimSpace(baseIng.PreferredTerm) == strings.TrimSpace(ing.PreferredTerm) {
				return
			}
			alternates = append(alternates, Alternate{
				Signature:     sig,
				Source:        member.Source,
				PreferredTerm: ing.PreferredTerm,
				Concentration: ing.Concentration,
			})
		})
	}
	return alternates
}

func forEachIngredient(r *medium.Recipe, fn func(medium.Ingredient)) {
	for _, ing := range r.Ingredients {
		fn(ing)
	}
	for _, sol := range r.Solutions {
		for _, ing := range sol.Composition {
			fn(ing)
		}
	}
}

func sameConcentration(a, b *medium.Concentration) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Value == b.Value && a.Unit == b.Unit
}

// memberID qualifies a record ID with its source database. Record IDs are
// only unique within one source, so the bare ID cannot identify a member.
func memberID(r *medium.Recipe) string {
	source := strings.TrimSpace(r.Source)
	if source == "" {
		return r.ID
	}
	return source + "/" + r.ID
}

func provenanceLabel(r *medium.Recipe) string {
	source := strings.TrimSpace(r.Source)
	file := strings.TrimSpace(r.SourceFile)
	switch {
	case source != "" && file != "":
		return source + ":" + file
	case source != "":
		return source
	case file != "":
		return file
	default:
		return r.Label()
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

func appendUnique(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

func appendUniqueProvenance(list []medium.Provenance, entry medium.Provenance) []medium.Provenance {
	for _, existing := range list {
		if existing == entry {
			return list
		}
	}
	return append(list, entry)
}

func appendUniqueEvent(list []medium.CurationEvent, event medium.CurationEvent) []medium.CurationEvent {
	for _, existing := range list {
		if existing == event {
			return list
		}
	}
	return append(list, event)
}
