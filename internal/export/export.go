// Package export writes the consolidated corpus for downstream consumers
// (media browsers, knowledge-graph builders). Output is a single JSON document
// carrying every merged recipe with its audit record, so exporters downstream
// never lose track of which sources contributed.
package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"mediamerge/internal/corpus"
	"mediamerge/internal/dedupe"
	"mediamerge/internal/medium"
)

// Document is the exported corpus envelope.
type Document struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Recipes     []RecipeExport `json:"recipes"`
}

// RecipeExport pairs one consolidated recipe with its merge audit.
type RecipeExport struct {
	Recipe *medium.Recipe    `json:"recipe"`
	Audit  dedupe.MergeAudit `json:"audit"`
}

// Write encodes the merged entries as an indented JSON document.
func Write(w io.Writer, entries []corpus.MergedEntry) error {
	doc := Document{
		GeneratedAt: time.Now().UTC(),
		Recipes:     make([]RecipeExport, 0, len(entries)),
	}
	for _, entry := range entries {
		doc.Recipes = append(doc.Recipes, RecipeExport{Recipe: entry.Recipe, Audit: entry.Audit})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// WriteFile writes the export document to path, creating or truncating it.
func WriteFile(path string, entries []corpus.MergedEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Write(file, entries); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}
