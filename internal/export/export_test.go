package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"mediamerge/internal/corpus"
	"mediamerge/internal/dedupe"
	"mediamerge/internal/medium"
)

func sampleEntries() []corpus.MergedEntry {
	return []corpus.MergedEntry{
		{
			Recipe: &medium.Recipe{ID: "m1", Name: "LB Medium", Source: "mediadive",
				Ingredients: []medium.Ingredient{{PreferredTerm: "Tryptone"}}},
			Audit: dedupe.MergeAudit{
				MergeID:     "merge-1",
				Fingerprint: "abc123",
				Sources:     []string{"mediadive:lb.json", "komodo:media.tsv"},
				MemberIDs:   []string{"m1", "k9"},
			},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleEntries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if len(doc.Recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(doc.Recipes))
	}
	if doc.Recipes[0].Recipe.Name != "LB Medium" {
		t.Fatalf("recipe not exported: %+v", doc.Recipes[0].Recipe)
	}
	if len(doc.Recipes[0].Audit.Sources) != 2 {
		t.Fatalf("audit not exported: %+v", doc.Recipes[0].Audit)
	}
	if doc.GeneratedAt.IsZero() {
		t.Fatal("generated_at missing")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := WriteFile(path, sampleEntries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "merge-1") {
		t.Fatal("export file missing audit data")
	}
}

func TestWriteEmptyCorpus(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"recipes": []`) {
		t.Fatalf("empty corpus should export an empty array: %s", buf.String())
	}
}
