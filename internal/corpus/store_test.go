package corpus

import (
	"context"
	"path/filepath"
	"testing"

	"mediamerge/internal/config"
	"mediamerge/internal/dedupe"
	"mediamerge/internal/identity"
	"mediamerge/internal/medium"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	return &config.Config{
		Paths: config.Paths{
			DataDir: base,
			LogDir:  filepath.Join(base, "logs"),
		},
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecipe(id, source string) *medium.Recipe {
	return &medium.Recipe{
		ID:     id,
		Name:   "LB " + id,
		Source: source,
		Ingredients: []medium.Ingredient{
			{PreferredTerm: "Tryptone", Concentration: &medium.Concentration{Value: 10, Unit: "g/L"}},
			{PreferredTerm: "NaCl"},
		},
	}
}

func TestUpsertAndListRecipes(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := sampleRecipe("m1", "mediadive")
	second := sampleRecipe("m2", "komodo")
	for _, recipe := range []*medium.Recipe{first, second} {
		if err := store.UpsertRecipe(ctx, recipe); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	recipes, err := store.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].ID != "m1" || recipes[1].ID != "m2" {
		t.Fatalf("import order not preserved: %v, %v", recipes[0].ID, recipes[1].ID)
	}
	if recipes[0].Ingredients[0].Concentration == nil {
		t.Fatal("payload roundtrip lost concentration")
	}

	// Re-import replaces in place.
	first.Description = "updated"
	if err := store.UpsertRecipe(ctx, first); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	count, err := store.RecipeCount(ctx, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("re-import should not duplicate, got %d records", count)
	}

	bySource, err := store.RecipeCount(ctx, "mediadive")
	if err != nil {
		t.Fatalf("count by source: %v", err)
	}
	if bySource != 1 {
		t.Fatalf("expected 1 mediadive record, got %d", bySource)
	}
}

func TestFingerprintLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	a := sampleRecipe("m1", "mediadive")
	b := sampleRecipe("m2", "komodo")
	for _, recipe := range []*medium.Recipe{a, b} {
		if err := store.UpsertRecipe(ctx, recipe); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	fp, err := identity.Fingerprint(a)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if err := store.SetFingerprint(ctx, "mediadive", "m1", &fp); err != nil {
		t.Fatalf("set fingerprint: %v", err)
	}
	if err := store.SetFingerprint(ctx, "komodo", "m2", &fp); err != nil {
		t.Fatalf("set fingerprint: %v", err)
	}

	clusters, err := store.DuplicateClusters(ctx)
	if err != nil {
		t.Fatalf("clusters: %v", err)
	}
	if len(clusters) != 1 || clusters[0].Members != 2 || clusters[0].Fingerprint != fp {
		t.Fatalf("unexpected clusters: %+v", clusters)
	}

	unknown, err := store.UnfingerprintableCount(ctx)
	if err != nil {
		t.Fatalf("unfingerprintable count: %v", err)
	}
	if unknown != 0 {
		t.Fatalf("expected 0 records without fingerprints, got %d", unknown)
	}

	if err := store.SetFingerprint(ctx, "mediadive", "missing", &fp); err == nil {
		t.Fatal("expected error for unknown record")
	}
}

func TestReplaceMergedRecipes(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	merger := dedupe.NewMerger([]string{"mediadive"})
	a := sampleRecipe("m1", "mediadive")
	b := sampleRecipe("m2", "komodo")
	fp, _ := identity.Fingerprint(a)
	merged, err := merger.Merge(dedupe.Cluster{Fingerprint: fp, Members: []*medium.Recipe{a, b}})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	if err := store.ReplaceMergedRecipes(ctx, []*dedupe.MergedRecipe{merged}); err != nil {
		t.Fatalf("replace merged: %v", err)
	}

	entries, err := store.ListMergedRecipes(ctx)
	if err != nil {
		t.Fatalf("list merged: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 merged recipe, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Audit.Fingerprint != fp || len(entry.Audit.MemberIDs) != 2 {
		t.Fatalf("audit roundtrip broken: %+v", entry.Audit)
	}
	if entry.Recipe.Name == "" {
		t.Fatal("merged recipe payload lost name")
	}

	// A second run replaces, never appends.
	if err := store.ReplaceMergedRecipes(ctx, []*dedupe.MergedRecipe{merged}); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	count, err := store.MergedCount(ctx)
	if err != nil {
		t.Fatalf("merged count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected replace semantics, got %d rows", count)
	}
}

func TestOpenLocksCorpus(t *testing.T) {
	cfg := testConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := Open(cfg); err == nil {
		t.Fatal("second open should fail while the corpus is locked")
	}

	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
	_ = reopened.Close()
}
