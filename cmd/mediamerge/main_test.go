package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupWorkspace(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	// Two sources describing the same medium with different ordering and
	// concentrations, plus one record with no extractable identity.
	writeFile(t, filepath.Join(base, "mediadive", "lb.json"), `[
		{"id": "md_1", "name": "LB Medium", "description": "Lysogeny broth", "ingredients": [
			{"preferred_term": "Glucose", "term": {"id": "CHEBI:17234"}, "concentration": {"value": 10, "unit": "g/L"}},
			{"preferred_term": "NaCl", "term": {"id": "CHEBI:26710"}, "concentration": {"value": 5, "unit": "g/L"}}
		]},
		{"id": "md_2", "name": "Empty medium", "ingredients": []}
	]`)
	writeFile(t, filepath.Join(base, "komodo", "media.tsv"),
		"recipe_id\trecipe_name\tingredient\tchebi_id\tvalue\tunit\n"+
			"k_9\tLuria Broth\tSodium chloride\tCHEBI:26710\t8\tg/L\n"+
			"k_9\tLuria Broth\tD-Glucose\tCHEBI:17234\t20\tg/L\n"+
			"k_10\tMarine broth\tPeptone\t\t5\tg/L\n")

	writeFile(t, filepath.Join(base, "config.toml"), `
[paths]
data_dir = "`+filepath.Join(base, "data")+`"
log_dir = "`+filepath.Join(base, "logs")+`"

[[sources]]
name = "mediadive"
dir = "`+filepath.Join(base, "mediadive")+`"
format = "json"

[[sources]]
name = "komodo"
dir = "`+filepath.Join(base, "komodo")+`"
format = "tsv"

[logging]
level = "error"
`)
	return filepath.Join(base, "config.toml")
}

func TestImportDedupeExportFlow(t *testing.T) {
	cfgPath := setupWorkspace(t)

	out, err := runCommand(t, "--config", cfgPath, "import")
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 4 recipes") {
		t.Fatalf("unexpected import output: %s", out)
	}

	out, err = runCommand(t, "--config", cfgPath, "dedupe")
	if err != nil {
		t.Fatalf("dedupe failed: %v\n%s", err, out)
	}
	// Two sources share an identity set, one is distinct, one is invalid.
	for _, want := range []string{"Merged recipes out", "2", "Unfingerprintable", "1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dedupe summary missing %q:\n%s", want, out)
		}
	}

	out, err = runCommand(t, "--config", cfgPath, "clusters")
	if err != nil {
		t.Fatalf("clusters failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "mediadive") || !strings.Contains(out, "komodo") {
		t.Fatalf("cluster listing should name both sources:\n%s", out)
	}

	exportPath := filepath.Join(t.TempDir(), "corpus.json")
	out, err = runCommand(t, "--config", cfgPath, "export", "-o", exportPath)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "CHEBI:26710") {
		t.Fatal("export missing merged recipe content")
	}
	if !strings.Contains(string(data), "Merged 2 duplicate records") {
		t.Fatal("export missing merge audit note")
	}
}

func TestStatusCommand(t *testing.T) {
	cfgPath := setupWorkspace(t)
	if _, err := runCommand(t, "--config", cfgPath, "import"); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	out, err := runCommand(t, "--config", cfgPath, "status")
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, out)
	}
	for _, want := range []string{"mediadive", "komodo", "total imported"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestFingerprintCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.json")
	writeFile(t, path, `{"id": "r1", "name": "Broth", "ingredients": [
		{"preferred_term": "MgSO4·7H2O"},
		{"preferred_term": "NaCl", "term": {"id": "CHEBI:26710"}}
	]}`)

	out, err := runCommand(t, "fingerprint", "--signatures", path)
	if err != nil {
		t.Fatalf("fingerprint failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Broth") {
		t.Fatalf("missing recipe label:\n%s", out)
	}
	if !strings.Contains(out, "mgso4") {
		t.Fatalf("expected normalized name signature:\n%s", out)
	}
	if !strings.Contains(out, "CHEBI:26710") {
		t.Fatalf("expected chebi signature:\n%s", out)
	}

	// Hydration variant must print the same digest.
	variant := filepath.Join(dir, "variant.json")
	writeFile(t, variant, `{"id": "r2", "name": "Broth", "ingredients": [
		{"preferred_term": "MgSO4"},
		{"preferred_term": "Tafelsalz", "term": {"id": "CHEBI:26710"}}
	]}`)
	outVariant, err := runCommand(t, "fingerprint", variant)
	if err != nil {
		t.Fatalf("fingerprint variant failed: %v", err)
	}
	if digestOf(t, out) != digestOf(t, outVariant) {
		t.Fatalf("equivalent recipes should share a digest:\n%s\n%s", out, outVariant)
	}
}

func digestOf(t *testing.T, output string) string {
	t.Helper()
	fields := strings.Fields(output)
	if len(fields) == 0 || len(fields[0]) != 64 {
		t.Fatalf("no digest in output: %s", output)
	}
	return fields[0]
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// Second run refuses to clobber without --overwrite.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}
