package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config to report exists=false")
	}
	if resolved == "" {
		t.Fatal("expected resolved path even when file missing")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("defaults not applied: %+v", cfg.Logging)
	}
	if cfg.Paths.DataDir == "" || strings.HasPrefix(cfg.Paths.DataDir, "~") {
		t.Fatalf("data dir not expanded: %q", cfg.Paths.DataDir)
	}
}

func TestLoadParsesSources(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
[paths]
data_dir = "`+dir+`"

[[sources]]
name = "MediaDive"
dir = "`+dir+`"
format = "JSON"

[[sources]]
name = "komodo"
dir = "`+dir+`"
format = "tsv"
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if len(cfg.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(cfg.Sources))
	}
	if cfg.Sources[0].Name != "mediadive" || cfg.Sources[0].Format != "json" {
		t.Fatalf("source not normalized: %+v", cfg.Sources[0])
	}
	priority := cfg.SourcePriority()
	if len(priority) != 2 || priority[0] != "mediadive" || priority[1] != "komodo" {
		t.Fatalf("unexpected priority order: %v", priority)
	}
	if _, ok := cfg.SourceByName("KOMODO"); !ok {
		t.Fatal("SourceByName should match case-insensitively")
	}
}

func TestLoadRejectsDuplicateSources(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
[[sources]]
name = "mediadive"
dir = "`+dir+`"

[[sources]]
name = "mediadive"
dir = "`+dir+`"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for duplicate source names")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
[[sources]]
name = "mediadive"
dir = "`+dir+`"
format = "xml"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestDataDirEnvOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv("MEDIAMERGE_DATA_DIR", override)

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Paths.DataDir != override {
		t.Fatalf("env override not applied: %q", cfg.Paths.DataDir)
	}
	if cfg.DatabasePath() != filepath.Join(override, "corpus.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[dedupe]") {
		t.Fatal("sample config missing dedupe section")
	}
}
