package ingest

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mediamerge/internal/medium"
)

// Source describes one upstream database export directory.
type Source struct {
	Name   string
	Dir    string
	Format string // "json", "tsv", or "" to pick by extension
}

// Loader reads source directories into normalized recipes.
type Loader struct {
	logger *slog.Logger
}

// NewLoader constructs a loader. A nil logger discards output.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Loader{logger: logger}
}

// LoadFile converts one export file. The format is taken from the source when
// set, otherwise from the file extension.
func (l *Loader) LoadFile(source Source, path string) ([]*medium.Recipe, error) {
	format := strings.ToLower(strings.TrimSpace(source.Format))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			format = "json"
		case ".tsv", ".tab":
			format = "tsv"
		default:
			return nil, fmt.Errorf("cannot determine format for %q", path)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	base := filepath.Base(path)
	switch format {
	case "json":
		return DecodeJSON(file, source.Name, base)
	case "tsv":
		return DecodeTSV(file, source.Name, base)
	default:
		return nil, fmt.Errorf("unsupported source format %q", format)
	}
}

// LoadDir converts every recognized export file under the source directory,
// in sorted path order so repeated imports see records in the same sequence.
func (l *Loader) LoadDir(source Source) ([]*medium.Recipe, error) {
	format := strings.ToLower(strings.TrimSpace(source.Format))
	var paths []string
	err := filepath.WalkDir(source.Dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			if format == "" || format == "json" {
				paths = append(paths, path)
			}
		case ".tsv", ".tab":
			if format == "" || format == "tsv" {
				paths = append(paths, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan source %s: %w", source.Name, err)
	}
	sort.Strings(paths)

	var recipes []*medium.Recipe
	for _, path := range paths {
		loaded, err := l.LoadFile(source, path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded source file",
			slog.String("source", source.Name),
			slog.String("file", filepath.Base(path)),
			slog.Int("recipes", len(loaded)))
		recipes = append(recipes, loaded...)
	}
	return recipes, nil
}
