package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"mediamerge/internal/medium"
)

// DecodeJSON reads recipe records from a JSON document: either an array of
// recipe objects or a single object. Every record is stamped with the given
// source name and file.
func DecodeJSON(r io.Reader, source, file string) ([]*medium.Recipe, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	var records []medium.Recipe
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse json array: %w", err)
		}
	} else {
		var single medium.Recipe
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse json record: %w", err)
		}
		records = []medium.Recipe{single}
	}

	out := make([]*medium.Recipe, 0, len(records))
	for i := range records {
		recipe := records[i]
		recipe.Source = source
		recipe.SourceFile = file
		out = append(out, &recipe)
	}
	return out, nil
}
