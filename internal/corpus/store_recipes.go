package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"mediamerge/internal/medium"
)

// UpsertRecipe inserts or replaces an imported record, keyed by
// (source, record id). Re-importing a source refreshes its records in place
// and clears any previously computed fingerprint.
func (s *Store) UpsertRecipe(ctx context.Context, recipe *medium.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("nil recipe")
	}
	payload, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("encode recipe %s: %w", recipe.Label(), err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recipes (record_id, source, source_file, name, fingerprint, payload, created_at, updated_at)
         VALUES (?, ?, ?, ?, NULL, ?, ?, ?)
         ON CONFLICT (source, record_id) DO UPDATE SET
             source_file = excluded.source_file,
             name = excluded.name,
             fingerprint = NULL,
             payload = excluded.payload,
             updated_at = excluded.updated_at`,
		recipe.ID, recipe.Source, recipe.SourceFile, recipe.Name, string(payload), now, now)
	if err != nil {
		return fmt.Errorf("upsert recipe %s: %w", recipe.Label(), err)
	}
	return nil
}

// ListRecipes returns every imported record in import order.
func (s *Store) ListRecipes(ctx context.Context) ([]*medium.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT payload FROM recipes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*medium.Recipe
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		var recipe medium.Recipe
		if err := json.Unmarshal([]byte(payload), &recipe); err != nil {
			return nil, fmt.Errorf("decode recipe payload: %w", err)
		}
		recipes = append(recipes, &recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return recipes, nil
}

// SetFingerprint records the computed fingerprint for one imported record.
// A nil fingerprint marks the record unfingerprintable.
func (s *Store) SetFingerprint(ctx context.Context, source, recordID string, fingerprint *string) error {
	var value sql.NullString
	if fingerprint != nil {
		value = sql.NullString{String: *fingerprint, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE recipes SET fingerprint = ?, updated_at = ? WHERE source = ? AND record_id = ?",
		value, time.Now().UTC().Format(time.RFC3339Nano), source, recordID)
	if err != nil {
		return fmt.Errorf("set fingerprint: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recipe %s/%s not found", source, recordID)
	}
	return nil
}

// RecipeCount returns the number of imported records, optionally filtered by source.
func (s *Store) RecipeCount(ctx context.Context, source string) (int, error) {
	query := "SELECT COUNT(1) FROM recipes"
	args := []any{}
	if source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}

// ClusterRow summarizes one stored duplicate cluster.
type ClusterRow struct {
	Fingerprint string
	Members     int
	Name        string
	Sources     string
}

// DuplicateClusters returns fingerprints shared by more than one imported
// record, largest clusters first.
func (s *Store) DuplicateClusters(ctx context.Context) ([]ClusterRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fingerprint, COUNT(1) AS members, MIN(name), GROUP_CONCAT(DISTINCT source)
         FROM recipes
         WHERE fingerprint IS NOT NULL
         GROUP BY fingerprint
         HAVING COUNT(1) > 1
         ORDER BY members DESC, fingerprint`)
	if err != nil {
		return nil, fmt.Errorf("query clusters: %w", err)
	}
	defer rows.Close()

	var clusters []ClusterRow
	for rows.Next() {
		var row ClusterRow
		if err := rows.Scan(&row.Fingerprint, &row.Members, &row.Name, &row.Sources); err != nil {
			return nil, fmt.Errorf("scan cluster: %w", err)
		}
		clusters = append(clusters, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clusters: %w", err)
	}
	return clusters, nil
}

// UnfingerprintableCount returns the number of records with no identity.
func (s *Store) UnfingerprintableCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM recipes WHERE fingerprint IS NULL").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unfingerprintable: %w", err)
	}
	return count, nil
}
