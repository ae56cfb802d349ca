package corpus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"mediamerge/internal/dedupe"
	"mediamerge/internal/medium"
)

// ReplaceMergedRecipes atomically replaces the consolidated corpus with the
// results of a dedupe run. Each merged recipe is stored alongside its full
// audit record so merges stay inspectable after the fact.
func (s *Store) ReplaceMergedRecipes(ctx context.Context, results []*dedupe.MergedRecipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM merged_recipes"); err != nil {
		return fmt.Errorf("clear merged recipes: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, result := range results {
		payload, err := json.Marshal(result.Recipe)
		if err != nil {
			return fmt.Errorf("encode merged recipe %s: %w", result.Recipe.Label(), err)
		}
		auditPayload, err := json.Marshal(result.Audit)
		if err != nil {
			return fmt.Errorf("encode audit %s: %w", result.Audit.MergeID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO merged_recipes (merge_id, fingerprint, name, member_count, sources, payload, audit_payload, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			result.Audit.MergeID,
			result.Audit.Fingerprint,
			result.Recipe.Name,
			len(result.Audit.MemberIDs),
			strings.Join(result.Audit.Sources, ", "),
			string(payload),
			string(auditPayload),
			now)
		if err != nil {
			return fmt.Errorf("insert merged recipe %s: %w", result.Recipe.Label(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merged recipes: %w", err)
	}
	return nil
}

// MergedEntry pairs a consolidated recipe with its audit record.
type MergedEntry struct {
	Recipe *medium.Recipe
	Audit  dedupe.MergeAudit
}

// ListMergedRecipes returns the consolidated corpus in stored order.
func (s *Store) ListMergedRecipes(ctx context.Context) ([]MergedEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT payload, audit_payload FROM merged_recipes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list merged recipes: %w", err)
	}
	defer rows.Close()

	var entries []MergedEntry
	for rows.Next() {
		var payload, auditPayload string
		if err := rows.Scan(&payload, &auditPayload); err != nil {
			return nil, fmt.Errorf("scan merged recipe: %w", err)
		}
		var entry MergedEntry
		entry.Recipe = new(medium.Recipe)
		if err := json.Unmarshal([]byte(payload), entry.Recipe); err != nil {
			return nil, fmt.Errorf("decode merged payload: %w", err)
		}
		if err := json.Unmarshal([]byte(auditPayload), &entry.Audit); err != nil {
			return nil, fmt.Errorf("decode audit payload: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merged recipes: %w", err)
	}
	return entries, nil
}

// MergedCount returns the number of consolidated recipes.
func (s *Store) MergedCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM merged_recipes").Scan(&count); err != nil {
		return 0, fmt.Errorf("count merged recipes: %w", err)
	}
	return count, nil
}
