package dedupe

import (
	"context"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"mediamerge/internal/identity"
	"mediamerge/internal/logging"
	"mediamerge/internal/medium"
)

// Options configures a deduplication run.
type Options struct {
	// Workers bounds the fingerprint fan-out. Zero or negative means
	// one worker per CPU.
	Workers int
	// SourcePriority breaks base-recipe ties during merging.
	SourcePriority []string
	Logger         *slog.Logger
}

// FailedMerge pairs a cluster whose merge failed with the error. The rest of
// the batch is unaffected.
type FailedMerge struct {
	Cluster Cluster
	Err     error
}

// Report is the outcome of one deduplication run.
type Report struct {
	Merged            []*MergedRecipe
	Unfingerprintable []Unfingerprintable
	FailedMerges      []FailedMerge
	// DuplicateClusters counts clusters with more than one member.
	DuplicateClusters int
}

// RecipesIn returns the number of recipes the run started from.
func (r *Report) RecipesIn() int {
	total := len(r.Unfingerprintable)
	for _, merged := range r.Merged {
		total += len(merged.Audit.MemberIDs)
	}
	for _, failed := range r.FailedMerges {
		total += len(failed.Cluster.Members)
	}
	return total
}

// Run executes the full dedupe stage: fingerprints computed concurrently over
// a worker pool, one reduction pass grouping by fingerprint, then one merge
// per cluster in cluster order. Recipe-level problems land in the report;
// Run itself fails only on context cancellation.
func Run(ctx context.Context, recipes []*medium.Recipe, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}

	fingerprints, errs, err := fingerprintAll(ctx, recipes, opts.Workers)
	if err != nil {
		return nil, err
	}

	result := Group(recipes, fingerprints, errs)
	for _, uf := range result.Unfingerprintable {
		logger.Warn("recipe has no content identity",
			slog.String(logging.FieldRecipe, uf.Recipe.Label()),
			slog.String(logging.FieldSource, uf.Recipe.Source),
			logging.Error(uf.Err))
	}

	merger := NewMerger(opts.SourcePriority)
	report := &Report{Unfingerprintable: result.Unfingerprintable}
	for _, cluster := range result.Clusters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		merged, err := merger.Merge(cluster)
		if err != nil {
			logger.Error("merge failed",
				slog.String(logging.FieldFingerprint, cluster.Fingerprint),
				slog.Int("members", len(cluster.Members)),
				logging.Error(err))
			report.FailedMerges = append(report.FailedMerges, FailedMerge{Cluster: cluster, Err: err})
			continue
		}
		if len(cluster.Members) > 1 {
			report.DuplicateClusters++
			logger.Info("merged duplicate cluster",
				slog.String(logging.FieldFingerprint, shortFingerprint(cluster.Fingerprint)),
				slog.Int("members", len(cluster.Members)),
				slog.String("name", merged.Recipe.Name))
		}
		report.Merged = append(report.Merged, merged)
	}

	logger.Info("dedupe run complete",
		slog.Int("recipes", len(recipes)),
		slog.Int("clusters", len(result.Clusters)),
		slog.Int("duplicate_clusters", report.DuplicateClusters),
		slog.Int("unfingerprintable", len(report.Unfingerprintable)),
		slog.Int("failed_merges", len(report.FailedMerges)))
	return report, nil
}

// fingerprintAll computes every fingerprint with a bounded worker pool. Each
// computation is pure and stateless, so workers share nothing but the index
// feed.
func fingerprintAll(ctx context.Context, recipes []*medium.Recipe, workers int) ([]string, []error, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(recipes) {
		workers = len(recipes)
	}

	fingerprints := make([]string, len(recipes))
	errs := make([]error, len(recipes))
	if len(recipes) == 0 {
		return fingerprints, errs, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				fingerprints[i], errs[i] = identity.Fingerprint(recipes[i])
			}
		}()
	}

	feed := func() error {
		defer close(indexes)
		for i := range recipes {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
	err := feed()
	wg.Wait()
	if err != nil {
		return nil, nil, err
	}
	return fingerprints, errs, nil
}
