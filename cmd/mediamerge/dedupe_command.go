package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediamerge/internal/corpus"
	"mediamerge/internal/dedupe"
	"mediamerge/internal/logging"
)

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Fingerprint the corpus and merge duplicate recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "dedupe")

			store, err := corpus.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			recipes, err := store.ListRecipes(cmd.Context())
			if err != nil {
				return err
			}
			if len(recipes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Corpus is empty; run 'mediamerge import' first.")
				return nil
			}

			if workers == 0 {
				workers = cfg.Dedupe.Workers
			}
			report, err := dedupe.Run(cmd.Context(), recipes, dedupe.Options{
				Workers:        workers,
				SourcePriority: cfg.SourcePriority(),
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			if err := persistReport(cmd, store, report); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderDedupeSummary(report))
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Fingerprint worker count (0 uses the configured value)")
	return cmd
}

// persistReport writes per-record fingerprints and the merged corpus back to
// the store so later clusters/export invocations see this run's results.
func persistReport(cmd *cobra.Command, store *corpus.Store, report *dedupe.Report) error {
	for _, merged := range report.Merged {
		fp := merged.Audit.Fingerprint
		for _, prov := range merged.Recipe.ProvenanceEntries() {
			if err := store.SetFingerprint(cmd.Context(), prov.Source, prov.RecordID, &fp); err != nil {
				return err
			}
		}
	}
	for _, uf := range report.Unfingerprintable {
		if err := store.SetFingerprint(cmd.Context(), uf.Recipe.Source, uf.Recipe.ID, nil); err != nil {
			return err
		}
	}
	return store.ReplaceMergedRecipes(cmd.Context(), report.Merged)
}

func renderDedupeSummary(report *dedupe.Report) string {
	rows := [][]string{
		{"Recipes in", strconv.Itoa(report.RecipesIn())},
		{"Merged recipes out", strconv.Itoa(len(report.Merged))},
		{"Duplicate clusters", strconv.Itoa(report.DuplicateClusters)},
		{"Unfingerprintable", strconv.Itoa(len(report.Unfingerprintable))},
		{"Failed merges", strconv.Itoa(len(report.FailedMerges))},
	}
	return renderTable([]string{"Metric", "Count"}, rows, 1)
}
