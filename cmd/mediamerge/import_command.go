package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"mediamerge/internal/config"
	"mediamerge/internal/corpus"
	"mediamerge/internal/ingest"
	"mediamerge/internal/logging"
	"mediamerge/internal/medium"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var sourceFilter string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import source exports into the corpus",
		Long: "Import reads recipe exports into the corpus database. With no arguments " +
			"every configured source directory is scanned; with file arguments only those " +
			"files are read (requires --source to name the owning source).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "import")

			store, err := corpus.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			loader := ingest.NewLoader(logger)
			total := 0

			if len(args) > 0 {
				source, ok := cfg.SourceByName(strings.TrimSpace(sourceFilter))
				if !ok {
					return fmt.Errorf("--source must name a configured source when importing files")
				}
				for _, path := range args {
					recipes, err := loader.LoadFile(ingestSource(source), path)
					if err != nil {
						return err
					}
					count, err := storeRecipes(cmd, store, recipes)
					if err != nil {
						return err
					}
					total += count
				}
			} else {
				for _, source := range cfg.Sources {
					if sourceFilter != "" && !strings.EqualFold(source.Name, sourceFilter) {
						continue
					}
					recipes, err := loader.LoadDir(ingestSource(source))
					if err != nil {
						return err
					}
					count, err := storeRecipes(cmd, store, recipes)
					if err != nil {
						return err
					}
					logger.Info("imported source",
						slog.String(logging.FieldSource, source.Name),
						slog.Int("recipes", count))
					total += count
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipes into %s\n", total, store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceFilter, "source", "", "Limit the import to one configured source")
	return cmd
}

func ingestSource(source config.Source) ingest.Source {
	return ingest.Source{Name: source.Name, Dir: source.Dir, Format: source.Format}
}

func storeRecipes(cmd *cobra.Command, store *corpus.Store, recipes []*medium.Recipe) (int, error) {
	for _, recipe := range recipes {
		if err := store.UpsertRecipe(cmd.Context(), recipe); err != nil {
			return 0, err
		}
	}
	return len(recipes), nil
}
