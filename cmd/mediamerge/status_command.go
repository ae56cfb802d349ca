package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediamerge/internal/corpus"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show corpus counts per source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := corpus.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rows := make([][]string, 0, len(cfg.Sources)+2)
			for _, source := range cfg.Sources {
				count, err := store.RecipeCount(cmd.Context(), source.Name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{source.Name, strconv.Itoa(count)})
			}
			total, err := store.RecipeCount(cmd.Context(), "")
			if err != nil {
				return err
			}
			merged, err := store.MergedCount(cmd.Context())
			if err != nil {
				return err
			}
			rows = append(rows,
				[]string{"total imported", strconv.Itoa(total)},
				[]string{"merged corpus", strconv.Itoa(merged)})

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Source", "Recipes"}, rows, 1))
			return nil
		},
	}
}
