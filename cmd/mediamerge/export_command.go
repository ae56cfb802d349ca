package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediamerge/internal/corpus"
	"mediamerge/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the consolidated corpus as JSON",
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

			entries, err := store.ListMergedRecipes(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to export; run 'mediamerge dedupe' first.")
				return nil
			}

			if outputPath == "" {
				return export.Write(cmd.OutOrStdout(), entries)
			}
			if err := export.WriteFile(outputPath, entries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recipes to %s\n", len(entries), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}
