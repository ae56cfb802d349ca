package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediamerge/internal/corpus"
)

func newClustersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "List duplicate clusters in the corpus",
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

			clusters, err := store.DuplicateClusters(cmd.Context())
			if err != nil {
				return err
			}
			if len(clusters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No duplicate clusters; run 'mediamerge dedupe' after importing.")
				return nil
			}

			rows := make([][]string, 0, len(clusters))
			for _, cluster := range clusters {
				rows = append(rows, []string{
					shortDigest(cluster.Fingerprint),
					strconv.Itoa(cluster.Members),
					cluster.Name,
					cluster.Sources,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Fingerprint", "Members", "Name", "Sources"}, rows, 1))
			return nil
		},
	}
}

func shortDigest(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
