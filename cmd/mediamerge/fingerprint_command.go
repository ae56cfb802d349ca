package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediamerge/internal/identity"
	"mediamerge/internal/ingest"
)

func newFingerprintCommand() *cobra.Command {
	var showSignatures bool

	cmd := &cobra.Command{
		Use:         "fingerprint <file>",
		Short:       "Print the content fingerprint of a recipe file",
		Long:        "Fingerprint reads a single JSON recipe document and prints its content digest. Useful for checking whether two source records would be clustered.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open recipe file: %w", err)
			}
			defer file.Close()

			recipes, err := ingest.DecodeJSON(file, "", args[0])
			if err != nil {
				return err
			}
			if len(recipes) == 0 {
				return fmt.Errorf("no recipes in %s", args[0])
			}

			for _, recipe := range recipes {
				fp, err := identity.Fingerprint(recipe)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", fp, recipe.Label())
				if showSignatures {
					for _, sig := range identity.Signatures(recipe) {
						fmt.Fprintf(cmd.OutOrStdout(), "  %-5s  %s\n", sig.Source, sig.Identifier)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSignatures, "signatures", false, "Also print the extracted signature set")
	return cmd
}
