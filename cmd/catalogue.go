package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	tomlrepo "github.com/seatwise/seatplan/internal/adapters/repo/toml"
	"github.com/seatwise/seatplan/internal/domain"
)

func newCatalogueCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Inspect and manage the seat catalogue",
	}

	cmd.AddCommand(
		newCatalogueShowCmd(app),
		newCatalogueInitCmd(app),
	)

	return cmd
}

func newCatalogueShowCmd(app *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active seat catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalogue, err := app.catalogueRepo.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load catalogue: %w", err)
			}

			for _, category := range domain.Categories() {
				pool := catalogue.PoolByCategory(category, false)
				if len(pool) == 0 {
					continue
				}
				adjustable := len(catalogue.AdjustablePool(pool))
				enabled := len(catalogue.PoolByCategory(category, true))
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d seats (%d adjustable, %d enabled)\n",
					category.Label(), len(pool), adjustable, enabled)

				if !verbose {
					continue
				}
				for _, id := range pool {
					seat, lookupErr := catalogue.Lookup(id)
					if lookupErr != nil {
						continue
					}
					marker := ""
					if seat.Adjustable {
						marker = " [adjustable]"
					}
					if !seat.Enabled {
						marker += " [disabled]"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s%s\n", seat.ID, marker)
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: %d seats\n", catalogue.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "List every seat")

	return cmd
}

// newCatalogueInitCmd writes the built-in default layout to the catalogue
// file so it can be edited.
func newCatalogueInitCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default catalogue file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.catalogueRepo.Save(cmd.Context(), domain.DefaultCatalogue()); err != nil {
				return fmt.Errorf("save catalogue: %w", err)
			}

			if repo, ok := app.catalogueRepo.(*tomlrepo.Repository); ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default catalogue to %s\n", repo.Path())
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote default catalogue")
			return nil
		},
	}
}
