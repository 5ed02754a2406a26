package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seatwise/seatplan/internal/domain"
)

// newCohortsCmd previews the roster partition without assigning seats.
func newCohortsCmd(app *app) *cobra.Command {
	var (
		rulesPath string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "cohorts <roster>",
		Short: "Classify a roster into cohorts without assigning seats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := app.rosterSource.Read(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("read roster: %w", err)
			}

			rules, catchAll, err := loadRules(rulesPath)
			if err != nil {
				return err
			}

			cohorts, err := domain.Classify(students, rules, catchAll)
			if err != nil {
				return fmt.Errorf("classify roster: %w", err)
			}

			if asJSON {
				type cohortEntry struct {
					Name     string `json:"name"`
					Pool     string `json:"pool"`
					Students int    `json:"students"`
				}
				entries := make([]cohortEntry, 0, len(cohorts))
				for _, cohort := range cohorts {
					entries = append(entries, cohortEntry{
						Name:     cohort.Name,
						Pool:     cohort.Pool.String(),
						Students: len(cohort.Students),
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			total := 0
			for _, cohort := range cohorts {
				total += len(cohort.Students)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d students -> %s\n",
					cohort.Name, len(cohort.Students), cohort.Pool)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: %d students\n", total)

			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "TOML file with cohort rules; default built-in rules")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the partition as JSON")

	return cmd
}
