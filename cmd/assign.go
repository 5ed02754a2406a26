package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seatwise/seatplan/internal/adapters/export/jsonfile"
	"github.com/seatwise/seatplan/internal/adapters/history/sqlite"
	planrender "github.com/seatwise/seatplan/internal/adapters/render/plan"
	tomlrepo "github.com/seatwise/seatplan/internal/adapters/repo/toml"
	"github.com/seatwise/seatplan/internal/adapters/report/xlsx"
	"github.com/seatwise/seatplan/internal/application"
	"github.com/seatwise/seatplan/internal/domain"
)

func newAssignCmd(app *app) *cobra.Command {
	var (
		outDir    string
		seed      int64
		pools     []string
		rulesPath string
		workbooks bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "assign <roster>",
		Short: "Assign a roster to seats and write the reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterPath := args[0]

			catalogue, err := app.catalogueRepo.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load catalogue: %w", err)
			}

			students, err := app.rosterSource.Read(cmd.Context(), rosterPath)
			if err != nil {
				return fmt.Errorf("read roster: %w", err)
			}

			enabled, err := parsePoolToggles(pools)
			if err != nil {
				return err
			}

			rules, catchAll, err := loadRules(rulesPath)
			if err != nil {
				return err
			}

			planner := application.NewPlanner(catalogue)
			result, err := planner.Run(cmd.Context(), students, application.RunParams{
				Rules:    rules,
				CatchAll: catchAll,
				Enabled:  enabled,
				Seed:     seed,
			})
			if err != nil {
				return fmt.Errorf("assign roster: %w", err)
			}

			if err := jsonfile.WriteSeats(outDir, catalogue); err != nil {
				return fmt.Errorf("export seats: %w", err)
			}
			if err := jsonfile.WriteAssigns(outDir, result.Ledger); err != nil {
				return fmt.Errorf("export assignments: %w", err)
			}

			if workbooks {
				writer := xlsx.NewWriter(outDir, catalogue)
				err := runWorkbookSpinner(cmd.Context(), cmd.OutOrStdout(), func(ctx context.Context) error {
					return writeCohortWorkbooks(ctx, writer, result)
				})
				if err != nil {
					return fmt.Errorf("write workbooks: %w", err)
				}
			}

			if err := recordRun(cmd.Context(), app, rosterPath, seed, result); err != nil {
				return fmt.Errorf("record run history: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(assignSummary(result))
			}

			rendered, err := app.planRenderer(result, planrender.RenderOptions{Catalogue: catalogue})
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory for reports and exports")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for candidate shuffling (0 = non-deterministic)")
	cmd.Flags().StringSliceVar(&pools, "pools", nil, "Seat categories to enable (open,ws,pr,quiet,class); default all")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "TOML file with cohort rules; default built-in rules")
	cmd.Flags().BoolVar(&workbooks, "workbooks", false, "Write per-cohort xlsx workbooks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run summary as JSON")

	return cmd
}

// loadRules resolves the cohort rule list: the file at path when given,
// otherwise the built-in defaults.
func loadRules(path string) ([]domain.Rule, domain.Rule, error) {
	if path == "" {
		return domain.DefaultRules(), domain.DefaultCatchAll(), nil
	}

	rules, catchAll, err := tomlrepo.LoadRules(path)
	if err != nil {
		return nil, domain.Rule{}, fmt.Errorf("load rules: %w", err)
	}
	return rules, catchAll, nil
}

// parsePoolToggles builds the category-enable map; nil means every category.
func parsePoolToggles(pools []string) (map[domain.Category]bool, error) {
	if len(pools) == 0 {
		return nil, nil
	}

	enabled := make(map[domain.Category]bool, len(pools))
	for _, raw := range pools {
		category := domain.Category(strings.ToLower(strings.TrimSpace(raw)))
		if !category.Valid() {
			return nil, fmt.Errorf("unknown seat category %q", raw)
		}
		enabled[category] = true
	}
	return enabled, nil
}

func writeCohortWorkbooks(ctx context.Context, writer *xlsx.Writer, result application.RunResult) error {
	for _, cohort := range result.Cohorts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writer.WriteCohort(cohort.Name, cohort.Placed, cohort.Unplaced); err != nil {
			return fmt.Errorf("cohort %s: %w", cohort.Name, err)
		}
	}
	return nil
}

func recordRun(ctx context.Context, app *app, rosterPath string, seed int64, result application.RunResult) error {
	store, err := sqlite.Open(app.historyPath)
	if err != nil {
		return err
	}
	defer store.Close()

	record := domain.RunRecord{
		RosterPath: rosterPath,
		Seed:       seed,
		Placed:     result.TotalPlaced,
		Unplaced:   result.TotalUnplaced,
		Prevented:  result.PreventedDouble,
		RanAt:      app.clock.Now(),
	}
	for _, cohort := range result.Cohorts {
		record.Cohorts = append(record.Cohorts, domain.CohortCount{
			Name:     cohort.Name,
			Placed:   len(cohort.Placed),
			Unplaced: len(cohort.Unplaced),
		})
	}

	_, err = store.Append(ctx, record)
	return err
}

type cohortSummary struct {
	Name      string `json:"name"`
	Pool      string `json:"pool"`
	PoolSize  int    `json:"pool_size"`
	Placed    int    `json:"placed"`
	Unplaced  int    `json:"unplaced"`
	Prevented int    `json:"prevented_double"`
}

type runSummary struct {
	Cohorts   []cohortSummary `json:"cohorts"`
	Placed    int             `json:"placed"`
	Unplaced  int             `json:"unplaced"`
	Prevented int             `json:"prevented_double"`
}

func assignSummary(result application.RunResult) runSummary {
	summary := runSummary{
		Placed:    result.TotalPlaced,
		Unplaced:  result.TotalUnplaced,
		Prevented: result.PreventedDouble,
	}
	for _, cohort := range result.Cohorts {
		summary.Cohorts = append(summary.Cohorts, cohortSummary{
			Name:      cohort.Name,
			Pool:      cohort.Pool.String(),
			PoolSize:  cohort.PoolSize,
			Placed:    len(cohort.Placed),
			Unplaced:  len(cohort.Unplaced),
			Prevented: cohort.PreventedDouble,
		})
	}
	return summary
}
