package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seatwise/seatplan/internal/adapters/history/sqlite"
)

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past assignment runs",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryClearCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := sqlite.Open(app.historyPath)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}

			for _, record := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s %s: %d placed, %d unplaced",
					record.ID, record.RanAt.Format(time.DateTime), record.RosterPath,
					record.Placed, record.Unplaced)
				if record.Prevented > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (%d double-seat prevented)", record.Prevented)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())

				for _, cohort := range record.Cohorts {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d placed, %d unplaced\n",
						cohort.Name, cohort.Placed, cohort.Unplaced)
				}
			}

			return nil
		},
	}
}

func newHistoryClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := sqlite.Open(app.historyPath)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", removed)
			return nil
		},
	}
}
