package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "seatplan",
		Short:         "seatplan: assign exam rosters to testing-centre seats",
		Long:          "seatplan classifies an exam roster into accommodation cohorts and assigns each student a free, compatible seat without overlapping times, then writes the assignment reports and exports.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAssignCmd(app),
		newCohortsCmd(app),
		newCatalogueCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
