package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show visitor statistics",
		Long:  "Show aggregate visitor statistics: totals, today's count, top apartments, and the last week's daily counts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	stats, err := newAPIClient().GetStats()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(stats)
	}

	printStats(stats)
	return nil
}
