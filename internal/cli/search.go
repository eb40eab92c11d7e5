package cli

import (
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search visitors",
		Long:  "Search visitors by name, phone number, or apartment number.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args[0])
		},
	}
}

func runSearch(query string) error {
	resp, err := newAPIClient().SearchVisitors(query)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(resp)
	}

	return printVisitorTable(resp.Visitors, resp.Total)
}
