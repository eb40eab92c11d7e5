package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visitors",
		Long:  "List recorded visitors, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(limit, offset)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of visitors to list (0 = all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of visitors to skip")

	return cmd
}

func runList(limit, offset int) error {
	resp, err := newAPIClient().ListVisitors(limit, offset)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(resp)
	}

	return printVisitorTable(resp.Visitors, resp.Total)
}
