package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one visitor",
		Long:  "Show the full record for one visitor by ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid visitor ID: %q", args[0])
			}
			return runShow(id)
		},
	}
}

func runShow(id int64) error {
	v, err := newAPIClient().GetVisitor(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(v)
	}

	printVisitorDetail(v)
	return nil
}
