package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a visitor record",
		Long:  "Permanently remove a visitor record by ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid visitor ID: %q", args[0])
			}
			return runRemove(id)
		},
	}
}

func runRemove(id int64) error {
	if err := newAPIClient().DeleteVisitor(id); err != nil {
		return err
	}

	fmt.Printf("Removed visitor #%d\n", id)
	return nil
}
