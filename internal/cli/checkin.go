package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/visitor-log/internal/visitor"
)

func newCheckinCmd() *cobra.Command {
	var req visitor.CreateVisitorRequest

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a visitor check-in",
		Long:  "Record a visitor check-in on the server, which notifies the administrator.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckin(req)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "visitor name (required)")
	cmd.Flags().StringVar(&req.ApartmentNumber, "apartment", "", "apartment being visited (required)")
	cmd.Flags().StringVar(&req.Purpose, "purpose", "", "reason for the visit (required)")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "visitor phone number")

	return cmd
}

func runCheckin(req visitor.CreateVisitorRequest) error {
	v, err := newAPIClient().CreateVisitor(req)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(v)
	}

	printVisitorDetail(v)
	return nil
}
