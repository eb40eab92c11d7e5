// Package cli defines the cobra command tree for visitor-log.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/visitor-log/internal/client"
)

var flagFormat string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vl",
		Short:         "Apartment visitor check-in system",
		Long:          "Backend for an apartment visitor check-in system. Run the API server, record check-ins, and browse or search the visitor log.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")

	root.AddCommand(
		newServeCmd(),
		newCheckinCmd(),
		newListCmd(),
		newShowCmd(),
		newSearchCmd(),
		newRemoveCmd(),
		newStatsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the visitor API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
