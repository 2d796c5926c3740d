package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blitzem/cmd/blitzem/handlers"
)

// List returns the list command.
//
// Unlike status, list asks the provider for everything labeled with the
// environment, including resources no longer declared.
func List(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List everything the provider holds for the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.List(cmd.Context(), opts)
		},
	}
}
