package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blitzem/cmd/blitzem/handlers"
)

// Status returns the status command.
func Status(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status [name-or-tag]",
		Short: "Show whether declared resources exist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Status(cmd.Context(), opts, target(args))
		},
	}
}
