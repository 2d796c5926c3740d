package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blitzem/cmd/blitzem/handlers"
)

// Down returns the down command.
func Down(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "down [name-or-tag]",
		Short: "Destroy the resources matching a name or tag",
		Long: `Down brings the selected resources down, dependents first.

Every selected resource is attempted even if an earlier one fails; all
failures are reported at the end.

WARNING: destroyed servers and their disks cannot be recovered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Down(cmd.Context(), opts, target(args))
		},
	}
}
