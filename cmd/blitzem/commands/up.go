package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blitzem/cmd/blitzem/handlers"
)

// Up returns the up command.
func Up(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up [name-or-tag]",
		Short: "Create the resources matching a name or tag",
		Long: `Up brings the selected resources up, dependencies first.

Without an argument every declared resource is selected. Resources that
already exist at the provider are left alone, so up can be re-run safely.

Examples:
  blitzem up
  blitzem up web
  blitzem up lb-1 --config prod.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Up(cmd.Context(), opts, target(args))
		},
	}
}
