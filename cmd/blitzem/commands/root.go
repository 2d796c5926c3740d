// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Command execution is delegated to handler functions in the
// handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/blitzem/cmd/blitzem/handlers"
)

// Root returns the root command for the blitzem CLI.
//
// Global flags are bound to one handlers.Options shared by every subcommand.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:           "blitzem",
		Short:         "Provision tagged nodes and load balancers on Hetzner Cloud",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "blitzem.yaml", "Path to the environment file")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.LogFormat, "log-format", "auto", "Log format (auto, console, json)")
	flags.BoolVar(&opts.Trace, "trace", false, "Print OpenTelemetry spans of the run to stderr")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	flags.BoolVar(&opts.AllowDuplicates, "allow-duplicates", false, "Create resources without checking for existing ones")
	flags.StringVar(&opts.Order, "order", "topological", "Scheduling order (topological, declared)")
	flags.BoolVar(&opts.Parallel, "parallel", false, "Run independent resources concurrently")

	cmd.AddCommand(Up(opts))
	cmd.AddCommand(Down(opts))
	cmd.AddCommand(Status(opts))
	cmd.AddCommand(List(opts))
	cmd.AddCommand(Version())

	return cmd
}

// target returns the optional name-or-tag argument.
func target(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
