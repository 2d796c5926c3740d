package command

import (
	"strings"

	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/registry"
	"github.com/imamik/blitzem/internal/resource"
)

// Runner resolves targets and dispatches commands.
type Runner struct {
	driver provider.Driver
}

// NewRunner creates a runner handing driver to environment commands.
func NewRunner(driver provider.Driver) *Runner {
	return &Runner{driver: driver}
}

// Run executes cmd. Resource commands run against the resources matching
// nameOrTag, or all resources when it is empty. A non-empty nameOrTag that
// matches nothing is an *Error wrapping ErrNoMatch.
//
// Errors returned by the command itself are passed through unchanged.
func (r *Runner) Run(ctx *provisioning.Context, cmd Command, nameOrTag string) error {
	if strings.ContainsAny(nameOrTag, " \t\r\n,=") {
		return &Error{Command: cmd.Name(), Target: nameOrTag, Err: ErrInvalidTarget}
	}

	switch c := cmd.(type) {
	case ResourceCommand:
		targets := registry.FindMatching[resource.Resource](ctx.Registry, nameOrTag)
		if len(targets) == 0 && nameOrTag != "" {
			return &Error{Command: c.Name(), Target: nameOrTag, Err: ErrNoMatch}
		}
		return c.Execute(ctx, targets)
	case EnvironmentCommand:
		if nameOrTag != "" {
			return &Error{Command: c.Name(), Target: nameOrTag, Err: ErrTargetNotAllowed}
		}
		return c.ExecuteEnvironment(ctx, r.driver)
	default:
		return &Error{Command: cmd.Name(), Target: nameOrTag, Err: ErrUnsupported}
	}
}
