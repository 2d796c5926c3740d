package command

import (
	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/resource"
)

// Command is anything the Runner can dispatch.
type Command interface {
	Name() string
}

// ResourceCommand runs against a selected set of resources.
type ResourceCommand interface {
	Command
	Execute(ctx *provisioning.Context, targets []resource.Resource) error
}

// EnvironmentCommand runs once against the whole environment.
type EnvironmentCommand interface {
	Command
	ExecuteEnvironment(ctx *provisioning.Context, driver provider.Driver) error
}
