package command

import (
	"fmt"

	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/util/labels"
)

// List collects everything the provider holds for the environment, whether
// or not it is still declared.
type List struct {
	// Instances and LoadBalancers are set by ExecuteEnvironment.
	Instances     []provider.Instance
	LoadBalancers []provider.LoadBalancer
}

var _ EnvironmentCommand = (*List)(nil)

func (c *List) Name() string { return "list" }

// ExecuteEnvironment lists the instances and load balancers labeled with the
// context's environment.
func (c *List) ExecuteEnvironment(ctx *provisioning.Context, driver provider.Driver) error {
	opts := provider.ListOpts{Labels: labels.SelectorForEnvironment(ctx.Environment)}

	instances, err := driver.ListInstances(ctx, opts)
	if err != nil {
		return fmt.Errorf("list instances: %w", err)
	}
	lbs, err := driver.ListLoadBalancers(ctx, opts)
	if err != nil {
		return fmt.Errorf("list load balancers: %w", err)
	}

	c.Instances = instances
	c.LoadBalancers = lbs
	return nil
}
