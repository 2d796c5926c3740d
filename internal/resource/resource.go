package resource

import (
	"context"
	"fmt"
	"slices"

	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/registry"
)

// Kind identifies a resource variant.
type Kind string

// Resource kinds.
const (
	KindNode         Kind = "node"
	KindLoadBalancer Kind = "load-balancer"
)

// Resource is an orchestrated resource.
//
// associated holds the nodes matching the resource's dependency tags,
// resolved through the registry by the orchestrator.
type Resource interface {
	registry.Item

	Kind() Kind

	// Dependencies returns the tags of the nodes this resource depends on.
	Dependencies() []string

	// IsUp reports whether the provider currently has this resource.
	IsUp(ctx *provisioning.Context) (bool, error)

	PreUp(ctx *provisioning.Context, associated []*Node) error
	Up(ctx *provisioning.Context, associated []*Node) error
	PostUp(ctx *provisioning.Context, associated []*Node) error
	PreDown(ctx *provisioning.Context, associated []*Node) error
	Down(ctx *provisioning.Context, associated []*Node) error
	PostDown(ctx *provisioning.Context, associated []*Node) error
}

// Subscriber reacts to lifecycle transitions of the items it declared
// interest in. Handlers must not start lifecycle transitions themselves.
type Subscriber interface {
	registry.Item
	NotifyIsUp(ctx *provisioning.Context, subject registry.Item)
	NotifyIsGoingDown(ctx *provisioning.Context, subject registry.Item)
}

// NoopHooks provides no-op PreUp, PostUp, PreDown and PostDown hooks.
type NoopHooks struct{}

func (NoopHooks) PreUp(*provisioning.Context, []*Node) error    { return nil }
func (NoopHooks) PostUp(*provisioning.Context, []*Node) error   { return nil }
func (NoopHooks) PreDown(*provisioning.Context, []*Node) error  { return nil }
func (NoopHooks) PostDown(*provisioning.Context, []*Node) error { return nil }

// FindExistingInstances returns the provider instances named exactly name.
func FindExistingInstances(ctx context.Context, compute provider.ComputeService, name string) ([]provider.Instance, error) {
	instances, err := compute.ListInstances(ctx, provider.ListOpts{Name: name})
	if err != nil {
		return nil, fmt.Errorf("list instances %s: %w", name, err)
	}
	return slices.DeleteFunc(instances, func(i provider.Instance) bool { return i.Name != name }), nil
}

// FindExistingLoadBalancers returns the provider load balancers named exactly name.
func FindExistingLoadBalancers(ctx context.Context, lbs provider.LoadBalancerService, name string) ([]provider.LoadBalancer, error) {
	found, err := lbs.ListLoadBalancers(ctx, provider.ListOpts{Name: name})
	if err != nil {
		return nil, fmt.Errorf("list load balancers %s: %w", name, err)
	}
	return slices.DeleteFunc(found, func(lb provider.LoadBalancer) bool { return lb.Name != name }), nil
}

// ResolveInstances returns the live instances of nodes, without duplicates,
// in node order.
func ResolveInstances(ctx context.Context, compute provider.ComputeService, nodes []*Node) ([]provider.Instance, error) {
	seen := make(map[string]bool)
	var out []provider.Instance
	for _, n := range nodes {
		instances, err := FindExistingInstances(ctx, compute, n.Name())
		if err != nil {
			return nil, err
		}
		for _, inst := range instances {
			if seen[inst.ID] {
				continue
			}
			seen[inst.ID] = true
			out = append(out, inst)
		}
	}
	return out, nil
}
