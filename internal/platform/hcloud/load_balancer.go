package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/util/labels"
)

// ListLoadBalancers returns the load balancers matching opts. The name filter is exact.
func (c *RealClient) ListLoadBalancers(ctx context.Context, opts provider.ListOpts) ([]provider.LoadBalancer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.APICall)
	defer cancel()

	lbs, err := c.client.LoadBalancer.AllWithOpts(ctx, hcloud.LoadBalancerListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: labels.Selector(opts.Labels)},
		Name:     opts.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list load balancers: %w", err)
	}

	out := make([]provider.LoadBalancer, 0, len(lbs))
	for _, lb := range lbs {
		out = append(out, loadBalancerFromHCloud(lb))
	}
	return out, nil
}

// CreateLoadBalancer creates a load balancer with one service and one server
// target per instance, then waits for the create action.
// Note: Load balancer creation can take several minutes depending on Hetzner Cloud backend load.
func (c *RealClient) CreateLoadBalancer(ctx context.Context, opts provider.LoadBalancerCreateOpts) (*provider.LoadBalancer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.LoadBalancerCreate)
	defer cancel()

	createOpts, err := buildLoadBalancerCreateOpts(opts)
	if err != nil {
		return nil, err
	}

	var result hcloud.LoadBalancerCreateResult
	err = c.withRetry(ctx, c.timeouts.LoadBalancerCreate, func(ctx context.Context) error {
		res, _, err := c.client.LoadBalancer.Create(ctx, createOpts)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create load balancer %s: %w", opts.Name, err)
	}

	if err := c.waitFor(ctx, result.Action); err != nil {
		return nil, fmt.Errorf("failed to wait for load balancer %s: %w", opts.Name, err)
	}

	lb := loadBalancerFromHCloud(result.LoadBalancer)
	return &lb, nil
}

// DestroyLoadBalancer deletes the load balancer with the given ID.
func (c *RealClient) DestroyLoadBalancer(ctx context.Context, id string) error {
	return (&DeleteOperation{
		ID:           id,
		ResourceType: "load balancer",
		Delete: func(ctx context.Context, id int64) (*hcloud.Action, error) {
			_, err := c.client.LoadBalancer.Delete(ctx, &hcloud.LoadBalancer{ID: id})
			return nil, err
		},
	}).Execute(ctx, c)
}

func buildLoadBalancerCreateOpts(opts provider.LoadBalancerCreateOpts) (hcloud.LoadBalancerCreateOpts, error) {
	targets := make([]hcloud.LoadBalancerCreateOptsTarget, 0, len(opts.Targets))
	for _, inst := range opts.Targets {
		id, err := strconv.ParseInt(inst.ID, 10, 64)
		if err != nil {
			return hcloud.LoadBalancerCreateOpts{}, fmt.Errorf("invalid server id %q for target %s: %w", inst.ID, inst.Name, err)
		}
		targets = append(targets, hcloud.LoadBalancerCreateOptsTarget{
			Type:   hcloud.LoadBalancerTargetTypeServer,
			Server: hcloud.LoadBalancerCreateOptsTargetServer{Server: &hcloud.Server{ID: id}},
		})
	}

	createOpts := hcloud.LoadBalancerCreateOpts{
		Name:             opts.Name,
		LoadBalancerType: &hcloud.LoadBalancerType{Name: opts.Type},
		Labels:           opts.Labels,
		Targets:          targets,
		Services: []hcloud.LoadBalancerCreateOptsService{{
			Protocol:        hcloud.LoadBalancerServiceProtocol(opts.Protocol),
			ListenPort:      hcloud.Ptr(opts.Port),
			DestinationPort: hcloud.Ptr(opts.NodePort),
		}},
	}
	if opts.Location != "" {
		createOpts.Location = &hcloud.Location{Name: opts.Location}
	}
	if opts.Algorithm != "" {
		createOpts.Algorithm = &hcloud.LoadBalancerAlgorithm{Type: hcloud.LoadBalancerAlgorithmType(opts.Algorithm)}
	}
	return createOpts, nil
}
