package provisioning

import (
	"context"

	"github.com/imamik/blitzem/internal/config"
	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/registry"
)

// CreatePolicy decides whether Up re-checks the provider before creating.
type CreatePolicy int

const (
	// CreateIfMissing skips creation when a resource with the same name exists.
	CreateIfMissing CreatePolicy = iota
	// CreateAlways creates without checking, which may produce duplicates.
	CreateAlways
)

func (p CreatePolicy) String() string {
	if p == CreateAlways {
		return "always"
	}
	return "if-missing"
}

// Order selects how the targets of a run are scheduled.
type Order int

const (
	// OrderTopological schedules targets by their dependency tags.
	OrderTopological Order = iota
	// OrderDeclared keeps the caller's order and rejects orders that start a
	// dependent before its dependency.
	OrderDeclared
)

func (o Order) String() string {
	if o == OrderDeclared {
		return "declared"
	}
	return "topological"
}

// Options tune one orchestration run.
type Options struct {
	CreatePolicy CreatePolicy
	Order        Order
	// Parallel runs independent resources of one dependency level concurrently.
	Parallel bool
}

// Context wraps all dependencies needed by one orchestration run.
// It is created once per run and passed to every lifecycle hook.
type Context struct {
	context.Context
	Environment   string
	Compute       provider.ComputeService
	LoadBalancers provider.LoadBalancerService
	// DNS is optional; resources skip DNS bookkeeping when it is nil.
	DNS      provider.DNSService
	Registry *registry.Registry
	Observer Observer
	Timeouts *config.Timeouts
	Options  Options
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithDNS sets the DNS service.
func WithDNS(dns provider.DNSService) ContextOption {
	return func(c *Context) {
		c.DNS = dns
	}
}

// WithObserver sets the observer.
func WithObserver(o Observer) ContextOption {
	return func(c *Context) {
		c.Observer = o
	}
}

// WithTimeouts sets the timeouts.
func WithTimeouts(t *config.Timeouts) ContextOption {
	return func(c *Context) {
		c.Timeouts = t
	}
}

// WithOptions sets the run options.
func WithOptions(o Options) ContextOption {
	return func(c *Context) {
		c.Options = o
	}
}

// NewContext creates a context for one run against driver.
func NewContext(
	ctx context.Context,
	environment string,
	driver provider.Driver,
	reg *registry.Registry,
	opts ...ContextOption,
) *Context {
	c := &Context{
		Context:       ctx,
		Environment:   environment,
		Compute:       driver,
		LoadBalancers: driver,
		Registry:      reg,
		Timeouts:      config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Observer == nil {
		c.Observer = NewConsoleObserver()
	}
	return c
}

// WithContext returns a shallow copy of c whose embedded context is ctx.
// It is used to scope a hook call to a span or deadline.
func (c *Context) WithContext(ctx context.Context) *Context {
	cp := *c
	cp.Context = ctx
	return &cp
}
