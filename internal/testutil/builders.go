package testutil

import (
	"maps"
	"slices"

	"github.com/imamik/blitzem/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder for environment "test".
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: config.Config{Environment: "test"}}
}

// WithEnvironment sets the environment name.
func (b *ConfigBuilder) WithEnvironment(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Environment = name
	return nb
}

// WithNode adds a node with the given tags.
func (b *ConfigBuilder) WithNode(name string, tags ...string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Nodes = append(nb.cfg.Nodes, config.NodeConfig{Name: name, Tags: tags})
	return nb
}

// WithNodeDependsOn adds a node that depends on the nodes carrying dependsOn.
func (b *ConfigBuilder) WithNodeDependsOn(name string, tags, dependsOn []string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Nodes = append(nb.cfg.Nodes, config.NodeConfig{Name: name, Tags: tags, DependsOn: dependsOn})
	return nb
}

// WithLoadBalancer adds a TCP load balancer in front of the nodes tagged appliesToTag.
func (b *ConfigBuilder) WithLoadBalancer(name, appliesToTag string, port, nodePort int) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.LoadBalancers = append(nb.cfg.LoadBalancers, config.LoadBalancerConfig{
		Name:         name,
		Port:         port,
		NodePort:     nodePort,
		AppliesToTag: appliesToTag,
	})
	return nb
}

// WithLoadBalancerDNS attaches a DNS record to the load balancer added last.
func (b *ConfigBuilder) WithLoadBalancerDNS(zone, record string) *ConfigBuilder {
	nb := b.clone()
	if n := len(nb.cfg.LoadBalancers); n > 0 {
		nb.cfg.LoadBalancers[n-1].DNS = &config.DNSConfig{Zone: zone, Record: record}
	}
	return nb
}

// Build returns the constructed config with defaults applied.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	cfg.ApplyDefaults()
	return &cfg
}

// clone creates a deep copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	cfg.Nodes = make([]config.NodeConfig, len(b.cfg.Nodes))
	for i, n := range b.cfg.Nodes {
		n.Tags = slices.Clone(n.Tags)
		n.SSHKeys = slices.Clone(n.SSHKeys)
		n.DependsOn = slices.Clone(n.DependsOn)
		n.Labels = maps.Clone(n.Labels)
		cfg.Nodes[i] = n
	}
	cfg.LoadBalancers = make([]config.LoadBalancerConfig, len(b.cfg.LoadBalancers))
	for i, lb := range b.cfg.LoadBalancers {
		lb.Tags = slices.Clone(lb.Tags)
		if lb.DNS != nil {
			dns := *lb.DNS
			lb.DNS = &dns
		}
		cfg.LoadBalancers[i] = lb
	}
	return &ConfigBuilder{cfg: cfg}
}
