package resource

import (
	"fmt"

	"github.com/imamik/blitzem/internal/config"
	"github.com/imamik/blitzem/internal/registry"
)

// FromConfig builds the resources declared in cfg: nodes first, then load
// balancers, each in declaration order. cfg is expected to have defaults applied.
func FromConfig(cfg *config.Config) []Resource {
	out := make([]Resource, 0, len(cfg.Nodes)+len(cfg.LoadBalancers))
	for _, n := range cfg.Nodes {
		out = append(out, NewNode(NodeSpec{
			Name:       n.Name,
			Tags:       n.Tags,
			ServerType: n.ServerType,
			Image:      n.Image,
			Location:   n.Location,
			SSHKeys:    n.SSHKeys,
			UserData:   n.UserData,
			Labels:     n.Labels,
			DependsOn:  n.DependsOn,
		}))
	}
	for _, lb := range cfg.LoadBalancers {
		spec := LoadBalancerSpec{
			Name:         lb.Name,
			Tags:         lb.Tags,
			Protocol:     lb.Protocol,
			Port:         lb.Port,
			NodePort:     lb.NodePort,
			AppliesToTag: lb.AppliesToTag,
			Type:         lb.Type,
			Location:     lb.Location,
			Algorithm:    lb.Algorithm,
		}
		if lb.DNS != nil {
			spec.DNS = &DNSSpec{Zone: lb.DNS.Zone, Record: lb.DNS.Record, TTL: lb.DNS.TTL}
		}
		out = append(out, NewLoadBalancer(spec))
	}
	return out
}

// Register builds the resources declared in cfg and registers them in reg.
func Register(reg *registry.Registry, cfg *config.Config) ([]Resource, error) {
	resources := FromConfig(cfg)
	items := make([]registry.Item, len(resources))
	for i, r := range resources {
		items[i] = r
	}
	if err := reg.Register(items...); err != nil {
		return nil, fmt.Errorf("register resources: %w", err)
	}
	return resources, nil
}
