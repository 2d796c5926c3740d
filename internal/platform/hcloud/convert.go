package hcloud

import (
	"maps"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/blitzem/internal/provider"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ServerIPv4 extracts the public IPv4 address from a server, or empty string if not set.
func ServerIPv4(s *hcloud.Server) string {
	if s != nil && s.PublicNet.IPv4.IP != nil {
		return s.PublicNet.IPv4.IP.String()
	}
	return ""
}

// LoadBalancerIPv4 extracts the public IPv4 address from a load balancer, or empty string if not set.
func LoadBalancerIPv4(lb *hcloud.LoadBalancer) string {
	if lb != nil && lb.PublicNet.IPv4.IP != nil {
		return lb.PublicNet.IPv4.IP.String()
	}
	return ""
}

func instanceFromServer(s *hcloud.Server) provider.Instance {
	return provider.Instance{
		ID:         formatID(s.ID),
		Name:       s.Name,
		Status:     string(s.Status),
		PublicIPv4: ServerIPv4(s),
		Labels:     maps.Clone(s.Labels),
	}
}

// loadBalancerFromHCloud maps the first service of lb onto protocol and ports.
// Load balancers created by blitzem carry exactly one service.
func loadBalancerFromHCloud(lb *hcloud.LoadBalancer) provider.LoadBalancer {
	out := provider.LoadBalancer{
		ID:         formatID(lb.ID),
		Name:       lb.Name,
		PublicIPv4: LoadBalancerIPv4(lb),
		Labels:     maps.Clone(lb.Labels),
	}
	if len(lb.Services) > 0 {
		svc := lb.Services[0]
		out.Protocol = string(svc.Protocol)
		out.Port = svc.ListenPort
		out.NodePort = svc.DestinationPort
	}
	for _, t := range lb.Targets {
		if t.Type == hcloud.LoadBalancerTargetTypeServer && t.Server != nil && t.Server.Server != nil {
			out.TargetIDs = append(out.TargetIDs, formatID(t.Server.Server.ID))
		}
	}
	return out
}
