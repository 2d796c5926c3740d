package config

// Defaults applied to fields left empty in the environment file.
const (
	DefaultLocation         = "nbg1"
	DefaultServerType       = "cx22"
	DefaultImage            = "ubuntu-24.04"
	DefaultLoadBalancerType = "lb11"
	DefaultProtocol         = "tcp"
	DefaultAlgorithm        = "round_robin"
	DefaultDNSTTL           = 300
)
