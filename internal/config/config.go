package config

// Config is the declarative description of one environment.
type Config struct {
	// Environment names the environment. It scopes provider labels so that
	// several environments can share one project.
	Environment   string               `yaml:"environment" validate:"required,hostname_rfc1123,max=63"`
	Defaults      Defaults             `yaml:"defaults"`
	Nodes         []NodeConfig         `yaml:"nodes" validate:"dive"`
	LoadBalancers []LoadBalancerConfig `yaml:"loadBalancers" validate:"dive"`
}

// Defaults holds values inherited by resources that leave them empty.
type Defaults struct {
	Location         string `yaml:"location"`
	ServerType       string `yaml:"serverType"`
	Image            string `yaml:"image"`
	LoadBalancerType string `yaml:"loadBalancerType"`
}

// NodeConfig declares a compute node.
type NodeConfig struct {
	Name       string            `yaml:"name" validate:"required,hostname_rfc1123,max=63"`
	Tags       []string          `yaml:"tags" validate:"dive,tag"`
	ServerType string            `yaml:"serverType" validate:"required"`
	Image      string            `yaml:"image" validate:"required"`
	Location   string            `yaml:"location" validate:"required,location"`
	SSHKeys    []string          `yaml:"sshKeys"`
	UserData   string            `yaml:"userData"`
	Labels     map[string]string `yaml:"labels"`

	// DependsOn lists tags of nodes that must be up before this one.
	DependsOn []string `yaml:"dependsOn" validate:"dive,tag"`
}

// LoadBalancerConfig declares a load balancer in front of the nodes carrying AppliesToTag.
type LoadBalancerConfig struct {
	Name         string     `yaml:"name" validate:"required,max=63"`
	Tags         []string   `yaml:"tags" validate:"dive,tag"`
	Protocol     string     `yaml:"protocol" validate:"oneof=tcp http"`
	Port         int        `yaml:"port" validate:"required,min=1,max=65535"`
	NodePort     int        `yaml:"nodePort" validate:"required,min=1,max=65535"`
	AppliesToTag string     `yaml:"appliesToTag" validate:"required,tag"`
	Type         string     `yaml:"type" validate:"required"`
	Location     string     `yaml:"location" validate:"required,location"`
	Algorithm    string     `yaml:"algorithm" validate:"oneof=round_robin least_connections"`
	DNS          *DNSConfig `yaml:"dns"`
}

// DNSConfig requests an A record pointing at a load balancer.
type DNSConfig struct {
	Zone   string `yaml:"zone" validate:"required,fqdn"`
	Record string `yaml:"record" validate:"required,fqdn"`
	TTL    int    `yaml:"ttl" validate:"min=60,max=86400"`
}

// ApplyDefaults fills empty fields from Defaults and the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Defaults.Location == "" {
		c.Defaults.Location = DefaultLocation
	}
	if c.Defaults.ServerType == "" {
		c.Defaults.ServerType = DefaultServerType
	}
	if c.Defaults.Image == "" {
		c.Defaults.Image = DefaultImage
	}
	if c.Defaults.LoadBalancerType == "" {
		c.Defaults.LoadBalancerType = DefaultLoadBalancerType
	}

	for i := range c.Nodes {
		n := &c.Nodes[i]
		n.Location = orDefault(n.Location, c.Defaults.Location)
		n.ServerType = orDefault(n.ServerType, c.Defaults.ServerType)
		n.Image = orDefault(n.Image, c.Defaults.Image)
	}

	for i := range c.LoadBalancers {
		lb := &c.LoadBalancers[i]
		lb.Location = orDefault(lb.Location, c.Defaults.Location)
		lb.Type = orDefault(lb.Type, c.Defaults.LoadBalancerType)
		lb.Protocol = orDefault(lb.Protocol, DefaultProtocol)
		lb.Algorithm = orDefault(lb.Algorithm, DefaultAlgorithm)
		if lb.DNS != nil && lb.DNS.TTL == 0 {
			lb.DNS.TTL = DefaultDNSTTL
		}
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
