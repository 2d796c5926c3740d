// Package provider defines the contract between the orchestration core and a
// cloud provider driver.
//
// The core only ever talks to these interfaces. Concrete drivers live under
// internal/platform, and an in-memory implementation for tests lives in
// provider/fakes.
package provider

import (
	"context"
	"errors"
)

// ErrNotFound is returned by drivers when a resource addressed by ID does not exist.
var ErrNotFound = errors.New("resource not found")

// Protocols accepted by load balancer services.
const (
	ProtocolTCP  = "tcp"
	ProtocolHTTP = "http"
)

// Instance is a compute instance as reported by the provider.
type Instance struct {
	ID         string
	Name       string
	Status     string
	PublicIPv4 string
	Labels     map[string]string
}

// LoadBalancer is a load balancer as reported by the provider.
type LoadBalancer struct {
	ID         string
	Name       string
	Protocol   string
	Port       int
	NodePort   int
	PublicIPv4 string
	TargetIDs  []string
	Labels     map[string]string
}

// ListOpts narrows a listing. Empty fields do not filter.
// Name filtering is advisory: callers that need exact name matches must
// compare names themselves.
type ListOpts struct {
	Name   string
	Labels map[string]string
}

// InstanceCreateOpts describes a compute instance to create.
type InstanceCreateOpts struct {
	Name       string
	ServerType string
	Image      string
	Location   string
	SSHKeys    []string
	UserData   string
	Labels     map[string]string
}

// LoadBalancerCreateOpts describes a load balancer to create.
type LoadBalancerCreateOpts struct {
	Name      string
	Type      string
	Location  string
	Algorithm string
	Protocol  string
	Port      int
	NodePort  int
	Targets   []Instance
	Labels    map[string]string
}

// ComputeService manages compute instances.
type ComputeService interface {
	ListInstances(ctx context.Context, opts ListOpts) ([]Instance, error)
	CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*Instance, error)
	// DestroyInstance removes an instance by its provider ID.
	// Destroying an instance that no longer exists is not an error.
	DestroyInstance(ctx context.Context, id string) error
}

// LoadBalancerService manages load balancers.
type LoadBalancerService interface {
	ListLoadBalancers(ctx context.Context, opts ListOpts) ([]LoadBalancer, error)
	CreateLoadBalancer(ctx context.Context, opts LoadBalancerCreateOpts) (*LoadBalancer, error)
	// DestroyLoadBalancer removes a load balancer by its provider ID.
	// Destroying a load balancer that no longer exists is not an error.
	DestroyLoadBalancer(ctx context.Context, id string) error
}

// Driver bundles the services of one provider.
type Driver interface {
	ComputeService
	LoadBalancerService
}

// DNSRecord is a record managed through a DNSService.
type DNSRecord struct {
	ID      string
	Type    string
	Name    string
	Content string
	TTL     int
}

// DNSService manages DNS records pointing at provisioned resources.
type DNSService interface {
	// UpsertRecord creates the record or updates an existing one with the same name and type.
	UpsertRecord(ctx context.Context, zone string, record DNSRecord) error
	// DeleteRecords removes all records with the given name and returns how many were removed.
	DeleteRecords(ctx context.Context, zone, name string) (int, error)
}
