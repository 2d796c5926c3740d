// Package fakes provides in-memory provider implementations for tests.
package fakes

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/imamik/blitzem/internal/provider"
)

// Driver is an in-memory provider.Driver. It records every mutating call
// and can be primed with existing resources and injected errors.
type Driver struct {
	mu            sync.Mutex
	instances     []provider.Instance
	loadBalancers []provider.LoadBalancer
	nextID        int

	CreatedInstances     []provider.InstanceCreateOpts
	DestroyedInstances   []string
	CreatedLoadBalancers []provider.LoadBalancerCreateOpts
	DestroyedLBs         []string

	// Errors returned by the corresponding calls when set.
	ListInstancesErr       error
	CreateInstanceErr      error
	DestroyInstanceErr     error
	ListLoadBalancersErr   error
	CreateLoadBalancerErr  error
	DestroyLoadBalancerErr error

	// DestroyErrs fails destroy calls for the given IDs of either kind.
	DestroyErrs map[string]error
}

var _ provider.Driver = (*Driver)(nil)

// NewDriver creates an empty fake driver.
func NewDriver() *Driver {
	return &Driver{nextID: 1}
}

func (d *Driver) id() string {
	id := strconv.Itoa(d.nextID)
	d.nextID++
	return id
}

// SeedInstance adds an existing instance and returns it.
func (d *Driver) SeedInstance(name string, labels map[string]string) provider.Instance {
	d.mu.Lock()
	defer d.mu.Unlock()
	inst := provider.Instance{
		ID:         d.id(),
		Name:       name,
		Status:     "running",
		PublicIPv4: fmt.Sprintf("203.0.113.%d", d.nextID),
		Labels:     maps.Clone(labels),
	}
	d.instances = append(d.instances, inst)
	return inst
}

// SeedLoadBalancer adds an existing load balancer and returns it.
// Names are not required to be unique.
func (d *Driver) SeedLoadBalancer(name string) provider.LoadBalancer {
	d.mu.Lock()
	defer d.mu.Unlock()
	lb := provider.LoadBalancer{
		ID:         d.id(),
		Name:       name,
		PublicIPv4: fmt.Sprintf("198.51.100.%d", d.nextID),
	}
	d.loadBalancers = append(d.loadBalancers, lb)
	return lb
}

// Instances returns the instances currently present.
func (d *Driver) Instances() []provider.Instance {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.instances)
}

// LoadBalancers returns the load balancers currently present.
func (d *Driver) LoadBalancers() []provider.LoadBalancer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.loadBalancers)
}

// ListInstances lists instances matching opts.
func (d *Driver) ListInstances(_ context.Context, opts provider.ListOpts) ([]provider.Instance, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ListInstancesErr != nil {
		return nil, d.ListInstancesErr
	}
	var out []provider.Instance
	for _, inst := range d.instances {
		if matches(inst.Name, inst.Labels, opts) {
			out = append(out, inst)
		}
	}
	return out, nil
}

// CreateInstance creates an instance.
func (d *Driver) CreateInstance(_ context.Context, opts provider.InstanceCreateOpts) (*provider.Instance, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.CreatedInstances = append(d.CreatedInstances, opts)
	if d.CreateInstanceErr != nil {
		return nil, d.CreateInstanceErr
	}
	inst := provider.Instance{
		ID:         d.id(),
		Name:       opts.Name,
		Status:     "running",
		PublicIPv4: fmt.Sprintf("203.0.113.%d", d.nextID),
		Labels:     maps.Clone(opts.Labels),
	}
	d.instances = append(d.instances, inst)
	return &inst, nil
}

// DestroyInstance destroys an instance.
func (d *Driver) DestroyInstance(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.DestroyedInstances = append(d.DestroyedInstances, id)
	if d.DestroyInstanceErr != nil {
		return d.DestroyInstanceErr
	}
	if err := d.DestroyErrs[id]; err != nil {
		return err
	}
	d.instances = slices.DeleteFunc(d.instances, func(i provider.Instance) bool { return i.ID == id })
	return nil
}

// ListLoadBalancers lists load balancers matching opts.
func (d *Driver) ListLoadBalancers(_ context.Context, opts provider.ListOpts) ([]provider.LoadBalancer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ListLoadBalancersErr != nil {
		return nil, d.ListLoadBalancersErr
	}
	var out []provider.LoadBalancer
	for _, lb := range d.loadBalancers {
		if matches(lb.Name, lb.Labels, opts) {
			out = append(out, lb)
		}
	}
	return out, nil
}

// CreateLoadBalancer creates a load balancer.
func (d *Driver) CreateLoadBalancer(_ context.Context, opts provider.LoadBalancerCreateOpts) (*provider.LoadBalancer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.CreatedLoadBalancers = append(d.CreatedLoadBalancers, opts)
	if d.CreateLoadBalancerErr != nil {
		return nil, d.CreateLoadBalancerErr
	}
	lb := provider.LoadBalancer{
		ID:         d.id(),
		Name:       opts.Name,
		Protocol:   opts.Protocol,
		Port:       opts.Port,
		NodePort:   opts.NodePort,
		PublicIPv4: fmt.Sprintf("198.51.100.%d", d.nextID),
		Labels:     maps.Clone(opts.Labels),
	}
	for _, t := range opts.Targets {
		lb.TargetIDs = append(lb.TargetIDs, t.ID)
	}
	d.loadBalancers = append(d.loadBalancers, lb)
	return &lb, nil
}

// DestroyLoadBalancer destroys a load balancer.
func (d *Driver) DestroyLoadBalancer(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.DestroyedLBs = append(d.DestroyedLBs, id)
	if d.DestroyLoadBalancerErr != nil {
		return d.DestroyLoadBalancerErr
	}
	if err := d.DestroyErrs[id]; err != nil {
		return err
	}
	d.loadBalancers = slices.DeleteFunc(d.loadBalancers, func(lb provider.LoadBalancer) bool { return lb.ID == id })
	return nil
}

func matches(name string, labels map[string]string, opts provider.ListOpts) bool {
	if opts.Name != "" && name != opts.Name {
		return false
	}
	for k, v := range opts.Labels {
		if labels[k] != v {
			return false
		}
	}
	return true
}

// DNS is an in-memory provider.DNSService keyed by zone.
type DNS struct {
	mu      sync.Mutex
	records map[string][]provider.DNSRecord
	nextID  int

	UpsertErr error
	DeleteErr error
}

var _ provider.DNSService = (*DNS)(nil)

// NewDNS creates an empty fake DNS service.
func NewDNS() *DNS {
	return &DNS{records: make(map[string][]provider.DNSRecord)}
}

// Records returns the records of a zone.
func (d *DNS) Records(zone string) []provider.DNSRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.records[zone])
}

// UpsertRecord creates or replaces a record.
func (d *DNS) UpsertRecord(_ context.Context, zone string, record provider.DNSRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.UpsertErr != nil {
		return d.UpsertErr
	}
	for i, r := range d.records[zone] {
		if r.Name == record.Name && r.Type == record.Type {
			record.ID = r.ID
			d.records[zone][i] = record
			return nil
		}
	}
	d.nextID++
	record.ID = strconv.Itoa(d.nextID)
	d.records[zone] = append(d.records[zone], record)
	return nil
}

// DeleteRecords removes all records with the given name.
func (d *DNS) DeleteRecords(_ context.Context, zone, name string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.DeleteErr != nil {
		return 0, d.DeleteErr
	}
	before := len(d.records[zone])
	d.records[zone] = slices.DeleteFunc(d.records[zone], func(r provider.DNSRecord) bool { return r.Name == name })
	return before - len(d.records[zone]), nil
}
