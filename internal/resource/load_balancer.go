package resource

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/registry"
	"github.com/imamik/blitzem/internal/util/labels"
)

// DNSSpec requests an A record pointing at a load balancer.
type DNSSpec struct {
	Zone   string
	Record string
	TTL    int
}

// LoadBalancerSpec declares a load balancer.
type LoadBalancerSpec struct {
	Name     string
	Tags     []string
	Protocol string
	Port     int
	NodePort int
	// AppliesToTag names the tag of the nodes behind the load balancer.
	AppliesToTag string
	Type         string
	Location     string
	Algorithm    string
	DNS          *DNSSpec
}

// LoadBalancer balances traffic across the nodes tagged AppliesToTag.
type LoadBalancer struct {
	spec LoadBalancerSpec

	mu    sync.Mutex
	ready map[string]struct{}
}

var (
	_ Resource   = (*LoadBalancer)(nil)
	_ Subscriber = (*LoadBalancer)(nil)
)

// NewLoadBalancer creates a load balancer from spec.
func NewLoadBalancer(spec LoadBalancerSpec) *LoadBalancer {
	spec.Tags = slices.Clone(spec.Tags)
	if spec.DNS != nil {
		dns := *spec.DNS
		spec.DNS = &dns
	}
	return &LoadBalancer{spec: spec, ready: make(map[string]struct{})}
}

// Spec returns the load balancer's declaration.
func (lb *LoadBalancer) Spec() LoadBalancerSpec { return lb.spec }

func (lb *LoadBalancer) Name() string   { return lb.spec.Name }
func (lb *LoadBalancer) Tags() []string { return lb.spec.Tags }
func (lb *LoadBalancer) Kind() Kind     { return KindLoadBalancer }

// NotificationSubjects returns the single subject AppliesToTag, or nil when
// the load balancer applies to no tag.
func (lb *LoadBalancer) NotificationSubjects() []string { return lb.appliesTo() }

// Dependencies returns AppliesToTag, or nil when it is empty.
func (lb *LoadBalancer) Dependencies() []string { return lb.appliesTo() }

// appliesTo never yields the empty tag, which the registry treats as a wildcard.
func (lb *LoadBalancer) appliesTo() []string {
	if lb.spec.AppliesToTag == "" {
		return nil
	}
	return []string{lb.spec.AppliesToTag}
}

// IsUp reports whether a load balancer named like this one exists.
func (lb *LoadBalancer) IsUp(ctx *provisioning.Context) (bool, error) {
	existing, err := FindExistingLoadBalancers(ctx, ctx.LoadBalancers, lb.Name())
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

func (lb *LoadBalancer) PreUp(*provisioning.Context, []*Node) error { return nil }

// Up creates the load balancer in front of the live instances of associated,
// unless one with the same name exists.
func (lb *LoadBalancer) Up(ctx *provisioning.Context, associated []*Node) error {
	if ctx.Options.CreatePolicy == provisioning.CreateIfMissing {
		existing, err := FindExistingLoadBalancers(ctx, ctx.LoadBalancers, lb.Name())
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			provisioning.LogResourceExists(ctx.Observer, "up", string(KindLoadBalancer), lb.Name(), existing[0].ID)
			return nil
		}
	}

	targets, err := ResolveInstances(ctx, ctx.Compute, associated)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		ctx.Observer.Printf("load balancer %s: no live instances tagged %q, creating without targets", lb.Name(), lb.spec.AppliesToTag)
	}

	provisioning.LogResourceCreating(ctx.Observer, "up", string(KindLoadBalancer), lb.Name())
	created, err := ctx.LoadBalancers.CreateLoadBalancer(ctx, provider.LoadBalancerCreateOpts{
		Name:      lb.spec.Name,
		Type:      lb.spec.Type,
		Location:  lb.spec.Location,
		Algorithm: lb.spec.Algorithm,
		Protocol:  lb.spec.Protocol,
		Port:      lb.spec.Port,
		NodePort:  lb.spec.NodePort,
		Targets:   targets,
		Labels: labels.NewLabelBuilder(ctx.Environment).
			WithResource(lb.spec.Name).
			WithKind(string(KindLoadBalancer)).
			WithTags(lb.spec.Tags...).
			Build(),
	})
	if err != nil {
		return fmt.Errorf("create load balancer %s: %w", lb.Name(), err)
	}
	provisioning.LogResourceCreated(ctx.Observer, "up", string(KindLoadBalancer), lb.Name(), created.ID)
	return nil
}

// PostUp points the configured DNS record at the load balancer's public IPv4.
func (lb *LoadBalancer) PostUp(ctx *provisioning.Context, _ []*Node) error {
	if lb.spec.DNS == nil {
		return nil
	}
	if ctx.DNS == nil {
		provisioning.LogResourceNoop(ctx.Observer, "up", "dns-record", lb.spec.DNS.Record, "no DNS service configured")
		return nil
	}

	existing, err := FindExistingLoadBalancers(ctx, ctx.LoadBalancers, lb.Name())
	if err != nil {
		return err
	}
	i := slices.IndexFunc(existing, func(l provider.LoadBalancer) bool { return l.PublicIPv4 != "" })
	if i < 0 {
		return fmt.Errorf("load balancer %s has no public IPv4 for record %s", lb.Name(), lb.spec.DNS.Record)
	}

	record := provider.DNSRecord{
		Type:    "A",
		Name:    lb.spec.DNS.Record,
		Content: existing[i].PublicIPv4,
		TTL:     lb.spec.DNS.TTL,
	}
	if err := ctx.DNS.UpsertRecord(ctx, lb.spec.DNS.Zone, record); err != nil {
		return fmt.Errorf("upsert record %s: %w", record.Name, err)
	}
	ctx.Observer.Event(provisioning.Event{
		Type:     provisioning.EventResourceCreated,
		Phase:    "up",
		Resource: record.Name,
		Message:  fmt.Sprintf("dns record points at %s", record.Content),
		Fields:   map[string]string{"type": "dns-record", "zone": lb.spec.DNS.Zone},
	})
	return nil
}

// PreDown removes the configured DNS record before the load balancer goes away.
func (lb *LoadBalancer) PreDown(ctx *provisioning.Context, _ []*Node) error {
	if lb.spec.DNS == nil || ctx.DNS == nil {
		return nil
	}
	n, err := ctx.DNS.DeleteRecords(ctx, lb.spec.DNS.Zone, lb.spec.DNS.Record)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", lb.spec.DNS.Record, err)
	}
	if n == 0 {
		provisioning.LogResourceNoop(ctx.Observer, "down", "dns-record", lb.spec.DNS.Record, "no matching records")
		return nil
	}
	provisioning.LogResourceDeleted(ctx.Observer, "down", "dns-record", lb.spec.DNS.Record, fmt.Sprintf("%d records", n))
	return nil
}

// Down destroys every load balancer named like this one. Names are not
// unique at the provider, so there may be zero, one or many. A failed
// destroy does not stop the remaining ones.
func (lb *LoadBalancer) Down(ctx *provisioning.Context, _ []*Node) error {
	existing, err := FindExistingLoadBalancers(ctx, ctx.LoadBalancers, lb.Name())
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		provisioning.LogResourceNoop(ctx.Observer, "down", string(KindLoadBalancer), lb.Name(), "no matching load balancers")
		return nil
	}
	var errs []error
	for _, found := range existing {
		provisioning.LogResourceDeleting(ctx.Observer, "down", string(KindLoadBalancer), lb.Name(), found.ID)
		if err := ctx.LoadBalancers.DestroyLoadBalancer(ctx, found.ID); err != nil {
			errs = append(errs, fmt.Errorf("destroy load balancer %s (%s): %w", lb.Name(), found.ID, err))
			continue
		}
		provisioning.LogResourceDeleted(ctx.Observer, "down", string(KindLoadBalancer), lb.Name(), found.ID)
	}
	return errors.Join(errs...)
}

func (lb *LoadBalancer) PostDown(*provisioning.Context, []*Node) error { return nil }

// NotifyIsUp records subject as a ready member.
func (lb *LoadBalancer) NotifyIsUp(ctx *provisioning.Context, subject registry.Item) {
	lb.mu.Lock()
	lb.ready[subject.Name()] = struct{}{}
	lb.mu.Unlock()
	provisioning.LogNotification(ctx.Observer, lb.Name(), subject.Name(), "up")
}

// NotifyIsGoingDown drops subject from the ready members.
func (lb *LoadBalancer) NotifyIsGoingDown(ctx *provisioning.Context, subject registry.Item) {
	lb.mu.Lock()
	delete(lb.ready, subject.Name())
	lb.mu.Unlock()
	provisioning.LogNotification(ctx.Observer, lb.Name(), subject.Name(), "going down")
}

// ReadyMembers returns the names of the members reported up, sorted.
func (lb *LoadBalancer) ReadyMembers() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	members := make([]string, 0, len(lb.ready))
	for name := range lb.ready {
		members = append(members, name)
	}
	slices.Sort(members)
	return members
}
