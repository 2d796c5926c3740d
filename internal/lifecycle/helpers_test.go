package lifecycle

import (
	"fmt"
	"sync"

	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/registry"
	"github.com/imamik/blitzem/internal/resource"
)

// callLog is shared by the stubs of one test to observe call order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, v...))
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// stub is a resource that records its hook calls and fails on demand.
type stub struct {
	name string
	tags []string
	deps []string
	log  *callLog
	fail map[Hook]error

	// onUp runs inside the Up hook when set.
	onUp func(ctx *provisioning.Context) error
}

var _ resource.Resource = (*stub)(nil)

func (s *stub) Name() string                   { return s.name }
func (s *stub) Tags() []string                 { return s.tags }
func (s *stub) NotificationSubjects() []string { return nil }
func (s *stub) Kind() resource.Kind            { return "stub" }
func (s *stub) Dependencies() []string         { return s.deps }

func (s *stub) IsUp(*provisioning.Context) (bool, error) { return false, nil }

func (s *stub) hook(h Hook, associated []*resource.Node) error {
	names := make([]string, len(associated))
	for i, n := range associated {
		names[i] = n.Name()
	}
	s.log.add("%s %s %v", s.name, h, names)
	return s.fail[h]
}

func (s *stub) PreUp(_ *provisioning.Context, a []*resource.Node) error {
	return s.hook(HookPreUp, a)
}

func (s *stub) Up(ctx *provisioning.Context, a []*resource.Node) error {
	if err := s.hook(HookUp, a); err != nil {
		return err
	}
	if s.onUp != nil {
		return s.onUp(ctx)
	}
	return nil
}

func (s *stub) PostUp(_ *provisioning.Context, a []*resource.Node) error {
	return s.hook(HookPostUp, a)
}

func (s *stub) PreDown(_ *provisioning.Context, a []*resource.Node) error {
	return s.hook(HookPreDown, a)
}

func (s *stub) Down(_ *provisioning.Context, a []*resource.Node) error {
	return s.hook(HookDown, a)
}

func (s *stub) PostDown(_ *provisioning.Context, a []*resource.Node) error {
	return s.hook(HookPostDown, a)
}

// listener is a subscriber that only records notifications.
type listener struct {
	name     string
	subjects []string
	log      *callLog
}

var _ resource.Subscriber = (*listener)(nil)

func (l *listener) Name() string                   { return l.name }
func (l *listener) Tags() []string                 { return nil }
func (l *listener) NotificationSubjects() []string { return l.subjects }

func (l *listener) NotifyIsUp(_ *provisioning.Context, subject registry.Item) {
	l.log.add("%s <- up %s", l.name, subject.Name())
}

func (l *listener) NotifyIsGoingDown(_ *provisioning.Context, subject registry.Item) {
	l.log.add("%s <- going-down %s", l.name, subject.Name())
}

func node(name string, tags ...string) *resource.Node {
	return resource.NewNode(resource.NodeSpec{
		Name:       name,
		Tags:       tags,
		ServerType: "cx22",
		Image:      "ubuntu-24.04",
		Location:   "nbg1",
	})
}

func dependentNode(name string, tags, dependsOn []string) *resource.Node {
	return resource.NewNode(resource.NodeSpec{
		Name:       name,
		Tags:       tags,
		ServerType: "cx22",
		Image:      "ubuntu-24.04",
		Location:   "nbg1",
		DependsOn:  dependsOn,
	})
}

func balancer(name, appliesTo string) *resource.LoadBalancer {
	return resource.NewLoadBalancer(resource.LoadBalancerSpec{
		Name:         name,
		Protocol:     "tcp",
		Port:         80,
		NodePort:     8080,
		AppliesToTag: appliesTo,
		Type:         "lb11",
		Location:     "nbg1",
	})
}

func names(levels [][]resource.Resource) [][]string {
	out := make([][]string, len(levels))
	for i, level := range levels {
		for _, r := range level {
			out[i] = append(out[i], r.Name())
		}
	}
	return out
}
