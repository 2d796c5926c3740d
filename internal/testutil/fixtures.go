package testutil

import (
	"testing"
	"time"

	"github.com/imamik/blitzem/internal/config"
	"github.com/imamik/blitzem/internal/provider/fakes"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/registry"
)

// Fixture bundles in-memory collaborators for one test.
type Fixture struct {
	T        *testing.T
	Driver   *fakes.Driver
	DNS      *fakes.DNS
	Registry *registry.Registry
	Observer *RecordingObserver
}

// NewFixture creates a fixture with an empty fake provider and registry.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	return &Fixture{
		T:        t,
		Driver:   fakes.NewDriver(),
		DNS:      fakes.NewDNS(),
		Registry: registry.New(),
		Observer: NewRecordingObserver(),
	}
}

// Timeouts returns short timeouts suitable for tests.
func Timeouts() *config.Timeouts {
	return &config.Timeouts{
		APICall:            5 * time.Second,
		ServerCreate:       5 * time.Second,
		LoadBalancerCreate: 5 * time.Second,
		Delete:             5 * time.Second,
		RetryMaxAttempts:   1,
		RetryInitialDelay:  time.Millisecond,
	}
}

// Context returns a provisioning.Context over the fixture's collaborators,
// environment "test" and the DNS fake. opts are applied last.
func (f *Fixture) Context(opts ...provisioning.ContextOption) *provisioning.Context {
	base := []provisioning.ContextOption{
		provisioning.WithDNS(f.DNS),
		provisioning.WithObserver(f.Observer),
		provisioning.WithTimeouts(Timeouts()),
	}
	return provisioning.NewContext(TestContext(f.T), "test", f.Driver, f.Registry, append(base, opts...)...)
}
