package provisioning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/blitzem/internal/config"
	"github.com/imamik/blitzem/internal/provider/fakes"
	"github.com/imamik/blitzem/internal/registry"
)

func TestNewContext(t *testing.T) {
	t.Parallel()
	driver := fakes.NewDriver()
	reg := registry.New()

	ctx := NewContext(context.Background(), "staging", driver, reg)

	require.NotNil(t, ctx)
	assert.Equal(t, "staging", ctx.Environment)
	assert.Same(t, driver, ctx.Compute)
	assert.Same(t, driver, ctx.LoadBalancers)
	assert.Same(t, reg, ctx.Registry)
	assert.Nil(t, ctx.DNS)
	assert.NotNil(t, ctx.Observer)
	assert.NotNil(t, ctx.Timeouts)
	assert.Equal(t, Options{}, ctx.Options)
	assert.Equal(t, CreateIfMissing, ctx.Options.CreatePolicy)
	assert.Equal(t, OrderTopological, ctx.Options.Order)
}

func TestNewContext_Options(t *testing.T) {
	t.Parallel()
	dns := fakes.NewDNS()
	observer := NewConsoleObserver()
	timeouts := &config.Timeouts{APICall: time.Second}
	opts := Options{CreatePolicy: CreateAlways, Order: OrderDeclared, Parallel: true}

	ctx := NewContext(context.Background(), "staging", fakes.NewDriver(), registry.New(),
		WithDNS(dns),
		WithObserver(observer),
		WithTimeouts(timeouts),
		WithOptions(opts),
	)

	assert.Same(t, dns, ctx.DNS)
	assert.Same(t, observer, ctx.Observer)
	assert.Same(t, timeouts, ctx.Timeouts)
	assert.Equal(t, opts, ctx.Options)
}

func TestContext_WithContext(t *testing.T) {
	t.Parallel()
	type key struct{}
	base := NewContext(context.Background(), "staging", fakes.NewDriver(), registry.New())

	scoped := base.WithContext(context.WithValue(base, key{}, "span"))

	assert.Equal(t, "span", scoped.Value(key{}))
	assert.Nil(t, base.Value(key{}))
	assert.Equal(t, base.Environment, scoped.Environment)
	assert.Same(t, base.Registry, scoped.Registry)
}

func TestOptionStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "if-missing", CreateIfMissing.String())
	assert.Equal(t, "always", CreateAlways.String())
	assert.Equal(t, "topological", OrderTopological.String())
	assert.Equal(t, "declared", OrderDeclared.String())
}
