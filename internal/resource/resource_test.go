package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provider/fakes"
	"github.com/imamik/blitzem/internal/registry"
)

// prefixDriver ignores the name filter, like providers that match by prefix.
type prefixDriver struct {
	*fakes.Driver
}

func (d prefixDriver) ListInstances(ctx context.Context, opts provider.ListOpts) ([]provider.Instance, error) {
	opts.Name = ""
	return d.Driver.ListInstances(ctx, opts)
}

func (d prefixDriver) ListLoadBalancers(ctx context.Context, opts provider.ListOpts) ([]provider.LoadBalancer, error) {
	opts.Name = ""
	return d.Driver.ListLoadBalancers(ctx, opts)
}

func TestFindExistingInstances_ExactName(t *testing.T) {
	t.Parallel()
	driver := fakes.NewDriver()
	driver.SeedInstance("web-1", nil)
	driver.SeedInstance("web-10", nil)
	driver.SeedInstance("web-1", nil)

	found, err := FindExistingInstances(context.Background(), prefixDriver{driver}, "web-1")
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, inst := range found {
		assert.Equal(t, "web-1", inst.Name)
	}
}

func TestFindExistingLoadBalancers_ExactName(t *testing.T) {
	t.Parallel()
	driver := fakes.NewDriver()
	driver.SeedLoadBalancer("lb-1")
	driver.SeedLoadBalancer("lb-1-old")

	found, err := FindExistingLoadBalancers(context.Background(), prefixDriver{driver}, "lb-1")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "lb-1", found[0].Name)
}

func TestFindExisting_ProviderError(t *testing.T) {
	t.Parallel()
	driver := fakes.NewDriver()
	driver.ListInstancesErr = errors.New("api down")
	driver.ListLoadBalancersErr = errors.New("api down")

	_, err := FindExistingInstances(context.Background(), driver, "web-1")
	require.ErrorIs(t, err, driver.ListInstancesErr)

	_, err = FindExistingLoadBalancers(context.Background(), driver, "lb-1")
	require.ErrorIs(t, err, driver.ListLoadBalancersErr)
}

func TestResolveInstances_UnionWithoutDuplicates(t *testing.T) {
	t.Parallel()
	driver := fakes.NewDriver()
	web1 := driver.SeedInstance("web-1", nil)
	web2a := driver.SeedInstance("web-2", nil)
	web2b := driver.SeedInstance("web-2", nil)

	n1 := NewNode(NodeSpec{Name: "web-1"})
	n2 := NewNode(NodeSpec{Name: "web-2"})
	missing := NewNode(NodeSpec{Name: "web-3"})

	got, err := ResolveInstances(context.Background(), driver, []*Node{n1, n2, missing, n1})
	require.NoError(t, err)
	assert.Equal(t, []provider.Instance{web1, web2a, web2b}, got)
}

func TestFindMatching_NodesByTag(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	web1 := NewNode(NodeSpec{Name: "web-1", Tags: []string{"web"}})
	lb1 := NewLoadBalancer(LoadBalancerSpec{Name: "lb-1", AppliesToTag: "web"})
	require.NoError(t, reg.Register(web1, lb1))

	assert.Equal(t, []*Node{web1}, registry.FindMatching[*Node](reg, "web"))
	assert.Empty(t, registry.FindMatching[*LoadBalancer](reg, "web"))
	assert.Equal(t, []Resource{web1, lb1}, registry.FindMatching[Resource](reg, ""))
	assert.Equal(t, []Subscriber{lb1}, registry.FindSubscribers[Subscriber](reg, "web"))
}

func TestNoopHooks(t *testing.T) {
	t.Parallel()
	var h NoopHooks
	assert.NoError(t, h.PreUp(nil, nil))
	assert.NoError(t, h.PostUp(nil, nil))
	assert.NoError(t, h.PreDown(nil, nil))
	assert.NoError(t, h.PostDown(nil, nil))
}
