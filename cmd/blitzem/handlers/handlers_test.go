package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/blitzem/internal/command"
	"github.com/imamik/blitzem/internal/config"
	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provider/fakes"
	"github.com/imamik/blitzem/internal/util/labels"
)

const testEnvironment = `
environment: demo
nodes:
  - name: web-1
    tags: [web]
  - name: web-2
    tags: [web]
loadBalancers:
  - name: lb-1
    port: 80
    nodePort: 8080
    appliesToTag: web
    dns:
      zone: example.com
      record: www.example.com
`

// harness swaps the package factories for in-memory fakes.
type harness struct {
	driver *fakes.Driver
	dns    *fakes.DNS
	out    *bytes.Buffer
	errOut *bytes.Buffer
	opts   *Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	origDriver, origDNS, origStdout, origStderr := newDriver, newDNS, stdout, stderr
	t.Cleanup(func() {
		newDriver, newDNS, stdout, stderr = origDriver, origDNS, origStdout, origStderr
	})

	path := filepath.Join(t.TempDir(), "blitzem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testEnvironment), 0o600))

	h := &harness{
		driver: fakes.NewDriver(),
		dns:    fakes.NewDNS(),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		opts:   &Options{ConfigPath: path, LogLevel: "info", LogFormat: "json", Order: "topological"},
	}
	newDriver = func(string, *config.Timeouts) (provider.Driver, error) { return h.driver, nil }
	newDNS = func(string) provider.DNSService { return h.dns }
	stdout = h.out
	stderr = h.errOut
	return h
}

func TestUp(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, Up(context.Background(), h.opts, ""))

	assert.Len(t, h.driver.Instances(), 2)
	require.Len(t, h.driver.LoadBalancers(), 1)
	assert.Len(t, h.driver.CreatedLoadBalancers[0].Targets, 2)

	records := h.dns.Records("example.com")
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].Type)

	out := h.out.String()
	assert.Contains(t, out, "blitzem up: demo")
	assert.Contains(t, out, "lb-1")
	assert.Contains(t, out, "stable")
	assert.Contains(t, h.errOut.String(), `"event":"resource.created"`)
}

func TestUp_Target(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, Up(context.Background(), h.opts, "web-2"))

	require.Len(t, h.driver.Instances(), 1)
	assert.Equal(t, "web-2", h.driver.Instances()[0].Name)
	assert.Empty(t, h.driver.LoadBalancers())
}

func TestUp_NoMatch(t *testing.T) {
	h := newHarness(t)

	err := Up(context.Background(), h.opts, "cache")

	require.ErrorIs(t, err, command.ErrNoMatch)
	assert.Empty(t, h.driver.CreatedInstances)
}

func TestUp_AllowDuplicates(t *testing.T) {
	h := newHarness(t)
	h.opts.AllowDuplicates = true

	require.NoError(t, Up(context.Background(), h.opts, "web"))
	require.NoError(t, Up(context.Background(), h.opts, "web"))

	assert.Len(t, h.driver.Instances(), 4)
}

func TestUp_MetricsFile(t *testing.T) {
	h := newHarness(t)
	h.opts.MetricsFile = filepath.Join(t.TempDir(), "blitzem.prom")

	require.NoError(t, Up(context.Background(), h.opts, ""))

	data, err := os.ReadFile(h.opts.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `blitzem_lifecycle_hooks_total{hook="up",kind="node",result="success"} 2`)
	assert.Contains(t, string(data), `blitzem_lifecycle_resources_total{direction="up",state="stable"} 3`)
}

func TestUp_Trace(t *testing.T) {
	h := newHarness(t)
	h.opts.Trace = true

	require.NoError(t, Up(context.Background(), h.opts, "web-1"))

	assert.Contains(t, h.errOut.String(), `"Name": "lifecycle.up"`)
	assert.Contains(t, h.errOut.String(), `"Name": "lifecycle.hook.post-up"`)
}

func TestDown(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, Up(context.Background(), h.opts, ""))
	h.out.Reset()

	require.NoError(t, Down(context.Background(), h.opts, ""))

	assert.Empty(t, h.driver.Instances())
	assert.Empty(t, h.driver.LoadBalancers())
	assert.Empty(t, h.dns.Records("example.com"))
	assert.Contains(t, h.out.String(), "blitzem down: demo")
	assert.Contains(t, h.out.String(), "removed")
}

func TestDown_ReportsFailures(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, Up(context.Background(), h.opts, ""))
	h.driver.DestroyInstanceErr = assert.AnError
	h.out.Reset()

	err := Down(context.Background(), h.opts, "")

	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, h.driver.LoadBalancers(), "load balancer is removed despite node failures")
	assert.Contains(t, h.out.String(), "failed")
}

func TestStatus(t *testing.T) {
	h := newHarness(t)
	h.driver.SeedInstance("web-1", nil)

	require.NoError(t, Status(context.Background(), h.opts, ""))

	out := h.out.String()
	assert.Contains(t, out, "blitzem status: demo")
	assert.Contains(t, out, "web-2")
	assert.Contains(t, out, "1 of 3 up")
}

func TestList(t *testing.T) {
	h := newHarness(t)
	h.driver.SeedInstance("stray-1", labels.SelectorForEnvironment("demo"))
	h.driver.SeedInstance("other-1", labels.SelectorForEnvironment("prod"))

	require.NoError(t, List(context.Background(), h.opts))

	out := h.out.String()
	assert.Contains(t, out, "stray-1")
	assert.NotContains(t, out, "other-1")
	assert.Contains(t, out, "Load Balancers")
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		errMsg string
	}{
		{name: "order", modify: func(o *Options) { o.Order = "random" }, errMsg: `invalid order "random"`},
		{name: "log level", modify: func(o *Options) { o.LogLevel = "loud" }, errMsg: `invalid log level "loud"`},
		{name: "log format", modify: func(o *Options) { o.LogFormat = "xml" }, errMsg: "xml"},
		{name: "config", modify: func(o *Options) { o.ConfigPath = "/nonexistent/blitzem.yaml" }, errMsg: "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.modify(h.opts)

			err := Up(context.Background(), h.opts, "")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, h.driver.CreatedInstances)
		})
	}
}

func TestDefaultFactories(t *testing.T) {
	_, err := newDriver("", config.LoadTimeouts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HCLOUD_TOKEN")

	driver, err := newDriver("token", config.LoadTimeouts())
	require.NoError(t, err)
	assert.NotNil(t, driver)

	assert.Nil(t, newDNS(""))
	assert.NotNil(t, newDNS("token"))
}
