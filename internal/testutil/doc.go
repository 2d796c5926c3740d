// Package testutil provides test utilities, builders and fixtures shared by
// the package tests.
//
//   - ConfigBuilder: fluent builder for environment configurations
//   - RecordingObserver: provisioning.Observer that keeps every event
//   - Fixture: fake provider, fake DNS, registry and observer wired into a
//     provisioning.Context
//
// Usage:
//
//	cfg := testutil.NewConfigBuilder().
//	    WithNode("web-1", "web").
//	    WithLoadBalancer("lb-1", "web", 80, 8080).
//	    Build()
//
//	fx := testutil.NewFixture(t)
//	ctx := fx.Context()
package testutil
