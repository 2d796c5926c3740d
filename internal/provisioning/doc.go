// Package provisioning provides the per-run execution context and the
// observability layer shared by resources, the lifecycle orchestrator and
// the command layer.
//
// # Core Types
//
// Context embeds context.Context and carries the provider services, the
// registry, the observer, timeouts and run options of one orchestration run.
// Observer emits structured events; the default implementation writes them
// through zerolog, as console output on a terminal and as JSON otherwise.
package provisioning
