// Package resource defines the resources blitzem orchestrates and their
// lifecycle hooks.
//
// A Resource is a registry.Item with six hooks (PreUp, Up, PostUp, PreDown,
// Down, PostDown) and a live IsUp query. Every hook reconciles against the
// provider before mutating: the provider's view of existing resources is
// authoritative over the declaration.
//
// Two variants exist. Node is a compute instance. LoadBalancer balances the
// nodes carrying its AppliesToTag; that tag is both its dependency and its
// notification subject. Resources never hold references to each other; the
// lifecycle orchestrator resolves associated nodes and subscribers through
// the registry at call time.
package resource
