// Package lifecycle drives resources through their lifecycle hooks.
//
// An Orchestrator brings a set of target resources up or down. Each resource
// moves through
//
//	Unstarted -> PreUp -> Up -> PostUp -> Stable
//	Stable -> PreDown -> Down -> PostDown -> Removed
//
// and any hook failure leaves it Failed. Targets are scheduled by their
// dependency tags (see Schedule) unless the run asks for the declared order.
//
// After a resource becomes Stable, every subscriber interested in its name or
// one of its tags receives NotifyIsUp. Before a resource starts going down,
// the same subscribers receive NotifyIsGoingDown.
//
// Bringing resources up stops at the first failure and returns a *RunError.
// Bringing them down is best-effort: every target is attempted and the hook
// failures are returned joined.
package lifecycle
