package lifecycle

// State is the lifecycle position of one resource within a run.
type State string

// Resource states.
const (
	StateUnstarted State = "unstarted"
	StatePreUp     State = "pre-up"
	StateUp        State = "up"
	StatePostUp    State = "post-up"
	StateStable    State = "stable"
	StatePreDown   State = "pre-down"
	StateDown      State = "down"
	StatePostDown  State = "post-down"
	StateRemoved   State = "removed"
	StateFailed    State = "failed"
)

// Hook names a lifecycle hook.
type Hook string

// Lifecycle hooks, in execution order.
const (
	HookPreUp    Hook = "pre-up"
	HookUp       Hook = "up"
	HookPostUp   Hook = "post-up"
	HookPreDown  Hook = "pre-down"
	HookDown     Hook = "down"
	HookPostDown Hook = "post-down"
)

// Direction is the direction of a run.
type Direction string

// Run directions.
const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Terminal reports whether s ends a run for its resource.
func (s State) Terminal() bool {
	switch s {
	case StateStable, StateRemoved, StateFailed:
		return true
	default:
		return false
	}
}
