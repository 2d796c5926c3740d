package lifecycle

import (
	"errors"
	"fmt"

	"github.com/imamik/blitzem/internal/resource"
)

// ErrDependencyCycle is returned when the targets of a run depend on each
// other in a cycle.
var ErrDependencyCycle = errors.New("dependency cycle")

// HookError is a failure of one lifecycle hook.
type HookError struct {
	Resource string
	Kind     resource.Kind
	Hook     Hook
	Err      error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s %s: %s failed: %v", e.Kind, e.Resource, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// RunError aborts a run. It carries the hook failure that stopped it.
type RunError struct {
	Direction Direction
	Err       *HookError
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s aborted: %v", e.Direction, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// OrderError reports a declared order that starts a dependent before its
// dependency.
type OrderError struct {
	Dependent  string
	Dependency string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s is declared before its dependency %s", e.Dependent, e.Dependency)
}
