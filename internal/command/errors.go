package command

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned when a name or tag selects no resource.
	ErrNoMatch = errors.New("no matching resource")

	// ErrInvalidTarget is returned for a selection that cannot be a name or tag.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrTargetNotAllowed is returned when a target is given to a command
	// that always runs against the whole environment.
	ErrTargetNotAllowed = errors.New("command does not take a target")

	// ErrUnsupported is returned for commands that are neither resource nor
	// environment commands.
	ErrUnsupported = errors.New("unsupported command")
)

// Error reports that a command could not be run.
type Error struct {
	Command string
	Target  string
	Err     error
}

func (e *Error) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %s %q failed: %v", e.Command, e.Target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
