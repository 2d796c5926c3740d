// Package command selects the resources an operation applies to and runs it.
//
// A ResourceCommand runs against the resources matching a name or tag. An
// EnvironmentCommand runs once against the whole environment and talks to the
// provider driver directly. Runner dispatches both kinds and reports selection
// problems as *Error, leaving orchestration and provider errors untouched.
package command
