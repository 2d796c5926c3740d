// Package async runs named tasks concurrently.
//
// The lifecycle orchestrator uses it to run the resources of one dependency
// level at the same time when parallel mode is enabled.
package async
