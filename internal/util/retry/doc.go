// Package retry retries operations with exponential backoff.
//
// [Do] retries an operation with configurable max attempts, initial delay
// and maximum delay. Errors wrapped with [Fatal] stop the loop at once. It is
// used around Hetzner Cloud API calls that fail while a resource is locked.
package retry
