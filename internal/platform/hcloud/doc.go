// Package hcloud implements the provider driver on top of the Hetzner Cloud API.
//
// # Architecture
//
//   - client.go: RealClient initialization and options
//   - server.go: compute instances (list, create, destroy)
//   - load_balancer.go: load balancers (list, create, destroy)
//   - operations.go: shared timeout, retry and action handling
//   - convert.go: mapping between hcloud and provider types
//   - errors.go: error classification for retry logic
//
// # Retry and Timeout Configuration
//
// Every API call runs under a per-call timeout taken from config.Timeouts.
// Calls rejected because a resource is locked or changed concurrently are
// retried with exponential backoff; all other API errors are fatal. Deleting
// a resource that no longer exists succeeds.
//
// # Example Usage
//
//	driver := hcloud.NewRealClient(os.Getenv("HCLOUD_TOKEN"))
//	instances, err := driver.ListInstances(ctx, provider.ListOpts{Name: "web-1"})
package hcloud
