package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable provider timeouts.
// These values can be customized via environment variables.
type Timeouts struct {
	APICall            time.Duration // Timeout for a single list or lookup call
	ServerCreate       time.Duration // Timeout for server creation including its action
	LoadBalancerCreate time.Duration // Timeout for load balancer creation including its action
	Delete             time.Duration // Timeout for all delete operations
	RetryMaxAttempts   int           // Maximum number of retry attempts
	RetryInitialDelay  time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - HCLOUD_TIMEOUT_API_CALL (default: 30s)
//   - HCLOUD_TIMEOUT_SERVER_CREATE (default: 10m)
//   - HCLOUD_TIMEOUT_LOAD_BALANCER_CREATE (default: 6m)
//   - HCLOUD_TIMEOUT_DELETE (default: 5m)
//   - HCLOUD_RETRY_MAX_ATTEMPTS (default: 5)
//   - HCLOUD_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		APICall:            parseDuration("HCLOUD_TIMEOUT_API_CALL", 30*time.Second),
		ServerCreate:       parseDuration("HCLOUD_TIMEOUT_SERVER_CREATE", 10*time.Minute),
		LoadBalancerCreate: parseDuration("HCLOUD_TIMEOUT_LOAD_BALANCER_CREATE", 6*time.Minute),
		Delete:             parseDuration("HCLOUD_TIMEOUT_DELETE", 5*time.Minute),
		RetryMaxAttempts:   parseInt("HCLOUD_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay:  parseDuration("HCLOUD_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
