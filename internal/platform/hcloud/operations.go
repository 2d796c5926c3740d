package hcloud

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/blitzem/internal/util/retry"
)

// withRetry runs op under timeout, retrying while the target resource is locked.
// Any other error is fatal.
func (c *RealClient) withRetry(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return retry.Do(ctx, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil || isResourceLocked(err) {
			return err
		}
		return retry.Fatal(err)
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}

// waitFor waits for the given actions, skipping nil ones.
func (c *RealClient) waitFor(ctx context.Context, actions ...*hcloud.Action) error {
	pending := make([]*hcloud.Action, 0, len(actions))
	for _, a := range actions {
		if a != nil {
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	return c.client.Action.WaitFor(ctx, pending...)
}

// DeleteOperation encapsulates deletion of a resource addressed by its provider ID.
// The operation is idempotent: a resource that no longer exists counts as deleted.
// Locked resources are retried with exponential backoff.
type DeleteOperation struct {
	ID           string
	ResourceType string

	// Delete removes the resource and returns the action to wait for, if any.
	Delete func(ctx context.Context, id int64) (*hcloud.Action, error)
}

// Execute performs the delete operation with retry logic and timeout handling.
func (op *DeleteOperation) Execute(ctx context.Context, client *RealClient) error {
	id, err := strconv.ParseInt(op.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s id %q: %w", op.ResourceType, op.ID, err)
	}

	err = client.withRetry(ctx, client.timeouts.Delete, func(ctx context.Context) error {
		action, err := op.Delete(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			return err
		}
		return client.waitFor(ctx, action)
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", op.ResourceType, op.ID, err)
	}
	return nil
}
