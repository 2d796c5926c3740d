package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/util/labels"
)

// ListInstances returns the servers matching opts. The name filter is exact.
func (c *RealClient) ListInstances(ctx context.Context, opts provider.ListOpts) ([]provider.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.APICall)
	defer cancel()

	servers, err := c.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: labels.Selector(opts.Labels)},
		Name:     opts.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}

	out := make([]provider.Instance, 0, len(servers))
	for _, s := range servers {
		out = append(out, instanceFromServer(s))
	}
	return out, nil
}

// CreateInstance creates a server and waits until its create action completes.
func (c *RealClient) CreateInstance(ctx context.Context, opts provider.InstanceCreateOpts) (*provider.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ServerCreate)
	defer cancel()

	createOpts, err := c.buildServerCreateOpts(ctx, opts)
	if err != nil {
		return nil, err
	}

	var result hcloud.ServerCreateResult
	err = c.withRetry(ctx, c.timeouts.ServerCreate, func(ctx context.Context) error {
		res, _, err := c.client.Server.Create(ctx, createOpts)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server %s: %w", opts.Name, err)
	}

	if err := c.waitFor(ctx, append([]*hcloud.Action{result.Action}, result.NextActions...)...); err != nil {
		return nil, fmt.Errorf("failed to wait for server %s: %w", opts.Name, err)
	}

	inst := instanceFromServer(result.Server)
	return &inst, nil
}

// DestroyInstance deletes the server with the given ID.
func (c *RealClient) DestroyInstance(ctx context.Context, id string) error {
	return (&DeleteOperation{
		ID:           id,
		ResourceType: "server",
		Delete: func(ctx context.Context, id int64) (*hcloud.Action, error) {
			res, _, err := c.client.Server.DeleteWithResult(ctx, &hcloud.Server{ID: id})
			if err != nil {
				return nil, err
			}
			return res.Action, nil
		},
	}).Execute(ctx, c)
}

// buildServerCreateOpts resolves SSH keys and builds server creation options.
// Server type, image and location are passed by name.
func (c *RealClient) buildServerCreateOpts(ctx context.Context, opts provider.InstanceCreateOpts) (hcloud.ServerCreateOpts, error) {
	sshKeys, err := c.resolveSSHKeys(ctx, opts.SSHKeys)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}

	createOpts := hcloud.ServerCreateOpts{
		Name:       opts.Name,
		ServerType: &hcloud.ServerType{Name: opts.ServerType},
		Image:      &hcloud.Image{Name: opts.Image},
		SSHKeys:    sshKeys,
		UserData:   opts.UserData,
		Labels:     opts.Labels,
	}
	if opts.Location != "" {
		createOpts.Location = &hcloud.Location{Name: opts.Location}
	}
	return createOpts, nil
}

// resolveSSHKeys resolves SSH key names/IDs to SSH key objects.
func (c *RealClient) resolveSSHKeys(ctx context.Context, sshKeys []string) ([]*hcloud.SSHKey, error) {
	var sshKeyObjs []*hcloud.SSHKey
	for _, key := range sshKeys {
		keyObj, _, err := c.client.SSHKey.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to get ssh key %s: %w", key, err)
		}
		if keyObj == nil {
			return nil, fmt.Errorf("ssh key not found: %s", key)
		}
		sshKeyObjs = append(sshKeyObjs, keyObj)
	}
	return sshKeyObjs, nil
}
