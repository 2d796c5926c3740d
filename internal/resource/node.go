package resource

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/imamik/blitzem/internal/provider"
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/registry"
	"github.com/imamik/blitzem/internal/util/labels"
)

// NodeSpec declares a compute node.
type NodeSpec struct {
	Name       string
	Tags       []string
	ServerType string
	Image      string
	Location   string
	SSHKeys    []string
	UserData   string
	Labels     map[string]string
	// DependsOn lists tags of nodes that must be up before this one.
	DependsOn []string
}

// Node is a compute instance.
type Node struct {
	NoopHooks
	spec NodeSpec
}

var (
	_ Resource   = (*Node)(nil)
	_ Subscriber = (*Node)(nil)
)

// NewNode creates a node from spec.
func NewNode(spec NodeSpec) *Node {
	spec.Tags = slices.Clone(spec.Tags)
	spec.SSHKeys = slices.Clone(spec.SSHKeys)
	spec.DependsOn = slices.Clone(spec.DependsOn)
	spec.Labels = maps.Clone(spec.Labels)
	return &Node{spec: spec}
}

// Spec returns the node's declaration.
func (n *Node) Spec() NodeSpec { return n.spec }

func (n *Node) Name() string                   { return n.spec.Name }
func (n *Node) Tags() []string                 { return n.spec.Tags }
func (n *Node) NotificationSubjects() []string { return n.spec.DependsOn }
func (n *Node) Kind() Kind                     { return KindNode }
func (n *Node) Dependencies() []string         { return n.spec.DependsOn }

// IsUp reports whether an instance named like the node exists.
func (n *Node) IsUp(ctx *provisioning.Context) (bool, error) {
	existing, err := FindExistingInstances(ctx, ctx.Compute, n.Name())
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

// Up creates the instance unless one with the same name exists.
func (n *Node) Up(ctx *provisioning.Context, _ []*Node) error {
	if ctx.Options.CreatePolicy == provisioning.CreateIfMissing {
		existing, err := FindExistingInstances(ctx, ctx.Compute, n.Name())
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			provisioning.LogResourceExists(ctx.Observer, "up", string(KindNode), n.Name(), existing[0].ID)
			return nil
		}
	}

	provisioning.LogResourceCreating(ctx.Observer, "up", string(KindNode), n.Name())
	inst, err := ctx.Compute.CreateInstance(ctx, provider.InstanceCreateOpts{
		Name:       n.spec.Name,
		ServerType: n.spec.ServerType,
		Image:      n.spec.Image,
		Location:   n.spec.Location,
		SSHKeys:    n.spec.SSHKeys,
		UserData:   n.spec.UserData,
		Labels:     n.labels(ctx.Environment),
	})
	if err != nil {
		return fmt.Errorf("create instance %s: %w", n.Name(), err)
	}
	provisioning.LogResourceCreated(ctx.Observer, "up", string(KindNode), n.Name(), inst.ID)
	return nil
}

// Down destroys every instance named like the node, attempting all of them
// even when one fails.
func (n *Node) Down(ctx *provisioning.Context, _ []*Node) error {
	existing, err := FindExistingInstances(ctx, ctx.Compute, n.Name())
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		provisioning.LogResourceNoop(ctx.Observer, "down", string(KindNode), n.Name(), "no matching instances")
		return nil
	}
	var errs []error
	for _, inst := range existing {
		provisioning.LogResourceDeleting(ctx.Observer, "down", string(KindNode), n.Name(), inst.ID)
		if err := ctx.Compute.DestroyInstance(ctx, inst.ID); err != nil {
			errs = append(errs, fmt.Errorf("destroy instance %s (%s): %w", n.Name(), inst.ID, err))
			continue
		}
		provisioning.LogResourceDeleted(ctx.Observer, "down", string(KindNode), n.Name(), inst.ID)
	}
	return errors.Join(errs...)
}

// NotifyIsUp logs that a node this one depends on is up.
func (n *Node) NotifyIsUp(ctx *provisioning.Context, subject registry.Item) {
	provisioning.LogNotification(ctx.Observer, n.Name(), subject.Name(), "up")
}

// NotifyIsGoingDown logs that a node this one depends on is going down.
func (n *Node) NotifyIsGoingDown(ctx *provisioning.Context, subject registry.Item) {
	provisioning.LogNotification(ctx.Observer, n.Name(), subject.Name(), "going down")
}

func (n *Node) labels(environment string) map[string]string {
	return labels.NewLabelBuilder(environment).
		WithResource(n.spec.Name).
		WithKind(string(KindNode)).
		WithTags(n.spec.Tags...).
		Merge(n.spec.Labels).
		Build()
}
