package command

import (
	"github.com/imamik/blitzem/internal/provisioning"
	"github.com/imamik/blitzem/internal/resource"
)

// StatusEntry is the live state of one declared resource.
type StatusEntry struct {
	Name string
	Kind resource.Kind
	Tags []string
	Up   bool
}

// Status reports whether the selected resources exist at the provider.
type Status struct {
	// Entries is set by Execute, in selection order.
	Entries []StatusEntry
}

var _ ResourceCommand = (*Status)(nil)

func (c *Status) Name() string { return "status" }

// Execute asks the provider about every target.
func (c *Status) Execute(ctx *provisioning.Context, targets []resource.Resource) error {
	entries := make([]StatusEntry, 0, len(targets))
	for _, r := range targets {
		up, err := r.IsUp(ctx)
		if err != nil {
			return err
		}
		entries = append(entries, StatusEntry{Name: r.Name(), Kind: r.Kind(), Tags: r.Tags(), Up: up})
	}
	c.Entries = entries
	return nil
}
