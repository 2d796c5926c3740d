package registry

import (
	"errors"
	"slices"
	"sync"
)

// ErrEmptyName is returned when registering an item without a name.
var ErrEmptyName = errors.New("registry: item has no name")

// Item is anything addressable by name and classifiable by tags.
type Item interface {
	// Name returns the identifier of the item within an environment.
	Name() string

	// Tags returns the ordered tags of the item. May be empty.
	Tags() []string

	// NotificationSubjects returns the tags this item wants to be notified about.
	NotificationSubjects() []string
}

// Registry holds items in registration order.
// Registration is expected to finish before concurrent lookups begin, but
// both are synchronized.
type Registry struct {
	mu    sync.RWMutex
	items []Item
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register appends items to the registry. Items are not deduplicated.
// Nothing is registered if any item has an empty name.
func (r *Registry) Register(items ...Item) error {
	for _, item := range items {
		if item == nil || item.Name() == "" {
			return ErrEmptyName
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, items...)
	return nil
}

// Items returns a snapshot of all registered items.
func (r *Registry) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// FindMatching returns every item satisfying T whose name equals nameOrTag or
// whose tags contain it. An empty nameOrTag matches all items satisfying T.
func FindMatching[T any](r *Registry, nameOrTag string) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []T
	for _, item := range r.items {
		typed, ok := item.(T)
		if !ok {
			continue
		}
		if nameOrTag == "" || item.Name() == nameOrTag || slices.Contains(item.Tags(), nameOrTag) {
			found = append(found, typed)
		}
	}
	return found
}

// FindSubscribers returns every item satisfying T that declared interest in
// any of the given subjects. Each item appears once, in registration order.
func FindSubscribers[T any](r *Registry, subjects ...string) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []T
	for _, item := range r.items {
		typed, ok := item.(T)
		if !ok {
			continue
		}
		if interested(item, subjects) {
			found = append(found, typed)
		}
	}
	return found
}

func interested(item Item, subjects []string) bool {
	for _, s := range item.NotificationSubjects() {
		if slices.Contains(subjects, s) {
			return true
		}
	}
	return false
}
