package lifecycle

import (
	"sync"

	"github.com/imamik/blitzem/internal/resource"
)

// Entry is the outcome of one resource in a run.
type Entry struct {
	Name  string
	Kind  resource.Kind
	State State
	Err   error
}

// Report records the state of every target of a run, in selection order.
type Report struct {
	Direction Direction

	mu      sync.Mutex
	entries []Entry
	index   map[resource.Resource]int
}

func newReport(direction Direction, targets []resource.Resource) *Report {
	r := &Report{
		Direction: direction,
		entries:   make([]Entry, len(targets)),
		index:     make(map[resource.Resource]int, len(targets)),
	}
	for i, t := range targets {
		r.entries[i] = Entry{Name: t.Name(), Kind: t.Kind(), State: StateUnstarted}
		r.index[t] = i
	}
	return r
}

func (r *Report) set(res resource.Resource, state State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.index[res]].State = state
}

func (r *Report) fail(res resource.Resource, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := &r.entries[r.index[res]]
	e.State = StateFailed
	e.Err = err
}

// Entries returns a copy of the entries.
func (r *Report) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// State returns the state of the first target named name, or StateUnstarted.
func (r *Report) State(name string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Name == name {
			return e.State
		}
	}
	return StateUnstarted
}

// Failed returns the entries that ended Failed.
func (r *Report) Failed() []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.State == StateFailed {
			out = append(out, e)
		}
	}
	return out
}
