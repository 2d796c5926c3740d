package testutil

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/imamik/blitzem/internal/provisioning"
)

// RecordingObserver is a provisioning.Observer that records every event and
// message. Observers derived through WithFields share the recording.
type RecordingObserver struct {
	rec    *recording
	fields map[string]string
}

type recording struct {
	mu       sync.Mutex
	events   []provisioning.Event
	messages []string
}

var _ provisioning.Observer = (*RecordingObserver)(nil)

// NewRecordingObserver creates an empty recording observer.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{rec: &recording{}}
}

// Printf records the formatted message.
func (o *RecordingObserver) Printf(format string, v ...any) {
	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	o.rec.messages = append(o.rec.messages, fmt.Sprintf(format, v...))
}

// Event records event with the observer's fields merged in.
func (o *RecordingObserver) Event(event provisioning.Event) {
	merged := maps.Clone(o.fields)
	if merged == nil {
		merged = make(map[string]string)
	}
	maps.Copy(merged, event.Fields)
	event.Fields = merged

	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	o.rec.events = append(o.rec.events, event)
}

// Progress records a progress event.
func (o *RecordingObserver) Progress(phase string, current, total int) {
	o.Event(provisioning.Event{
		Type:   provisioning.EventProgress,
		Phase:  phase,
		Fields: map[string]string{"current": fmt.Sprint(current), "total": fmt.Sprint(total)},
	})
}

// WithFields returns an observer adding fields to every event.
func (o *RecordingObserver) WithFields(fields map[string]string) provisioning.Observer {
	merged := maps.Clone(o.fields)
	if merged == nil {
		merged = make(map[string]string)
	}
	maps.Copy(merged, fields)
	return &RecordingObserver{rec: o.rec, fields: merged}
}

// Events returns a copy of the recorded events.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	return slices.Clone(o.rec.events)
}

// EventsOfType returns the recorded events of type t.
func (o *RecordingObserver) EventsOfType(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns a copy of the recorded Printf messages.
func (o *RecordingObserver) Messages() []string {
	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	return slices.Clone(o.rec.messages)
}
