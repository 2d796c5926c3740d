package provisioning

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...any)
}

// Observer defines the interface for structured observability during a run.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "up", "down")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of event.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceFailed indicates a resource operation failed.
	EventResourceFailed EventType = "resource.failed"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"
	// EventResourceNoop indicates an operation found nothing to do.
	EventResourceNoop EventType = "resource.noop"

	// EventNotification indicates a subscriber was notified about a dependency.
	EventNotification EventType = "notification"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// LogFormat selects the observer output encoding.
type LogFormat string

// Log formats.
const (
	LogFormatAuto    LogFormat = "auto"
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// ParseLogFormat validates a log format name. The empty string means auto.
func ParseLogFormat(s string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(s)); f {
	case "", LogFormatAuto:
		return LogFormatAuto, nil
	case LogFormatConsole, LogFormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want auto, console or json)", s)
	}
}

// LogObserver implements Observer on top of a zerolog.Logger.
type LogObserver struct {
	log zerolog.Logger
}

// NewConsoleObserver creates an observer writing to stderr at info level.
func NewConsoleObserver() *LogObserver {
	return NewLogObserver(os.Stderr, LogFormatAuto, zerolog.InfoLevel)
}

// NewLogObserver creates an observer writing to w. With LogFormatAuto the
// output is human-readable when w is a terminal and JSON otherwise.
func NewLogObserver(w io.Writer, format LogFormat, level zerolog.Level) *LogObserver {
	if format == LogFormatAuto || format == "" {
		format = LogFormatJSON
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = LogFormatConsole
		}
	}
	if format == LogFormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return &LogObserver{
		log: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// Printf implements Logger.
func (o *LogObserver) Printf(format string, v ...any) {
	o.log.Info().Msgf(format, v...)
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	e := o.log.Info()
	if event.Type == EventResourceFailed || event.Type == EventPhaseFailed {
		e = o.log.Error()
	}
	if !event.Timestamp.IsZero() {
		e = e.Time("event_time", event.Timestamp)
	}
	e = e.Str("event", string(event.Type))
	if event.Phase != "" {
		e = e.Str("phase", event.Phase)
	}
	if event.Resource != "" {
		e = e.Str("resource", event.Resource)
	}
	for k, v := range event.Fields {
		e = e.Str(k, v)
	}
	e.Msg(event.Message)
}

// Progress implements Observer.
func (o *LogObserver) Progress(phase string, current, total int) {
	e := o.log.Info().
		Str("event", string(EventProgress)).
		Str("phase", phase).
		Int("current", current).
		Int("total", total)
	if total > 0 {
		e = e.Int("percent", current*100/total)
	}
	e.Msg("progress")
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	ctx := o.log.With()
	for k, v := range fields {
		ctx = ctx.Str(k, v)
	}
	return &LogObserver{log: ctx.Logger()}
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("deleting %s", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deleted", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceNoop logs that an operation on a resource had nothing to do.
func LogResourceNoop(observer Observer, phase, resourceType, resourceName, reason string) {
	observer.Event(Event{
		Type:     EventResourceNoop,
		Phase:    phase,
		Resource: resourceName,
		Message:  reason,
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogNotification logs that subscriber was told about subject going up or down.
func LogNotification(observer Observer, subscriber, subject, transition string) {
	observer.Event(Event{
		Type:     EventNotification,
		Resource: subscriber,
		Message:  fmt.Sprintf("%s is %s", subject, transition),
		Fields:   map[string]string{"subject": subject, "transition": transition},
	})
}
