package teardown

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-logr/logr"
)

// Observer receives the log output and structured events of a teardown run.
type Observer interface {
	// Printf logs an informational message.
	Printf(format string, v ...any)

	// Event emits a structured event. Events carrying an error are logged
	// at error level.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured teardown event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "routes", "resources")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Err       error             // Set for failure events
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of teardown event.
type EventType string

const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	// EventRoutesFailed reports a failed route disconnect that was tolerated.
	EventRoutesFailed EventType = "routes.failed"

	EventResourceDeleting    EventType = "resource.deleting"
	EventResourcePoweringOff EventType = "resource.powering_off"
	EventResourceKept        EventType = "resource.kept"
	EventResourceFailed      EventType = "resource.failed"

	// EventRemoveFailed reports a bulk removal refused with a deployed
	// resource error.
	EventRemoveFailed EventType = "remove.failed"

	EventArtifactsFailed EventType = "artifacts.failed"
)

// LogObserver implements Observer on top of a logr.Logger.
type LogObserver struct {
	log    logr.Logger
	fields map[string]string
}

// NewLogObserver creates an observer writing to log.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{log: log, fields: map[string]string{}}
}

// Printf implements Observer.
func (o *LogObserver) Printf(format string, v ...any) {
	o.log.Info(fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, o.keysAndValues(event.Fields)...)

	if event.Err != nil {
		o.log.Error(event.Err, event.Message, kv...)
		return
	}
	o.log.Info(event.Message, kv...)
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	maps.Copy(merged, o.fields)
	maps.Copy(merged, fields)
	return &LogObserver{log: o.log, fields: merged}
}

// keysAndValues merges the context fields with extra, sorted by key so the
// output is stable. Keys in extra win.
func (o *LogObserver) keysAndValues(extra map[string]string) []any {
	all := make(map[string]string, len(o.fields)+len(extra))
	maps.Copy(all, o.fields)
	maps.Copy(all, extra)

	keys := slices.Sorted(maps.Keys(all))

	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, all[k])
	}
	return kv
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:      EventPhaseStarted,
		Phase:     phase,
		Message:   "starting",
		Timestamp: time.Now(),
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:      EventPhaseCompleted,
		Phase:     phase,
		Message:   fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
		Timestamp: time.Now(),
		Fields:    map[string]string{"duration": duration.Round(time.Millisecond).String()},
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:      EventPhaseFailed,
		Phase:     phase,
		Message:   "failed",
		Err:       err,
		Timestamp: time.Now(),
	})
}
