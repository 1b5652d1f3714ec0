package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "phase.changed", "marker.emitted")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Experiment Lifecycle Events
// -----------------------------------------------------------------------------

// ExperimentStartedEvent is emitted when the start trigger fires and the
// protocol sequence begins.
type ExperimentStartedEvent struct {
	baseEvent
	RunID string // Unique identifier for this run
}

// NewExperimentStartedEvent creates an ExperimentStartedEvent.
func NewExperimentStartedEvent(runID string) ExperimentStartedEvent {
	return ExperimentStartedEvent{
		baseEvent: newBaseEvent("experiment.started"),
		RunID:     runID,
	}
}

// ExperimentCompletedEvent is emitted exactly once when the run finalizes
// after the exit confirmation. Durations maps phase name to elapsed seconds.
type ExperimentCompletedEvent struct {
	baseEvent
	RunID     string
	Durations map[string]float64
}

// NewExperimentCompletedEvent creates an ExperimentCompletedEvent.
func NewExperimentCompletedEvent(runID string, durations map[string]float64) ExperimentCompletedEvent {
	return ExperimentCompletedEvent{
		baseEvent: newBaseEvent("experiment.completed"),
		RunID:     runID,
		Durations: durations,
	}
}

// -----------------------------------------------------------------------------
// Phase Progress Events
// -----------------------------------------------------------------------------

// PhaseChangedEvent is emitted on every phase transition.
type PhaseChangedEvent struct {
	baseEvent
	From string // Previous phase name, empty for the first phase
	To   string // New phase name
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(from, to string) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent: newBaseEvent("phase.changed"),
		From:      from,
		To:        to,
	}
}

// PhaseCompletedEvent is emitted when a phase ends, carrying its recorded
// wall-clock duration.
type PhaseCompletedEvent struct {
	baseEvent
	Phase   string
	Seconds float64
}

// NewPhaseCompletedEvent creates a PhaseCompletedEvent.
func NewPhaseCompletedEvent(phase string, seconds float64) PhaseCompletedEvent {
	return PhaseCompletedEvent{
		baseEvent: newBaseEvent("phase.completed"),
		Phase:     phase,
		Seconds:   seconds,
	}
}

// -----------------------------------------------------------------------------
// Marker Events
// -----------------------------------------------------------------------------

// MarkerEmittedEvent is emitted when a marker is drained from the queue and
// pushed to the recording sink.
type MarkerEmittedEvent struct {
	baseEvent
	Marker string // Marker name, e.g. "MindfulnessBegin"
	At     time.Time
}

// NewMarkerEmittedEvent creates a MarkerEmittedEvent.
func NewMarkerEmittedEvent(marker string, at time.Time) MarkerEmittedEvent {
	return MarkerEmittedEvent{
		baseEvent: newBaseEvent("marker.emitted"),
		Marker:    marker,
		At:        at,
	}
}

// SicknessReportedEvent is emitted when a sickness report is accepted
// (i.e. not suppressed by the cooldown lock).
type SicknessReportedEvent struct {
	baseEvent
	Forced bool // true when triggered programmatically via ForceReport
}

// NewSicknessReportedEvent creates a SicknessReportedEvent.
func NewSicknessReportedEvent(forced bool) SicknessReportedEvent {
	return SicknessReportedEvent{
		baseEvent: newBaseEvent("sickness.reported"),
		Forced:    forced,
	}
}
