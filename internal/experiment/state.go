package experiment

import "fmt"

// State is the controller's lifecycle state. Transitions are one-directional:
// NotStarted → Running → AwaitingExit → Completed. No phase may regress it.
type State int

const (
	// StateNotStarted means the controller is idle, waiting for the start
	// trigger.
	StateNotStarted State = iota
	// StateRunning means the phase sequence is in flight.
	StateRunning
	// StateAwaitingExit means the sequence finished and the controller is
	// waiting for the exit confirmation.
	StateAwaitingExit
	// StateCompleted means the run is finalized and durations are exposed.
	StateCompleted
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateAwaitingExit:
		return "awaiting-exit"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
