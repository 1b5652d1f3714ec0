// Package event provides a pub-sub event bus for decoupled inter-component
// communication in the experiment runner.
//
// This package enables loose coupling between the controller, the marker
// pipeline, and the UI by allowing them to communicate through events rather
// than direct method calls. Completion notification in particular is an
// observer registration with at-most-once firing per run.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Experiment lifecycle:
//   - [ExperimentStartedEvent]: Emitted when the start trigger fires
//   - [ExperimentCompletedEvent]: Emitted exactly once when the run finalizes
//
// Phase progress:
//   - [PhaseChangedEvent]: Emitted on every phase transition
//   - [PhaseCompletedEvent]: Emitted with the recorded phase duration
//
// Markers:
//   - [MarkerEmittedEvent]: Emitted when a marker reaches the sink
//   - [SicknessReportedEvent]: Emitted on an accepted sickness report
package event
