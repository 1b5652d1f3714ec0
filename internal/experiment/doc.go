// Package experiment provides the top-level controller for one experiment
// run. The controller owns the immutable run configuration, the phase
// sequencer's lifecycle, the marker queue, and the sickness reporter, and
// aggregates recorded phase durations.
//
// The controller is idle until the start trigger, runs the sequence to
// completion, waits for the exit confirmation, then finalizes exactly once:
// observers receive an ExperimentCompletedEvent and the textual summary
// becomes available.
//
// # Driving Model
//
// Everything is advanced by [Controller.Tick], invoked once per rendered
// frame by an external driver (the TUI or the headless loop). Input arrives
// through explicit method calls (Start, Confirm, ReportSickness,
// CompleteActiveTask) made from that same goroutine; the core carries no
// locks by the single-tick-thread concurrency contract.
package experiment
