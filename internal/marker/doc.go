// Package marker implements the event-marker pipeline that synchronizes the
// experiment protocol with the external physiological recording.
//
// Markers are drawn from a closed vocabulary ([Kind]) and flow through a
// FIFO [Queue] that drains at most one marker per tick into a [Sink]. The
// one-per-tick drain bounds peak work per frame and decouples marker
// bookkeeping from the timing-critical phase loop; the resulting
// marker-to-sink latency is bounded by queue depth times tick period, which
// is acceptable because markers are informational and never drive phase
// control.
//
// # Main Types
//
//   - [Kind]: Tagged marker variant (Start, MindfulnessBegin, ..., Sickness)
//   - [Queue]: Unbounded FIFO with one-per-tick drain and explicit dispatch
//   - [Sink]: The recording-side collaborator ([FileSink], [LogSink], [MultiSink])
package marker
