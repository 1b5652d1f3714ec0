package marker

import (
	"time"

	"github.com/vectionlab/vection/internal/event"
	"github.com/vectionlab/vection/internal/logging"
)

// Queue is the FIFO of pending markers. Enqueue is non-blocking and never
// rejects; DrainOne dispatches at most one marker per tick so marker
// bookkeeping never blocks the frame that raised it.
//
// All methods are called from the single tick goroutine; the queue carries
// no locks by the runner's single-writer concurrency contract.
type Queue struct {
	items []Kind
	sink  Sink
	bus   *event.Bus
	log   *logging.Logger

	warnedNoSink bool
}

// QueueConfig wires the queue's collaborators. Sink may be nil: marker
// emission then degrades to a warned no-op, never a failure.
type QueueConfig struct {
	Sink   Sink
	Bus    *event.Bus
	Logger *logging.Logger
}

// NewQueue creates a marker queue.
func NewQueue(cfg QueueConfig) *Queue {
	log := cfg.Logger
	if log == nil {
		log = logging.NopLogger()
	}
	return &Queue{
		sink: cfg.Sink,
		bus:  cfg.Bus,
		log:  log.WithComponent("markers"),
	}
}

// Enqueue appends a marker to the queue. It is unconditional: the queue is
// unbounded and preserves FIFO order end-to-end.
func (q *Queue) Enqueue(kind Kind) {
	q.items = append(q.items, kind)
}

// Len returns the number of pending markers.
func (q *Queue) Len() int {
	return len(q.items)
}

// DrainOne pops the oldest pending marker, if any, and dispatches it with
// the given timestamp. Returns true when a marker was dispatched.
//
// Unrecognized kinds are reported as warnings and dropped without halting
// the drain; a missing sink degrades to a log-only path.
func (q *Queue) DrainOne(now time.Time) bool {
	if len(q.items) == 0 {
		return false
	}

	kind := q.items[0]
	q.items = q.items[1:]
	q.dispatch(kind, now)
	return true
}

// dispatch resolves a marker against the closed vocabulary and pushes it to
// the sink. The explicit switch is the whole dispatch table: adding a marker
// means adding a case here, and anything else is a protocol violation.
func (q *Queue) dispatch(kind Kind, now time.Time) {
	switch kind {
	case KindStart, KindEnd,
		KindMindfulnessBegin, KindMindfulnessEnd,
		KindRestBegin, KindRestEnd,
		KindVisitBegin, KindVisitEnd,
		KindSelectBegin, KindSelectEnd,
		KindManiBegin, KindManiEnd,
		KindSickness:
		q.push(kind, now)
	default:
		q.log.Warn("unrecognized marker dropped", "kind", int(kind))
	}
}

// push delivers the marker to the sink and announces it on the bus.
func (q *Queue) push(kind Kind, now time.Time) {
	if q.sink == nil {
		if !q.warnedNoSink {
			q.log.Warn("no marker sink configured, markers are log-only")
			q.warnedNoSink = true
		}
		q.log.Info("marker (no sink)", "name", kind.String())
	} else {
		q.sink.Push(kind, now)
	}

	if q.bus != nil {
		q.bus.Publish(event.NewMarkerEmittedEvent(kind.String(), now))
	}
}
