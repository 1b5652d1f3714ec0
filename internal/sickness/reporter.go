// Package sickness implements the debounced participant sickness report.
//
// The reporter runs concurrently with the phase sequence and never perturbs
// it: an accepted report enqueues a single Sickness marker, opens a timed
// visual acknowledgment window, and locks further reports for a cooldown so
// a held trigger cannot flood the recording with markers.
package sickness

import (
	"time"

	"github.com/vectionlab/vection/internal/event"
	"github.com/vectionlab/vection/internal/logging"
	"github.com/vectionlab/vection/internal/marker"
)

// Enqueuer is the marker-queue side the reporter needs. Satisfied by
// *marker.Queue.
type Enqueuer interface {
	Enqueue(kind marker.Kind)
}

// Config wires a Reporter. Queue is required. Cooldown and AckWindow
// default to 5s when zero. They are usually configured equal but are
// independent settings.
type Config struct {
	Queue     Enqueuer
	Bus       *event.Bus
	Logger    *logging.Logger
	Cooldown  time.Duration
	AckWindow time.Duration
}

// DefaultCooldown is used when no cooldown is configured.
const DefaultCooldown = 5 * time.Second

// Reporter detects the participant's "I feel sick" trigger with edge logic:
// a report is accepted only while unlocked, so holding the trigger produces
// exactly one marker per cooldown window rather than one per tick.
//
// All methods are called from the single tick goroutine.
type Reporter struct {
	queue    Enqueuer
	bus      *event.Bus
	log      *logging.Logger
	cooldown time.Duration
	ack      time.Duration

	locked   bool
	unlockAt time.Time
	ackUntil time.Time

	reports int
}

// New creates a Reporter.
func New(cfg Config) *Reporter {
	log := cfg.Logger
	if log == nil {
		log = logging.NopLogger()
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	ack := cfg.AckWindow
	if ack <= 0 {
		ack = cooldown
	}

	return &Reporter{
		queue:    cfg.Queue,
		bus:      cfg.Bus,
		log:      log.WithComponent("sickness"),
		cooldown: cooldown,
		ack:      ack,
	}
}

// Tick advances the reporter's timers and processes the trigger level for
// this frame. triggerActive is the raw (possibly held) trigger state.
func (r *Reporter) Tick(now time.Time, triggerActive bool) {
	if r.locked && !now.Before(r.unlockAt) {
		r.locked = false
	}

	// Edge condition: !locked && triggerActive, never triggerActive alone.
	if triggerActive && !r.locked {
		r.accept(now, false)
	}
}

// Report attempts a report at the given instant, respecting the lock.
// Returns true when the report was accepted.
func (r *Reporter) Report(now time.Time) bool {
	if r.locked && !now.Before(r.unlockAt) {
		r.locked = false
	}
	if r.locked {
		return false
	}
	r.accept(now, false)
	return true
}

// ForceReport performs the same effect programmatically. It respects the
// same lock as the physical trigger.
func (r *Reporter) ForceReport(now time.Time) bool {
	if r.locked && !now.Before(r.unlockAt) {
		r.locked = false
	}
	if r.locked {
		r.log.Debug("forced sickness report suppressed by cooldown")
		return false
	}
	r.accept(now, true)
	return true
}

// accept records one sickness report: marker, lock, acknowledgment window.
func (r *Reporter) accept(now time.Time, forced bool) {
	r.locked = true
	r.unlockAt = now.Add(r.cooldown)
	r.ackUntil = now.Add(r.ack)
	r.reports++

	if r.queue != nil {
		r.queue.Enqueue(marker.KindSickness)
	}
	if r.bus != nil {
		r.bus.Publish(event.NewSicknessReportedEvent(forced))
	}
	r.log.Info("sickness reported", "forced", forced, "count", r.reports)
}

// Acknowledging reports whether the visual acknowledgment window is open.
func (r *Reporter) Acknowledging(now time.Time) bool {
	return now.Before(r.ackUntil)
}

// Locked reports whether the cooldown lock is currently held.
func (r *Reporter) Locked(now time.Time) bool {
	return r.locked && now.Before(r.unlockAt)
}

// Count returns how many reports have been accepted this run.
func (r *Reporter) Count() int {
	return r.reports
}
