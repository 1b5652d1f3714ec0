package sickness

import (
	"testing"
	"time"

	"github.com/vectionlab/vection/internal/event"
	"github.com/vectionlab/vection/internal/marker"
)

// countingQueue records enqueued marker kinds.
type countingQueue struct {
	kinds []marker.Kind
}

func (q *countingQueue) Enqueue(kind marker.Kind) {
	q.kinds = append(q.kinds, kind)
}

func (q *countingQueue) sicknessCount() int {
	n := 0
	for _, k := range q.kinds {
		if k == marker.KindSickness {
			n++
		}
	}
	return n
}

func TestReporter_HeldTriggerDebounced(t *testing.T) {
	queue := &countingQueue{}
	cooldown := 5 * time.Second
	r := New(Config{Queue: queue, Cooldown: cooldown})

	// Hold the trigger continuously for 3x the cooldown at a 100ms tick:
	// exactly one marker per cooldown window, not one per tick.
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := 100 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < 3*cooldown; elapsed += tick {
		r.Tick(now.Add(elapsed), true)
	}

	if got := queue.sicknessCount(); got != 3 {
		t.Errorf("held trigger for 3 cooldowns produced %d markers, want 3", got)
	}
}

func TestReporter_SingleTapSingleMarker(t *testing.T) {
	queue := &countingQueue{}
	r := New(Config{Queue: queue, Cooldown: 5 * time.Second})

	now := time.Now()
	r.Tick(now, true)
	for i := 1; i <= 10; i++ {
		r.Tick(now.Add(time.Duration(i)*100*time.Millisecond), false)
	}

	if got := queue.sicknessCount(); got != 1 {
		t.Errorf("single tap produced %d markers, want 1", got)
	}
}

func TestReporter_UnlocksAfterCooldown(t *testing.T) {
	queue := &countingQueue{}
	r := New(Config{Queue: queue, Cooldown: 2 * time.Second})

	now := time.Now()
	if !r.Report(now) {
		t.Fatal("first report should be accepted")
	}
	if r.Report(now.Add(time.Second)) {
		t.Error("report inside cooldown should be suppressed")
	}
	if !r.Report(now.Add(2 * time.Second)) {
		t.Error("report at cooldown expiry should be accepted")
	}
	if got := queue.sicknessCount(); got != 2 {
		t.Errorf("expected 2 markers, got %d", got)
	}
}

func TestReporter_ForceReportRespectsLock(t *testing.T) {
	queue := &countingQueue{}
	r := New(Config{Queue: queue, Cooldown: 5 * time.Second})

	now := time.Now()
	if !r.ForceReport(now) {
		t.Fatal("forced report should be accepted when unlocked")
	}
	if r.ForceReport(now.Add(time.Second)) {
		t.Error("forced report must respect the same lock as the trigger")
	}
	if r.Report(now.Add(time.Second)) {
		t.Error("trigger report must be locked out after a forced report")
	}
}

func TestReporter_AcknowledgmentWindow(t *testing.T) {
	r := New(Config{
		Queue:     &countingQueue{},
		Cooldown:  5 * time.Second,
		AckWindow: 2 * time.Second,
	})

	now := time.Now()
	if r.Acknowledging(now) {
		t.Error("no acknowledgment before any report")
	}

	r.Report(now)
	if !r.Acknowledging(now.Add(time.Second)) {
		t.Error("acknowledgment window should be open 1s after report")
	}
	if r.Acknowledging(now.Add(3 * time.Second)) {
		t.Error("acknowledgment window should close after 2s while lock persists")
	}
	if !r.Locked(now.Add(3 * time.Second)) {
		t.Error("lock should outlast the shorter acknowledgment window")
	}
}

func TestReporter_AckDefaultsToCooldown(t *testing.T) {
	r := New(Config{Queue: &countingQueue{}, Cooldown: 4 * time.Second})

	now := time.Now()
	r.Report(now)

	// With no explicit ack window the two durations share one constant.
	if !r.Acknowledging(now.Add(3 * time.Second)) {
		t.Error("ack window should default to the cooldown duration")
	}
	if r.Acknowledging(now.Add(5 * time.Second)) {
		t.Error("ack window should close with the cooldown")
	}
}

func TestReporter_PublishesEvents(t *testing.T) {
	bus := event.NewBus()
	var forced []bool
	bus.Subscribe("sickness.reported", func(e event.Event) {
		forced = append(forced, e.(event.SicknessReportedEvent).Forced)
	})

	r := New(Config{Queue: &countingQueue{}, Bus: bus, Cooldown: time.Second})
	now := time.Now()
	r.Report(now)
	r.ForceReport(now.Add(2 * time.Second))

	if len(forced) != 2 || forced[0] != false || forced[1] != true {
		t.Errorf("expected [false true] forced flags, got %v", forced)
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
}

func TestReporter_NilQueueDoesNotPanic(t *testing.T) {
	r := New(Config{Cooldown: time.Second})
	r.Tick(time.Now(), true)
	if r.Count() != 1 {
		t.Errorf("report should still be counted without a queue, got %d", r.Count())
	}
}
