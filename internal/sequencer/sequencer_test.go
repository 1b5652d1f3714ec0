package sequencer

import (
	"testing"
	"time"

	"github.com/vectionlab/vection/internal/marker"
	"github.com/vectionlab/vection/internal/phase"
)

// orderSink records every marker name pushed, in sink order.
type orderSink struct {
	names []string
}

func (s *orderSink) Push(kind marker.Kind, _ time.Time) {
	s.names = append(s.names, kind.String())
}

// fakeAdapter records activation side effects into a shared trace so tests
// can assert marker-vs-activation ordering.
type fakeAdapter struct {
	name  string
	trace *[]string
}

func (a *fakeAdapter) Activate()   { *a.trace = append(*a.trace, a.name+".activate") }
func (a *fakeAdapter) Deactivate() { *a.trace = append(*a.trace, a.name+".deactivate") }

// fakeDisplay counts collaborator calls.
type fakeDisplay struct {
	prompts []string
	updates int
	hides   int
}

func (d *fakeDisplay) ShowPrompt(text string)            { d.prompts = append(d.prompts, text) }
func (d *fakeDisplay) UpdateTimer(string, time.Duration) { d.updates++ }
func (d *fakeDisplay) HideDisplay()                      { d.hides++ }

type harness struct {
	seq   *Sequencer
	queue *marker.Queue
	sink  *orderSink
	now   time.Time
	tick  time.Duration
}

func newHarness(t *testing.T, spec phase.SequenceSpec, adapters map[phase.Name]phase.TaskAdapter, display Display) *harness {
	t.Helper()

	sink := &orderSink{}
	queue := marker.NewQueue(marker.QueueConfig{Sink: sink})

	seq, err := New(Config{
		Phases:   phase.BuildSequence(spec),
		Queue:    queue,
		Display:  display,
		Adapters: adapters,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	return &harness{
		seq:   seq,
		queue: queue,
		sink:  sink,
		now:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		tick:  100 * time.Millisecond,
	}
}

// step advances one frame: one sequencer tick, one marker drain.
func (h *harness) step() phase.Status {
	h.now = h.now.Add(h.tick)
	st := h.seq.Tick(h.now)
	h.queue.DrainOne(h.now)
	return st
}

// runToCompletion steps until the sequence completes, then drains the
// remaining markers.
func (h *harness) runToCompletion(t *testing.T, maxTicks int) {
	t.Helper()
	for i := 0; ; i++ {
		if i > maxTicks {
			t.Fatal("sequence did not complete within tick budget")
		}
		if h.step() == phase.StatusComplete {
			break
		}
	}
	for h.queue.DrainOne(h.now) {
	}
}

func TestSequencer_EndToEndVisitOnly(t *testing.T) {
	trace := []string{}
	adapters := map[phase.Name]phase.TaskAdapter{
		phase.Visit: &fakeAdapter{name: "visit", trace: &trace},
	}

	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 1 * time.Second,
		RestDuration:        500 * time.Millisecond,
		EnableVisit:         true,
	}, adapters, nil)

	// Run until the Visit phase is waiting on its signal.
	for i := 0; i < 200; i++ {
		h.step()
		if cur, ok := h.seq.Current(); ok && cur.Name == phase.Visit {
			break
		}
	}
	cur, ok := h.seq.Current()
	if !ok || cur.Name != phase.Visit {
		t.Fatal("sequence never reached the Visit phase")
	}

	// A few idle ticks: a task-bound phase waits indefinitely.
	for i := 0; i < 5; i++ {
		if st := h.step(); st != phase.StatusRunning {
			t.Fatal("task phase should keep running until signalled")
		}
	}

	h.seq.CompleteTask()
	h.runToCompletion(t, 50)

	want := []string{
		"MindfulnessBegin", "MindfulnessEnd",
		"RestBegin", "RestEnd",
		"VisitBegin", "VisitEnd",
	}
	if len(h.sink.names) != len(want) {
		t.Fatalf("marker sequence = %v, want %v", h.sink.names, want)
	}
	for i := range want {
		if h.sink.names[i] != want[i] {
			t.Fatalf("marker sequence = %v, want %v", h.sink.names, want)
		}
	}

	if len(trace) != 2 || trace[0] != "visit.activate" || trace[1] != "visit.deactivate" {
		t.Errorf("adapter trace = %v, want [visit.activate visit.deactivate]", trace)
	}
}

func TestSequencer_ExactlyOneBeginOneEndPerPhase(t *testing.T) {
	trace := []string{}
	adapters := map[phase.Name]phase.TaskAdapter{
		phase.Visit:        &fakeAdapter{name: "visit", trace: &trace},
		phase.Select:       &fakeAdapter{name: "select", trace: &trace},
		phase.Manipulation: &fakeAdapter{name: "mani", trace: &trace},
	}

	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 300 * time.Millisecond,
		RestDuration:        200 * time.Millisecond,
		EnableVisit:         true,
		EnableSelect:        true,
		EnableManipulation:  true,
	}, adapters, nil)

	for i := 0; i < 500; i++ {
		st := h.step()
		if cur, ok := h.seq.Current(); ok && cur.Kind == phase.KindTaskBound {
			h.seq.CompleteTask()
		}
		if st == phase.StatusComplete {
			break
		}
	}
	for h.queue.DrainOne(h.now) {
	}

	counts := map[string]int{}
	for _, name := range h.sink.names {
		counts[name]++
	}
	for _, name := range []string{
		"MindfulnessBegin", "MindfulnessEnd",
		"VisitBegin", "VisitEnd",
		"SelectBegin", "SelectEnd",
		"ManiBegin", "ManiEnd",
	} {
		if counts[name] != 1 {
			t.Errorf("marker %s emitted %d times, want exactly 1", name, counts[name])
		}
	}
	// Three rest phases, one per enabled task.
	if counts["RestBegin"] != 3 || counts["RestEnd"] != 3 {
		t.Errorf("Rest markers = %d begin / %d end, want 3/3", counts["RestBegin"], counts["RestEnd"])
	}

	// Begin always precedes the matching End, no re-entrancy in between.
	open := map[string]bool{}
	for _, name := range h.sink.names {
		if p, isBegin := cutSuffix(name, "Begin"); isBegin {
			if open[p] {
				t.Errorf("two %sBegin markers without intervening End", p)
			}
			open[p] = true
			continue
		}
		if p, isEnd := cutSuffix(name, "End"); isEnd {
			if !open[p] {
				t.Errorf("%sEnd without preceding Begin", p)
			}
			open[p] = false
		}
	}
}

func cutSuffix(s, suffix string) (string, bool) {
	if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)], true
	}
	return s, false
}

// drainingAdapter flushes all pending markers into the trace before
// recording its own side effect, so the trace reflects enqueue order.
type drainingAdapter struct {
	name  string
	trace *[]string
	queue *marker.Queue
	now   *time.Time
}

func (a *drainingAdapter) flush() {
	for a.queue.DrainOne(*a.now) {
	}
}

func (a *drainingAdapter) Activate() {
	a.flush()
	*a.trace = append(*a.trace, a.name+".activate")
}

func (a *drainingAdapter) Deactivate() {
	a.flush()
	*a.trace = append(*a.trace, a.name+".deactivate")
}

func TestSequencer_BeginPrecedesActivationPrecedesEnd(t *testing.T) {
	trace := []string{}
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sink := marker.SinkFunc(func(kind marker.Kind, _ time.Time) {
		trace = append(trace, kind.String())
	})
	queue := marker.NewQueue(marker.QueueConfig{Sink: sink})
	adapter := &drainingAdapter{name: "select", trace: &trace, queue: queue, now: &now}

	seq, err := New(Config{
		Phases: phase.BuildSequence(phase.SequenceSpec{
			RestDuration: 100 * time.Millisecond,
			EnableSelect: true,
		}),
		Queue: queue,
		Adapters: map[phase.Name]phase.TaskAdapter{
			phase.Select: adapter,
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		now = now.Add(50 * time.Millisecond)
		st := seq.Tick(now)
		for queue.DrainOne(now) {
		}
		if cur, ok := seq.Current(); ok && cur.Name == phase.Select {
			seq.CompleteTask()
		}
		if st == phase.StatusComplete {
			break
		}
	}

	idxOf := func(s string) int {
		for i, v := range trace {
			if v == s {
				return i
			}
		}
		t.Fatalf("trace %v missing %s", trace, s)
		return -1
	}

	if !(idxOf("SelectBegin") < idxOf("select.activate")) {
		t.Errorf("SelectBegin must precede activation: %v", trace)
	}
	if !(idxOf("select.activate") < idxOf("select.deactivate")) {
		t.Errorf("activation must precede deactivation: %v", trace)
	}
	if !(idxOf("select.deactivate") < idxOf("SelectEnd")) {
		t.Errorf("SelectEnd must follow deactivation: %v", trace)
	}
}

func TestSequencer_DuplicateCompletionIgnored(t *testing.T) {
	trace := []string{}
	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 100 * time.Millisecond,
		RestDuration:        100 * time.Millisecond,
		EnableVisit:         true,
	}, map[phase.Name]phase.TaskAdapter{
		phase.Visit: &fakeAdapter{name: "visit", trace: &trace},
	}, nil)

	for i := 0; i < 100; i++ {
		h.step()
		if cur, ok := h.seq.Current(); ok && cur.Name == phase.Visit {
			break
		}
	}

	// The second and third signals must be state-corruption-free no-ops.
	h.seq.CompleteTask()
	h.seq.CompleteTask()
	h.seq.CompleteTask()
	h.runToCompletion(t, 20)

	count := 0
	for _, name := range h.sink.names {
		if name == "VisitEnd" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("VisitEnd emitted %d times after triple signal, want 1", count)
	}
	if len(trace) != 2 {
		t.Errorf("adapter should activate/deactivate once each, trace = %v", trace)
	}
}

func TestSequencer_MissingAdapterResolvesImmediately(t *testing.T) {
	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 100 * time.Millisecond,
		RestDuration:        100 * time.Millisecond,
		EnableManipulation:  true,
	}, nil, nil) // no adapters wired at all

	h.runToCompletion(t, 100)

	want := []string{
		"MindfulnessBegin", "MindfulnessEnd",
		"RestBegin", "RestEnd",
		"ManiBegin", "ManiEnd",
	}
	if len(h.sink.names) != len(want) {
		t.Fatalf("marker sequence = %v, want %v", h.sink.names, want)
	}
	for i := range want {
		if h.sink.names[i] != want[i] {
			t.Fatalf("marker sequence = %v, want %v", h.sink.names, want)
		}
	}
}

func TestSequencer_TimerPhaseReportsRemaining(t *testing.T) {
	display := &fakeDisplay{}
	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 500 * time.Millisecond,
	}, nil, display)

	h.runToCompletion(t, 100)

	if len(display.prompts) == 0 || display.prompts[0] != "Mindfulness" {
		t.Errorf("expected Mindfulness prompt, got %v", display.prompts)
	}
	if display.updates == 0 {
		t.Error("timer phase should report remaining time each tick")
	}
	if display.hides == 0 {
		t.Error("display should be hidden when the phase resolves")
	}
}

func TestSequencer_RestPromptNamesUpcomingTask(t *testing.T) {
	display := &fakeDisplay{}
	trace := []string{}
	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 100 * time.Millisecond,
		RestDuration:        100 * time.Millisecond,
		EnableSelect:        true,
	}, map[phase.Name]phase.TaskAdapter{
		phase.Select: &fakeAdapter{name: "select", trace: &trace},
	}, display)

	for i := 0; i < 100; i++ {
		h.step()
		if cur, ok := h.seq.Current(); ok && cur.Name == phase.Select {
			h.seq.CompleteTask()
		}
		if _, ok := h.seq.Current(); !ok {
			break
		}
	}

	found := false
	for _, p := range display.prompts {
		if p == "Rest (next: Select)" {
			found = true
		}
	}
	if !found {
		t.Errorf("rest prompt should name the upcoming task, prompts = %v", display.prompts)
	}
}

func TestSequencer_DurationRecording(t *testing.T) {
	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 500 * time.Millisecond,
	}, nil, nil)

	if _, ok := h.seq.Duration(phase.Mindfulness); ok {
		t.Error("duration should not be recorded before the phase runs")
	}

	h.runToCompletion(t, 100)

	secs, ok := h.seq.Duration(phase.Mindfulness)
	if !ok {
		t.Fatal("mindfulness duration should be recorded")
	}
	if secs < 0.5 {
		t.Errorf("recorded %vs, want >= 0.5s", secs)
	}
	if secs >= 0.5+h.tick.Seconds() {
		t.Errorf("recorded %vs, want < duration + one tick", secs)
	}
}

func TestSequencer_RestRecordOverwritten(t *testing.T) {
	trace := []string{}
	adapters := map[phase.Name]phase.TaskAdapter{
		phase.Visit:  &fakeAdapter{name: "visit", trace: &trace},
		phase.Select: &fakeAdapter{name: "select", trace: &trace},
	}
	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 100 * time.Millisecond,
		RestDuration:        200 * time.Millisecond,
		EnableVisit:         true,
		EnableSelect:        true,
	}, adapters, nil)

	for i := 0; i < 500; i++ {
		st := h.step()
		if cur, ok := h.seq.Current(); ok && cur.Kind == phase.KindTaskBound {
			h.seq.CompleteTask()
		}
		if st == phase.StatusComplete {
			break
		}
	}

	// Two rest phases ran but the mapping holds a single "Rest" entry:
	// last writer wins, by design.
	durations := h.seq.Durations()
	if _, ok := durations[phase.Rest]; !ok {
		t.Fatal("Rest duration should be recorded")
	}

	order := h.seq.RecordedOrder()
	restCount := 0
	for _, n := range order {
		if n == phase.Rest {
			restCount++
		}
	}
	if restCount != 1 {
		t.Errorf("Rest should appear once in recorded order, got %d", restCount)
	}
}

func TestSequencer_HaltSkipsEndMarker(t *testing.T) {
	trace := []string{}
	h := newHarness(t, phase.SequenceSpec{
		MindfulnessDuration: 100 * time.Millisecond,
		RestDuration:        100 * time.Millisecond,
		EnableVisit:         true,
	}, map[phase.Name]phase.TaskAdapter{
		phase.Visit: &fakeAdapter{name: "visit", trace: &trace},
	}, nil)

	for i := 0; i < 100; i++ {
		h.step()
		if cur, ok := h.seq.Current(); ok && cur.Name == phase.Visit {
			break
		}
	}

	h.seq.Halt()
	for h.queue.DrainOne(h.now) {
	}

	for _, name := range h.sink.names {
		if name == "VisitEnd" {
			t.Error("halt must not emit the in-flight phase's End marker")
		}
	}
	// The adapter is still deactivated so the task module releases input.
	if trace[len(trace)-1] != "visit.deactivate" {
		t.Errorf("halt should deactivate the active adapter, trace = %v", trace)
	}

	// Already-recorded durations survive teardown.
	if _, ok := h.seq.Duration(phase.Mindfulness); !ok {
		t.Error("durations recorded before halt must be kept")
	}
	if st := h.seq.Tick(h.now.Add(time.Second)); st != phase.StatusComplete {
		t.Error("ticking after halt should report completion")
	}
}

func TestSequencer_RequiresQueueAndPhases(t *testing.T) {
	if _, err := New(Config{Phases: phase.BuildSequence(phase.SequenceSpec{})}); err == nil {
		t.Error("New should fail without a queue")
	}
	if _, err := New(Config{Queue: marker.NewQueue(marker.QueueConfig{})}); err == nil {
		t.Error("New should fail without phases")
	}
}
