package sequencer

import (
	"time"

	"github.com/vectionlab/vection/internal/errors"
	"github.com/vectionlab/vection/internal/event"
	"github.com/vectionlab/vection/internal/logging"
	"github.com/vectionlab/vection/internal/marker"
	"github.com/vectionlab/vection/internal/phase"
)

// Display is the participant-facing collaborator. All calls are
// fire-and-forget; the sequencer never depends on a response.
type Display interface {
	ShowPrompt(text string)
	UpdateTimer(label string, remaining time.Duration)
	HideDisplay()
}

// nopDisplay is the degraded path when no display is wired.
type nopDisplay struct{}

func (nopDisplay) ShowPrompt(string)                 {}
func (nopDisplay) UpdateTimer(string, time.Duration) {}
func (nopDisplay) HideDisplay()                      {}

// Config wires a Sequencer's collaborators. Queue and Phases are required;
// Display and Adapters may be absent, in which case the affected phases
// degrade loudly instead of failing.
type Config struct {
	Phases   []phase.Phase
	Queue    *marker.Queue
	Display  Display
	Adapters map[phase.Name]phase.TaskAdapter
	Bus      *event.Bus
	Logger   *logging.Logger
}

// Sequencer walks the phase list one tick at a time. It is driven from a
// single goroutine and keeps no locks by the runner's concurrency contract.
type Sequencer struct {
	phases   []phase.Phase
	queue    *marker.Queue
	display  Display
	adapters map[phase.Name]phase.TaskAdapter
	bus      *event.Bus
	log      *logging.Logger

	idx        int
	entered    bool
	phaseStart time.Time
	lastTick   time.Time
	timer      *phase.Timer
	taskDone   bool
	halted     bool

	records map[phase.Name]float64
	order   []phase.Name
}

// New creates a Sequencer for the given phase list.
func New(cfg Config) (*Sequencer, error) {
	if cfg.Queue == nil {
		return nil, errors.New("sequencer: Queue is required")
	}
	if len(cfg.Phases) == 0 {
		return nil, errors.New("sequencer: Phases is required")
	}

	display := cfg.Display
	if display == nil {
		display = nopDisplay{}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NopLogger()
	}

	return &Sequencer{
		phases:   cfg.Phases,
		queue:    cfg.Queue,
		display:  display,
		adapters: cfg.Adapters,
		bus:      cfg.Bus,
		log:      log.WithComponent("sequencer"),
		records:  make(map[phase.Name]float64),
	}, nil
}

// Tick advances the sequence by one frame. It returns StatusComplete once
// every phase has resolved (or after Halt); the driver stops ticking then.
func (s *Sequencer) Tick(now time.Time) phase.Status {
	if s.halted || s.idx >= len(s.phases) {
		return phase.StatusComplete
	}

	if !s.entered {
		s.enterPhase(now)
	}
	s.tickBody(now)

	if s.idx >= len(s.phases) {
		return phase.StatusComplete
	}
	return phase.StatusRunning
}

// Current returns the active phase, if any.
func (s *Sequencer) Current() (phase.Phase, bool) {
	if s.halted || s.idx >= len(s.phases) {
		return phase.Phase{}, false
	}
	return s.phases[s.idx], true
}

// Remaining returns the active timer phase's remaining time. The second
// result is false when the current phase is not timer-driven.
func (s *Sequencer) Remaining() (time.Duration, bool) {
	if s.timer == nil || !s.entered {
		return 0, false
	}
	return s.timer.Remaining(), true
}

// CompleteTask delivers the active task's completion signal. The signal is
// single-shot per activation: duplicates and signals outside a task-bound
// phase are warned about and ignored, never fatal.
func (s *Sequencer) CompleteTask() {
	cur, ok := s.Current()
	if !ok || !s.entered || cur.Kind != phase.KindTaskBound {
		s.log.Warn("completion signal outside a task phase ignored")
		return
	}
	if s.taskDone {
		s.log.Warn("duplicate completion signal ignored", "task", string(cur.Name))
		return
	}
	s.taskDone = true
	s.log.Debug("task completion signalled", "task", string(cur.Name))
}

// Halt tears the sequence down mid-phase. The in-flight phase's End marker
// is not emitted and its duration is not recorded; durations of already
// finished phases are kept as-is. Halt is idempotent.
func (s *Sequencer) Halt() {
	if s.halted {
		return
	}
	if cur, ok := s.Current(); ok && s.entered && cur.Kind == phase.KindTaskBound {
		if adapter := s.adapters[cur.Name]; adapter != nil {
			adapter.Deactivate()
		}
	}
	s.display.HideDisplay()
	s.halted = true
	s.log.Info("sequence halted", "phase_index", s.idx)
}

// Duration returns the recorded wall-clock seconds for a phase name.
func (s *Sequencer) Duration(name phase.Name) (float64, bool) {
	secs, ok := s.records[name]
	return secs, ok
}

// Durations returns a copy of the recorded phase durations.
func (s *Sequencer) Durations() map[phase.Name]float64 {
	out := make(map[phase.Name]float64, len(s.records))
	for name, secs := range s.records {
		out[name] = secs
	}
	return out
}

// RecordedOrder returns the phase names in first-recorded order.
func (s *Sequencer) RecordedOrder() []phase.Name {
	out := make([]phase.Name, len(s.order))
	copy(out, s.order)
	return out
}

// enterPhase emits the Begin marker, then performs the phase's activation
// side effects. The marker is enqueued first so Begin precedes activation
// in the end-to-end marker order.
func (s *Sequencer) enterPhase(now time.Time) {
	p := s.phases[s.idx]

	s.queue.Enqueue(marker.BeginFor(p.Name))
	s.publishPhaseChanged(p.Name)

	s.entered = true
	s.phaseStart = now
	s.lastTick = now
	s.timer = nil
	s.taskDone = false

	s.display.ShowPrompt(p.Label())

	switch p.Kind {
	case phase.KindTimer:
		s.timer = phase.NewTimer(p.Duration)
		s.log.Info("phase started", "phase", string(p.Name), "duration", p.Duration.Seconds())

	case phase.KindTaskBound:
		adapter := s.adapters[p.Name]
		if adapter == nil {
			// Fail fast: resolve the phase immediately rather than hang
			// the whole sequence on a collaborator that will never signal.
			s.log.Error("task adapter missing, resolving phase immediately",
				"task", string(p.Name), "error", errors.ErrNoAdapter.Error())
			s.taskDone = true
			return
		}
		adapter.Activate()
		s.log.Info("phase started", "phase", string(p.Name))
	}
}

// tickBody runs one tick of the active phase's body and resolves the phase
// when the body completes.
func (s *Sequencer) tickBody(now time.Time) {
	p := s.phases[s.idx]
	delta := now.Sub(s.lastTick)
	s.lastTick = now

	switch p.Kind {
	case phase.KindTimer:
		st := s.timer.Tick(delta)
		s.display.UpdateTimer(p.Label(), s.timer.Remaining())
		if st == phase.StatusComplete {
			s.finishPhase(now)
		}

	case phase.KindTaskBound:
		if !s.taskDone {
			return
		}
		if adapter := s.adapters[p.Name]; adapter != nil {
			adapter.Deactivate()
		}
		s.finishPhase(now)
	}
}

// finishPhase emits the End marker, records the phase duration, and advances
// to the next phase. Multiple Rest phases share the "Rest" record key, so
// only the last one's duration survives in the mapping; each one is still
// logged individually.
func (s *Sequencer) finishPhase(now time.Time) {
	p := s.phases[s.idx]

	s.queue.Enqueue(marker.EndFor(p.Name))

	secs := now.Sub(s.phaseStart).Seconds()
	if _, seen := s.records[p.Name]; !seen {
		s.order = append(s.order, p.Name)
	}
	s.records[p.Name] = secs

	s.log.Info("phase finished", "phase", string(p.Name), "seconds", secs)
	if s.bus != nil {
		s.bus.Publish(event.NewPhaseCompletedEvent(string(p.Name), secs))
	}

	s.display.HideDisplay()
	s.idx++
	s.entered = false
	s.timer = nil
}

func (s *Sequencer) publishPhaseChanged(to phase.Name) {
	if s.bus == nil {
		return
	}
	from := ""
	if s.idx > 0 {
		from = string(s.phases[s.idx-1].Name)
	}
	s.bus.Publish(event.NewPhaseChangedEvent(from, string(to)))
}
