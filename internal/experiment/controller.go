package experiment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vectionlab/vection/internal/errors"
	"github.com/vectionlab/vection/internal/event"
	"github.com/vectionlab/vection/internal/logging"
	"github.com/vectionlab/vection/internal/marker"
	"github.com/vectionlab/vection/internal/phase"
	"github.com/vectionlab/vection/internal/sequencer"
	"github.com/vectionlab/vection/internal/sickness"
)

// Config wires a Controller. Spec is required; every collaborator may be
// absent, degrading that concern to a logged no-op rather than failing;
// the design never aborts a live human-subjects session over wiring.
type Config struct {
	Spec     phase.SequenceSpec
	Adapters map[phase.Name]phase.TaskAdapter
	Display  sequencer.Display
	Sink     marker.Sink
	Bus      *event.Bus
	Logger   *logging.Logger

	// RunID defaults to a fresh UUID.
	RunID string

	// SicknessCooldown and SicknessAck configure the reporter; zero values
	// use package defaults.
	SicknessCooldown time.Duration
	SicknessAck      time.Duration
}

// Controller owns one experiment run end to end.
type Controller struct {
	state State
	runID string
	spec  phase.SequenceSpec

	seq      *sequencer.Sequencer
	queue    *marker.Queue
	reporter *sickness.Reporter
	display  sequencer.Display
	bus      *event.Bus
	log      *logging.Logger

	lastTick    time.Time
	triggerHeld bool
	halted      bool
	finalized   bool
}

// New creates a Controller and materializes the phase sequence from the
// spec. The configuration is read once here; later changes to the caller's
// config do not affect the run.
func New(cfg Config) (*Controller, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.NopLogger()
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	log = log.WithRun(runID)

	if cfg.Sink == nil {
		log.Warn("no recording sink configured, markers degrade to log-only")
	}

	queue := marker.NewQueue(marker.QueueConfig{
		Sink:   cfg.Sink,
		Bus:    cfg.Bus,
		Logger: log,
	})

	reporter := sickness.New(sickness.Config{
		Queue:     queue,
		Bus:       cfg.Bus,
		Logger:    log,
		Cooldown:  cfg.SicknessCooldown,
		AckWindow: cfg.SicknessAck,
	})

	display := cfg.Display
	for _, task := range phase.TaskNames() {
		if cfg.Spec.Enabled(task) && cfg.Adapters[task] == nil {
			log.Error("enabled task has no adapter wired, its phase will resolve immediately",
				"task", string(task))
		}
	}

	seq, err := sequencer.New(sequencer.Config{
		Phases:   phase.BuildSequence(cfg.Spec),
		Queue:    queue,
		Display:  display,
		Adapters: cfg.Adapters,
		Bus:      cfg.Bus,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}

	return &Controller{
		state:    StateNotStarted,
		runID:    runID,
		spec:     cfg.Spec,
		seq:      seq,
		queue:    queue,
		reporter: reporter,
		display:  display,
		bus:      cfg.Bus,
		log:      log.WithComponent("controller"),
	}, nil
}

// Tick advances the run by one frame: sequencer progress, one marker drain,
// sickness timers. It is safe to keep ticking in every state; completed and
// halted runs only flush their remaining markers.
func (c *Controller) Tick(now time.Time) {
	c.lastTick = now

	if c.state == StateRunning && !c.halted {
		if c.seq.Tick(now) == phase.StatusComplete {
			c.state = StateAwaitingExit
			c.log.Info("sequence complete, awaiting exit confirmation")
			if c.display != nil {
				c.display.ShowPrompt("Protocol complete — confirm to finish")
			}
		}
	}

	c.reporter.Tick(now, c.triggerHeld)
	c.queue.DrainOne(now)
}

// Start fires the start trigger. It is edge-guarded: a duplicate trigger
// while the run is already underway is reported and ignored.
func (c *Controller) Start() error {
	if c.state != StateNotStarted {
		c.log.Warn("duplicate start trigger ignored", "state", c.state.String())
		return errors.ErrAlreadyStarted
	}

	c.state = StateRunning
	c.queue.Enqueue(marker.KindStart)
	if c.bus != nil {
		c.bus.Publish(event.NewExperimentStartedEvent(c.runID))
	}
	c.log.Info("experiment started")
	return nil
}

// Confirm fires the exit confirmation. Outside AwaitingExit it is reported
// and ignored.
func (c *Controller) Confirm() error {
	if c.state != StateAwaitingExit {
		c.log.Warn("confirm trigger outside awaiting-exit ignored", "state", c.state.String())
		return errors.ErrNotStarted
	}

	c.queue.Enqueue(marker.KindEnd)
	c.state = StateCompleted
	c.finalize()
	return nil
}

// finalize notifies observers exactly once and freezes the run summary.
func (c *Controller) finalize() {
	if c.finalized {
		return
	}
	c.finalized = true

	if c.display != nil {
		c.display.HideDisplay()
	}
	durations := c.AllTaskDurations()
	if c.bus != nil {
		c.bus.Publish(event.NewExperimentCompletedEvent(c.runID, durations))
	}
	c.log.Info("experiment completed", "phases", len(durations))
	for _, line := range strings.Split(c.Summary(), "\n") {
		if line != "" {
			c.log.Info("summary", "line", line)
		}
	}
}

// Halt tears the run down mid-flight: all in-flight suspensions stop, the
// current phase's End marker is not emitted, and already-recorded durations
// are kept as-is. The run is not finalized; a halted run never reaches
// Completed.
func (c *Controller) Halt() {
	if c.halted {
		return
	}
	c.halted = true
	c.seq.Halt()
	c.log.Info("run halted", "state", c.state.String())
}

// ReportSickness delivers a discrete sickness trigger press, independent of
// experiment state. Returns true when the report was accepted (not
// suppressed by the cooldown lock).
func (c *Controller) ReportSickness() bool {
	return c.reporter.Report(c.now())
}

// ForceSicknessMarker performs a programmatic sickness report, respecting
// the same cooldown lock as the physical trigger.
func (c *Controller) ForceSicknessMarker() bool {
	return c.reporter.ForceReport(c.now())
}

// SetSicknessTrigger sets the level of a held sickness trigger, sampled on
// every tick. Level sources get their edge behavior from the reporter lock.
func (c *Controller) SetSicknessTrigger(held bool) {
	c.triggerHeld = held
}

// CompleteActiveTask delivers the active task's completion signal.
func (c *Controller) CompleteActiveTask() {
	c.seq.CompleteTask()
}

// TaskDuration returns the recorded duration in seconds for a phase name.
// Unknown and not-yet-run phases return ErrPhaseNotFound.
func (c *Controller) TaskDuration(name string) (float64, error) {
	n := phase.Name(name)
	if !n.Valid() {
		return 0, fmt.Errorf("%w: %s", errors.ErrPhaseNotFound, name)
	}
	secs, ok := c.seq.Duration(n)
	if !ok {
		return 0, fmt.Errorf("%w: %s", errors.ErrPhaseNotFound, name)
	}
	return secs, nil
}

// AllTaskDurations returns a read-only snapshot of the recorded durations,
// keyed by phase name.
func (c *Controller) AllTaskDurations() map[string]float64 {
	durations := c.seq.Durations()
	out := make(map[string]float64, len(durations))
	for name, secs := range durations {
		out[string(name)] = secs
	}
	return out
}

// Summary renders the deterministic per-phase report, one line per phase in
// recorded order: "<phase>: <duration with 2 decimal places>s".
func (c *Controller) Summary() string {
	var b strings.Builder
	for _, name := range c.seq.RecordedOrder() {
		secs, ok := c.seq.Duration(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %.2fs\n", name, secs)
	}
	return b.String()
}

// State returns the controller's lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// RunID returns this run's identifier.
func (c *Controller) RunID() string {
	return c.runID
}

// CurrentPhase returns the active phase, if any.
func (c *Controller) CurrentPhase() (phase.Phase, bool) {
	if c.state != StateRunning {
		return phase.Phase{}, false
	}
	return c.seq.Current()
}

// PhaseRemaining returns the active timer phase's remaining time.
func (c *Controller) PhaseRemaining() (time.Duration, bool) {
	return c.seq.Remaining()
}

// Acknowledging reports whether the sickness acknowledgment window is open.
func (c *Controller) Acknowledging() bool {
	return c.reporter.Acknowledging(c.now())
}

// SicknessCount returns how many sickness reports were accepted this run.
func (c *Controller) SicknessCount() int {
	return c.reporter.Count()
}

// PendingMarkers returns the queue depth, for display purposes.
func (c *Controller) PendingMarkers() int {
	return c.queue.Len()
}

// now returns the last tick timestamp, falling back to wall time before the
// first tick.
func (c *Controller) now() time.Time {
	if c.lastTick.IsZero() {
		return time.Now()
	}
	return c.lastTick
}
