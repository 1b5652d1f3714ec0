package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vectionlab/vection/internal/config"
	"github.com/vectionlab/vection/internal/experiment"
	"github.com/vectionlab/vection/internal/logging"
	"github.com/vectionlab/vection/internal/marker"
	"github.com/vectionlab/vection/internal/phase"
	"github.com/vectionlab/vection/internal/tui"
)

var (
	runHeadless    bool
	runSpeed       float64
	runTaskSeconds float64
	runMarkerFile  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the experiment protocol",
	Long: `Run the experiment protocol for one participant session.

By default this opens the supervisor terminal interface: space starts the
run and confirms the exit prompt, enter signals completion of the active
task, s files a participant sickness report, q halts the session.

With --headless the protocol runs unattended: task phases complete
automatically after --task-seconds, and --speed compresses wall time
(e.g. --speed 60 runs a minute of protocol per second). Marker
timestamps follow the compressed clock.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "run without the terminal interface")
	runCmd.Flags().Float64Var(&runSpeed, "speed", 1, "headless clock multiplier")
	runCmd.Flags().Float64Var(&runTaskSeconds, "task-seconds", 30, "simulated task duration in headless mode")
	runCmd.Flags().StringVar(&runMarkerFile, "marker-file", "", "marker output file (overrides markers.file)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if runHeadless && runSpeed <= 0 {
		return fmt.Errorf("--speed must be positive, got %v", runSpeed)
	}

	runID := uuid.NewString()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}
	runDir := filepath.Join(cfg.Paths.ResolveRunDir(cwd), runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(runDir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to open run log: %w", err)
		}
		defer log.Close()
	}

	sink, closeSink, err := buildSink(cfg, runDir, log)
	if err != nil {
		return err
	}
	defer closeSink()

	spec := phase.SequenceSpec{
		MindfulnessDuration: cfg.Protocol.MindfulnessDuration(),
		RestDuration:        cfg.Protocol.RestDuration(),
		EnableVisit:         cfg.Protocol.EnableVisit,
		EnableSelect:        cfg.Protocol.EnableSelect,
		EnableManipulation:  cfg.Protocol.EnableManipulation,
	}

	ecfg := experiment.Config{
		Spec:             spec,
		Adapters:         defaultAdapters(spec),
		Sink:             sink,
		Logger:           log,
		RunID:            runID,
		SicknessCooldown: cfg.Sickness.Cooldown(),
		SicknessAck:      cfg.Sickness.AckWindow(),
	}

	if runHeadless {
		return runHeadlessLoop(cmd, ecfg, cfg.Tick.Interval())
	}
	return runInteractive(cmd, ecfg, cfg.Tick.Interval(), runDir)
}

// buildSink wires marker recording: the configured file plus the run log,
// or log-only when no file is configured.
func buildSink(cfg *config.Config, runDir string, log *logging.Logger) (marker.Sink, func(), error) {
	path := runMarkerFile
	if path == "" {
		path = cfg.Markers.File
	}

	logSink := marker.NewLogSink(log)
	if path == "" {
		return logSink, func() {}, nil
	}

	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(runDir, path)
	}
	fileSink, err := marker.NewFileSink(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open marker file: %w", err)
	}
	return marker.MultiSink{fileSink, logSink}, func() { _ = fileSink.Close() }, nil
}

// defaultAdapters returns a no-op adapter per enabled task. The runner has
// no headset attached; task activation is observed through the adapter and
// completion arrives from the supervisor or the headless loop.
func defaultAdapters(spec phase.SequenceSpec) map[phase.Name]phase.TaskAdapter {
	adapters := make(map[phase.Name]phase.TaskAdapter)
	for _, task := range phase.TaskNames() {
		if spec.Enabled(task) {
			adapters[task] = phase.NopAdapter{}
		}
	}
	return adapters
}

func runInteractive(cmd *cobra.Command, ecfg experiment.Config, interval time.Duration, runDir string) error {
	app, err := tui.New(ecfg, interval)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return fmt.Errorf("terminal interface failed: %w", err)
	}

	ctrl := app.Controller()
	for ctrl.PendingMarkers() > 0 {
		ctrl.Tick(time.Now())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Run %s\n", ctrl.RunID())
	if summary := ctrl.Summary(); summary != "" {
		fmt.Fprint(cmd.OutOrStdout(), summary)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sickness reports: %d\n", ctrl.SicknessCount())
	fmt.Fprintf(cmd.OutOrStdout(), "Artifacts in %s\n", runDir)
	return nil
}

// runHeadlessLoop drives the controller on a synthetic clock: each
// iteration advances the protocol by one tick interval while sleeping
// interval/speed of wall time.
func runHeadlessLoop(cmd *cobra.Command, ecfg experiment.Config, interval time.Duration) error {
	ctrl, err := experiment.New(ecfg)
	if err != nil {
		return err
	}

	taskDuration := time.Duration(runTaskSeconds * float64(time.Second))
	sleep := time.Duration(float64(interval) / runSpeed)

	now := time.Now()
	ctrl.Tick(now)
	if err := ctrl.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Run %s started (headless, speed %gx)\n", ctrl.RunID(), runSpeed)

	var (
		activeTask   phase.Name
		taskDeadline time.Time
	)
	for ctrl.State() != experiment.StateCompleted {
		now = now.Add(interval)
		ctrl.Tick(now)

		switch ctrl.State() {
		case experiment.StateRunning:
			cur, ok := ctrl.CurrentPhase()
			if ok && cur.Kind == phase.KindTaskBound {
				if cur.Name != activeTask {
					activeTask = cur.Name
					taskDeadline = now.Add(taskDuration)
				}
				if !now.Before(taskDeadline) {
					ctrl.CompleteActiveTask()
				}
			} else {
				activeTask = ""
			}

		case experiment.StateAwaitingExit:
			if err := ctrl.Confirm(); err != nil {
				return err
			}
		}

		if sleep > 0 {
			time.Sleep(sleep)
		}
	}

	// Flush markers still queued behind the one-per-tick drain.
	for ctrl.PendingMarkers() > 0 {
		now = now.Add(interval)
		ctrl.Tick(now)
	}

	fmt.Fprint(cmd.OutOrStdout(), ctrl.Summary())
	return nil
}
