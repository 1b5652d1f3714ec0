// Package tui provides the supervisor-facing terminal interface for a run.
// It doubles as the core's frame-tick driver: one bubbletea tick message per
// frame drives Controller.Tick, and key input delivers the start/confirm,
// sickness, and task-completion triggers.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vectionlab/vection/internal/experiment"
	"github.com/vectionlab/vection/internal/tui/styles"
	"github.com/vectionlab/vection/internal/util"
)

// tickMsg is sent once per frame to drive the experiment core.
type tickMsg time.Time

// Model is the bubbletea model wrapping one experiment run.
type Model struct {
	ctrl     *experiment.Controller
	display  *displayView
	keys     keyMap
	progress progress.Model
	interval time.Duration

	width    int
	height   int
	quitting bool
}

// NewModel creates the TUI model. The display must be the same displayView
// wired into the controller so phase prompts surface here.
func NewModel(ctrl *experiment.Controller, display *displayView, interval time.Duration) Model {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return Model{
		ctrl:     ctrl,
		display:  display,
		keys:     defaultKeyMap(),
		progress: progress.New(progress.WithDefaultGradient()),
		interval: interval,
	}
}

// tick returns a command that sends the next frame's tickMsg.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles frame ticks and supervisor input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-8, 60)
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.ctrl.Tick(time.Time(msg))
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Halt()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Proceed):
		switch m.ctrl.State() {
		case experiment.StateNotStarted:
			_ = m.ctrl.Start()
		case experiment.StateAwaitingExit:
			_ = m.ctrl.Confirm()
		}
		return m, nil

	case key.Matches(msg, m.keys.Sickness):
		m.ctrl.ReportSickness()
		return m, nil

	case key.Matches(msg, m.keys.CompleteTask):
		m.ctrl.CompleteActiveTask()
		return m, nil
	}

	return m, nil
}

// View renders the run state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		styles.Title.Render("vection — cybersickness protocol runner"),
		styles.StateLabel.Render("state: " + m.ctrl.State().String()),
		"",
	}

	switch m.ctrl.State() {
	case experiment.StateNotStarted:
		sections = append(sections,
			styles.Prompt.Render("Ready. Press space to start the experiment."))

	case experiment.StateRunning:
		sections = append(sections, m.viewRunning())

	case experiment.StateAwaitingExit:
		sections = append(sections,
			styles.Prompt.Render("Protocol complete — press space to finish."))

	case experiment.StateCompleted:
		sections = append(sections, m.viewSummary())
	}

	if m.ctrl.Acknowledging() {
		sections = append(sections, "",
			styles.SicknessFlash.Render("Sickness report recorded"))
	}

	sections = append(sections, "", m.viewHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewRunning() string {
	cur, ok := m.ctrl.CurrentPhase()
	if !ok {
		return styles.Subtitle.Render("advancing…")
	}

	lines := []string{styles.Prompt.Render(m.display.promptText(cur.Label()))}

	if remaining, isTimer := m.ctrl.PhaseRemaining(); isTimer {
		if remaining < 0 {
			remaining = 0
		}
		lines = append(lines,
			"",
			styles.Countdown.Render(fmt.Sprintf("%5.1fs remaining", remaining.Seconds())),
			m.progress.ViewAs(timerPercent(remaining, cur.Duration)),
		)
	} else {
		lines = append(lines, "",
			styles.Subtitle.Render("Waiting for task completion signal…"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewSummary() string {
	summary := m.ctrl.Summary()
	if summary == "" {
		summary = "(no phases recorded)"
	}
	body := fmt.Sprintf("Run %s\n\n%s\nSickness reports: %d",
		m.ctrl.RunID(), summary, m.ctrl.SicknessCount())
	return styles.Summary.Render(body)
}

func (m Model) viewHelp() string {
	entries := []string{
		m.keys.Proceed.Help().Key + " " + m.keys.Proceed.Help().Desc,
		m.keys.Sickness.Help().Key + " " + m.keys.Sickness.Help().Desc,
		m.keys.CompleteTask.Help().Key + " " + m.keys.CompleteTask.Help().Desc,
		m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc,
	}
	help := entries[0]
	for _, e := range entries[1:] {
		help += "  ·  " + e
	}
	if m.width > 0 {
		help = util.TruncateANSI(help, m.width-2)
	}
	return styles.Help.Render(help)
}

// promptText prefers the text the sequencer pushed this frame, falling
// back to the phase label.
func (d *displayView) promptText(fallback string) string {
	if d != nil && d.visible && d.prompt != "" {
		return d.prompt
	}
	return fallback
}

// timerPercent maps remaining time onto the progress bar.
func timerPercent(remaining, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	p := 1 - remaining.Seconds()/duration.Seconds()
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
