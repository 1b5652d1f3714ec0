package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vectionlab/vection/internal/experiment"
)

// App wraps the bubbletea program for one run.
type App struct {
	program *tea.Program
	model   Model
	ctrl    *experiment.Controller
}

// New builds the experiment controller from cfg with the TUI wired in as
// its display collaborator, and returns the application driving it.
func New(cfg experiment.Config, interval time.Duration) (*App, error) {
	display := &displayView{}
	cfg.Display = display

	ctrl, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		model: NewModel(ctrl, display, interval),
		ctrl:  ctrl,
	}, nil
}

// Controller exposes the run's controller, e.g. for printing the summary
// after the program exits.
func (a *App) Controller() *experiment.Controller {
	return a.ctrl
}

// Run starts the TUI and blocks until the supervisor quits.
func (a *App) Run() error {
	a.program = tea.NewProgram(a.model, tea.WithAltScreen())
	_, err := a.program.Run()
	return err
}
