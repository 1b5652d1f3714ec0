package tui

import "time"

// displayView is the core's display collaborator. The sequencer calls it
// synchronously from inside Controller.Tick, which runs on the bubbletea
// update goroutine, so the fields need no locking; View reads whatever the
// last tick wrote.
type displayView struct {
	prompt    string
	label     string
	remaining time.Duration
	hasTimer  bool
	visible   bool
}

func (d *displayView) ShowPrompt(text string) {
	d.prompt = text
	d.visible = true
	d.hasTimer = false
}

func (d *displayView) UpdateTimer(label string, remaining time.Duration) {
	d.label = label
	d.remaining = remaining
	d.hasTimer = true
	d.visible = true
}

func (d *displayView) HideDisplay() {
	d.visible = false
	d.hasTimer = false
	d.prompt = ""
	d.label = ""
}
