package phase

// TaskAdapter wraps a pluggable experiment task's lifecycle. The sequencer
// calls Activate when the task's phase begins (enable its input and visuals)
// and Deactivate when the phase resolves. Completion is signalled back to
// the sequencer out-of-band, once per activation; the sequencer ignores any
// signal after the first.
type TaskAdapter interface {
	Activate()
	Deactivate()
}

// AdapterFunc adapts a pair of functions to the TaskAdapter interface.
// Either function may be nil.
type AdapterFunc struct {
	OnActivate   func()
	OnDeactivate func()
}

// Activate calls OnActivate if set.
func (a AdapterFunc) Activate() {
	if a.OnActivate != nil {
		a.OnActivate()
	}
}

// Deactivate calls OnDeactivate if set.
func (a AdapterFunc) Deactivate() {
	if a.OnDeactivate != nil {
		a.OnDeactivate()
	}
}

// NopAdapter is a TaskAdapter with no side effects. Useful for rehearsal
// runs and tests where no real task module is attached.
type NopAdapter struct{}

// Activate does nothing.
func (NopAdapter) Activate() {}

// Deactivate does nothing.
func (NopAdapter) Deactivate() {}
