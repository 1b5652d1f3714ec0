// Package phase defines the protocol phase model for an experiment run:
// the fixed vocabulary of phase names, the two phase kinds (timer-driven and
// task-bound), the pure sequence builder, and the per-kind tick bodies.
package phase

import (
	"fmt"
	"time"
)

// Name identifies one step of the experiment protocol.
type Name string

// The closed set of protocol phase names.
const (
	Mindfulness  Name = "Mindfulness"
	Rest         Name = "Rest"
	Visit        Name = "Visit"
	Select       Name = "Select"
	Manipulation Name = "Manipulation"
)

// TaskNames returns the three task phase names in protocol order.
func TaskNames() []Name {
	return []Name{Visit, Select, Manipulation}
}

// Valid reports whether n is one of the protocol phase names.
func (n Name) Valid() bool {
	switch n {
	case Mindfulness, Rest, Visit, Select, Manipulation:
		return true
	}
	return false
}

// Kind distinguishes how a phase's body is driven.
type Kind int

const (
	// KindTimer phases run for a configured duration, reporting time
	// remaining on each tick (mindfulness, rest).
	KindTimer Kind = iota
	// KindTaskBound phases hand control to a task adapter and wait for a
	// single completion signal (visit, select, manipulation).
	KindTaskBound
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case KindTimer:
		return "timer"
	case KindTaskBound:
		return "task"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Status is the result of one tick of a phase body or of the sequencer.
type Status int

const (
	// StatusRunning means the phase (or sequence) needs further ticks.
	StatusRunning Status = iota
	// StatusComplete means the phase (or sequence) has finished.
	StatusComplete
)

// String returns a human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusComplete:
		return "complete"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Phase is one ordered step of the protocol. It is a value type: the
// sequencer materializes the list once per run and walks it in order.
type Phase struct {
	Name Name
	Kind Kind

	// Duration applies to KindTimer phases only.
	Duration time.Duration

	// Next is the upcoming task's name, set on Rest phases for display
	// ("Rest (next: Visit)"). Empty otherwise.
	Next Name
}

// Label returns the display label for the phase. Rest phases include the
// upcoming task so the participant knows what they are resting before.
func (p Phase) Label() string {
	if p.Name == Rest && p.Next != "" {
		return fmt.Sprintf("%s (next: %s)", p.Name, p.Next)
	}
	return string(p.Name)
}
