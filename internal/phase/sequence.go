package phase

import "time"

// SequenceSpec is the immutable per-run configuration the sequence is built
// from. It is read once at sequence start; later config changes do not
// affect an in-flight run.
type SequenceSpec struct {
	MindfulnessDuration time.Duration
	RestDuration        time.Duration

	EnableVisit        bool
	EnableSelect       bool
	EnableManipulation bool
}

// Enabled reports whether the given task phase is enabled.
// Non-task names are never enabled.
func (s SequenceSpec) Enabled(n Name) bool {
	switch n {
	case Visit:
		return s.EnableVisit
	case Select:
		return s.EnableSelect
	case Manipulation:
		return s.EnableManipulation
	}
	return false
}

// BuildSequence produces the ordered phase list for a run.
//
// Mindfulness always comes first. Then, for each task in the fixed order
// Visit, Select, Manipulation, an enabled task contributes a Rest phase
// (labelled with that task) immediately followed by the task phase itself.
// A Rest phase is never emitted without a following enabled task: rest is
// preparation for the next task, not a fixed rhythm. With all tasks
// disabled the sequence is Mindfulness alone.
func BuildSequence(spec SequenceSpec) []Phase {
	seq := []Phase{{
		Name:     Mindfulness,
		Kind:     KindTimer,
		Duration: spec.MindfulnessDuration,
	}}

	for _, task := range TaskNames() {
		if !spec.Enabled(task) {
			continue
		}
		seq = append(seq,
			Phase{
				Name:     Rest,
				Kind:     KindTimer,
				Duration: spec.RestDuration,
				Next:     task,
			},
			Phase{
				Name: task,
				Kind: KindTaskBound,
			},
		)
	}

	return seq
}
