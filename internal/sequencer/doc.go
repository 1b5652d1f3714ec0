// Package sequencer implements the phase state machine that walks the fixed
// experiment protocol: mindfulness, then a rest/task pair for every enabled
// task, in the fixed Visit, Select, Manipulation order.
//
// The sequencer is tick-driven: an external driver calls [Sequencer.Tick]
// once per rendered frame and the sequencer advances at most one phase
// transition per call. All suspension is cooperative; a task-bound phase
// "blocks" only in the sense that ticks keep returning StatusRunning until
// the completion signal arrives.
//
// Marker ordering is the package's central invariant: each phase enqueues
// exactly one Begin marker before any adapter activation side effect and
// exactly one End marker after its body resolves, and phase N's End always
// precedes phase N+1's Begin.
package sequencer
