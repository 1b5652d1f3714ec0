package marker

import (
	"github.com/vectionlab/vection/internal/phase"
)

// Kind is one marker in the closed recording vocabulary. Markers are
// immutable once enqueued; their timestamp is assigned at sink push.
type Kind int

const (
	// KindUnknown is the zero value and is never emitted by the core.
	KindUnknown Kind = iota

	// KindStart marks the start trigger of the whole experiment.
	KindStart
	// KindEnd marks the confirmed end of the whole experiment.
	KindEnd

	KindMindfulnessBegin
	KindMindfulnessEnd
	KindRestBegin
	KindRestEnd
	KindVisitBegin
	KindVisitEnd
	KindSelectBegin
	KindSelectEnd
	KindManiBegin
	KindManiEnd

	// KindSickness marks an accepted participant sickness report.
	KindSickness
)

var kindNames = map[Kind]string{
	KindStart:            "Start",
	KindEnd:              "End",
	KindMindfulnessBegin: "MindfulnessBegin",
	KindMindfulnessEnd:   "MindfulnessEnd",
	KindRestBegin:        "RestBegin",
	KindRestEnd:          "RestEnd",
	KindVisitBegin:       "VisitBegin",
	KindVisitEnd:         "VisitEnd",
	KindSelectBegin:      "SelectBegin",
	KindSelectEnd:        "SelectEnd",
	KindManiBegin:        "ManiBegin",
	KindManiEnd:          "ManiEnd",
	KindSickness:         "Sickness",
}

// String returns the marker name as written to the recording sink.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Known reports whether k belongs to the closed vocabulary.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind resolves a marker name back to its Kind. Returns KindUnknown
// for names outside the vocabulary.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindUnknown
}

// BeginFor returns the Begin marker for a protocol phase.
func BeginFor(n phase.Name) Kind {
	switch n {
	case phase.Mindfulness:
		return KindMindfulnessBegin
	case phase.Rest:
		return KindRestBegin
	case phase.Visit:
		return KindVisitBegin
	case phase.Select:
		return KindSelectBegin
	case phase.Manipulation:
		return KindManiBegin
	default:
		return KindUnknown
	}
}

// EndFor returns the End marker for a protocol phase.
func EndFor(n phase.Name) Kind {
	switch n {
	case phase.Mindfulness:
		return KindMindfulnessEnd
	case phase.Rest:
		return KindRestEnd
	case phase.Visit:
		return KindVisitEnd
	case phase.Select:
		return KindSelectEnd
	case phase.Manipulation:
		return KindManiEnd
	default:
		return KindUnknown
	}
}
