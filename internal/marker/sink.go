package marker

import (
	"fmt"
	"os"
	"time"

	"github.com/vectionlab/vection/internal/logging"
)

// Sink is the physiological-recording collaborator. Push timestamps the
// marker on the recording channel. Fire-and-forget: no acknowledgment is
// expected, and an unavailable sink must never abort a live session.
type Sink interface {
	Push(kind Kind, at time.Time)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(kind Kind, at time.Time)

// Push calls f.
func (f SinkFunc) Push(kind Kind, at time.Time) { f(kind, at) }

// NopSink discards all markers.
type NopSink struct{}

// Push does nothing.
func (NopSink) Push(Kind, time.Time) {}

// LogSink records markers to the run's structured log. It is the degraded
// path when no recording sink is configured: the session continues and the
// textual record survives.
type LogSink struct {
	log *logging.Logger
}

// NewLogSink creates a LogSink writing through the given logger.
func NewLogSink(log *logging.Logger) *LogSink {
	if log == nil {
		log = logging.NopLogger()
	}
	return &LogSink{log: log.WithComponent("markers")}
}

// Push logs the marker with its timestamp.
func (s *LogSink) Push(kind Kind, at time.Time) {
	s.log.Info("marker", "name", kind.String(), "at", at.Format(time.RFC3339Nano))
}

// FileSink appends one text line per marker to a file:
//
//	<RFC3339Nano timestamp>\t<marker name>
//
// The format is deliberately trivial so recording-side tooling can ingest
// it without a parser dependency.
type FileSink struct {
	f *os.File
}

// NewFileSink opens (or creates) the marker file for appending.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open marker file: %w", err)
	}
	return &FileSink{f: f}, nil
}

// Push appends the marker line. Write errors are swallowed: the sink is
// fire-and-forget and a failing disk must not perturb the session.
func (s *FileSink) Push(kind Kind, at time.Time) {
	fmt.Fprintf(s.f, "%s\t%s\n", at.Format(time.RFC3339Nano), kind.String())
}

// Close flushes and closes the marker file.
func (s *FileSink) Close() error {
	if s.f == nil {
		return nil
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync marker file: %w", err)
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// MultiSink fans a marker out to several sinks in order.
type MultiSink []Sink

// Push pushes to each sink in order, skipping nil entries.
func (m MultiSink) Push(kind Kind, at time.Time) {
	for _, s := range m {
		if s != nil {
			s.Push(kind, at)
		}
	}
}
