package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in run directory", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := NewLogger(dir, LevelDebug)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		logPath := filepath.Join(dir, "debug.log")
		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			t.Errorf("log file was not created at %s", logPath)
		}
	})

	t.Run("writes to stderr when runDir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if logger.file != nil {
			t.Error("expected file to be nil when runDir is empty")
		}
	})

	t.Run("defaults to INFO level for invalid level string", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := NewLogger(dir, "invalid")
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if logger.logger == nil {
			t.Error("expected logger to be created")
		}
	})
}

func TestLogger_Levels(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)

	if strings.Contains(content, "debug message") {
		t.Error("debug message should be filtered at WARN level")
	}
	if strings.Contains(content, "info message") {
		t.Error("info message should be filtered at WARN level")
	}
	if !strings.Contains(content, "warn message") {
		t.Error("warn message should be logged at WARN level")
	}
	if !strings.Contains(content, "error message") {
		t.Error("error message should be logged at WARN level")
	}
}

func TestLogger_ContextPropagation(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := logger.WithRun("run-123").WithPhase("Mindfulness").WithComponent("sequencer")
	child.Info("phase started", "remaining", 10.0)
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]any
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if entry["run_id"] != "run-123" {
		t.Errorf("expected run_id=run-123, got %v", entry["run_id"])
	}
	if entry["phase"] != "Mindfulness" {
		t.Errorf("expected phase=Mindfulness, got %v", entry["phase"])
	}
	if entry["component"] != "sequencer" {
		t.Errorf("expected component=sequencer, got %v", entry["component"])
	}
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	logger := NopLogger()
	child := logger.With("key", "value")

	if len(logger.attrs) != 0 {
		t.Error("parent logger attrs should be unchanged")
	}
	if len(child.attrs) != 1 {
		t.Errorf("child logger should have 1 attr, got %d", len(child.attrs))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
