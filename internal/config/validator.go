package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tick.interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Protocol.MindfulnessSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "protocol.mindfulness_seconds",
			Value:   c.Protocol.MindfulnessSeconds,
			Message: "must be positive",
		})
	}
	if c.Protocol.RestSeconds <= 0 && c.anyTaskEnabled() {
		errs = append(errs, ValidationError{
			Field:   "protocol.rest_seconds",
			Value:   c.Protocol.RestSeconds,
			Message: "must be positive when any task is enabled",
		})
	}

	if c.Sickness.CooldownSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "sickness.cooldown_seconds",
			Value:   c.Sickness.CooldownSeconds,
			Message: "must be positive",
		})
	}
	if c.Sickness.AckSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "sickness.ack_seconds",
			Value:   c.Sickness.AckSeconds,
			Message: "must be positive",
		})
	}

	if c.Tick.IntervalMs < 1 || c.Tick.IntervalMs > 1000 {
		errs = append(errs, ValidationError{
			Field:   "tick.interval_ms",
			Value:   c.Tick.IntervalMs,
			Message: "must be between 1 and 1000",
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errs
}

func (c *Config) anyTaskEnabled() bool {
	return c.Protocol.EnableVisit || c.Protocol.EnableSelect || c.Protocol.EnableManipulation
}
