package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExecutionMode tells whether a suite holds tests or tasks.
type ExecutionMode int

const (
	ModeUnset ExecutionMode = iota
	ModeTests
	ModeTasks
)

func (m ExecutionMode) String() string {
	switch m {
	case ModeTests:
		return "tests"
	case ModeTasks:
		return "tasks"
	default:
		return "unset"
	}
}

// IsSet reports whether the mode is tests or tasks.
func (m ExecutionMode) IsSet() bool {
	return m == ModeTests || m == ModeTasks
}

// ParseExecutionMode parses "tests", "tasks" or the empty string.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ModeUnset, nil
	case "tests", "test":
		return ModeTests, nil
	case "tasks", "task", "rpa":
		return ModeTasks, nil
	default:
		return ModeUnset, fmt.Errorf("invalid execution mode %q: expected 'tests' or 'tasks'", s)
	}
}

func (m ExecutionMode) MarshalJSON() ([]byte, error) {
	if !m.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(m.String())
}

func (m *ExecutionMode) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = ModeUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("execution mode must be a string or null: %w", err)
	}
	mode, err := ParseExecutionMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
