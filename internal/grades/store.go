package grades

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoReport means the persisted grade report does not exist yet.
// Alert and dashboard runs treat this as fatal: there is nothing to
// diff or render until a fetch has completed.
var ErrNoReport = errors.New("grade report not found")

// LoadReport reads a persisted GradeReport from path.
func LoadReport(path string) (*GradeReport, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoReport, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var report GradeReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &report, nil
}

// SaveReport writes the report to path as indented JSON, creating
// parent directories as needed.
func SaveReport(report *GradeReport, path string) error {
	return writeJSON(report, path)
}

// LoadState reads a persisted AlertState from path. A missing file is
// not an error: it yields the empty state.
func LoadState(path string) (*AlertState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &AlertState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var state AlertState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", path, err)
	}
	return &state, nil
}

// SaveState writes the alert state to path as indented JSON.
func SaveState(state *AlertState, path string) error {
	return writeJSON(state, path)
}

func writeJSON(v any, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
