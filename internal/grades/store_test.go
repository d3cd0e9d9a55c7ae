package grades

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "grades.json")

	report := &GradeReport{
		LastUpdated:   "2026-02-01T12:00:00Z",
		Student:       "Jordan Lee",
		GradingPeriod: "Q3",
		Courses: []Course{{
			Name:         "Algebra I",
			OverallGrade: "B+",
			Assignments: []Assignment{
				{Date: "2026-01-15", Name: "Chapter 5 Test", LetterGrade: "F", PointsPossible: 100, IsMissing: true},
			},
		}},
	}

	require.NoError(t, SaveReport(report, path))

	loaded, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, report, loaded)
}

func TestLoadReportMissing(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoReport))
}

func TestLoadReportCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grades.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadReport(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoReport))
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	state := &AlertState{
		AlertedMissing: []string{"Algebra I::Homework 7::2026-01-28"},
		LastRun:        "2026-02-01T12:00:00Z",
	}
	require.NoError(t, SaveState(state, path))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestLoadStateMissingYieldsEmpty(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, state.AlertedMissing)
	assert.Equal(t, "", state.LastRun)
}

func TestWriteJSONTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, SaveState(&AlertState{}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0 && data[len(data)-1] == '\n')
}
