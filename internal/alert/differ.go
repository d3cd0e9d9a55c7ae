// Package alert compares a grade report's missing assignments against
// the persisted alert state and decides what to notify. Each assignment
// key moves between two states: not-tracked and alerted-missing. Keys
// present in both the report and the state produce no transition.
package alert

import (
	"context"
	"log/slog"
	"time"

	"github.com/gradewatch/gradewatch/internal/grades"
)

// Notifier is the delivery collaborator. Implementations post one
// notification per call; failures are reported, never panicked.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// MissingKeys collects the keys of all missing assignments across all
// courses, in report order.
func MissingKeys(report *grades.GradeReport) []string {
	var keys []string
	for _, course := range report.Courses {
		for _, a := range course.Assignments {
			if a.IsMissing {
				keys = append(keys, grades.Key(course.Name, a.Name, a.Date))
			}
		}
	}
	return keys
}

// Diff splits the current missing set against the previously alerted
// set. newMissing preserves report order; resolved preserves state
// order.
func Diff(currentMissing []string, state *grades.AlertState) (newMissing, resolved []string) {
	alerted := make(map[string]bool, len(state.AlertedMissing))
	for _, k := range state.AlertedMissing {
		alerted[k] = true
	}
	for _, k := range currentMissing {
		if !alerted[k] {
			newMissing = append(newMissing, k)
		}
	}

	current := make(map[string]bool, len(currentMissing))
	for _, k := range currentMissing {
		current[k] = true
	}
	for _, k := range state.AlertedMissing {
		if !current[k] {
			resolved = append(resolved, k)
		}
	}
	return newMissing, resolved
}

// Run executes one alert cycle: diff, notify, and return the updated
// state. Delivery failures are logged and swallowed; the returned state
// always reflects the computed transitions, so a lost notification is
// not retried on the next run. State is authoritative by design.
func Run(ctx context.Context, report *grades.GradeReport, state *grades.AlertState,
	notifier Notifier, dashboardURL string, logger *slog.Logger, now time.Time) *grades.AlertState {

	currentMissing := MissingKeys(report)
	newMissing, resolved := Diff(currentMissing, state)

	resolvedSet := make(map[string]bool, len(resolved))
	for _, k := range resolved {
		resolvedSet[k] = true
	}
	stillAlerted := make([]string, 0, len(state.AlertedMissing))
	for _, k := range state.AlertedMissing {
		if !resolvedSet[k] {
			stillAlerted = append(stillAlerted, k)
		}
	}

	if len(newMissing) > 0 {
		n := BuildNewMissing(report.Student, newMissing, len(stillAlerted), dashboardURL)
		if err := notifier.Send(ctx, n); err != nil {
			logger.Error("send new-missing notification", "error", err)
		}
	}

	if len(resolved) > 0 {
		n := BuildResolved(report.Student, resolved, dashboardURL)
		if err := notifier.Send(ctx, n); err != nil {
			logger.Error("send resolved notification", "error", err)
		}
	}

	return &grades.AlertState{
		AlertedMissing: append(stillAlerted, newMissing...),
		LastRun:        now.UTC().Format(time.RFC3339),
	}
}
