package grades

import "strings"

// Assignment is a single graded (or pending) assignment. At most one of
// the four status flags is true.
type Assignment struct {
	Date           string  `json:"date"` // YYYY-MM-DD
	Name           string  `json:"name"`
	LetterGrade    string  `json:"letter_grade"`
	PointsEarned   float64 `json:"points_earned"`
	PointsPossible float64 `json:"points_possible"`
	Percentage     float64 `json:"percentage"`
	IsMissing      bool    `json:"is_missing"`
	IsExempt       bool    `json:"is_exempt"`
	IsNotIncluded  bool    `json:"is_not_included"`
	IsNotYetGraded bool    `json:"is_not_yet_graded"`
}

// Status returns the single active status label, or "" for a normally
// graded assignment.
func (a Assignment) Status() string {
	switch {
	case a.IsMissing:
		return "missing"
	case a.IsExempt:
		return "exempt"
	case a.IsNotIncluded:
		return "not_included"
	case a.IsNotYetGraded:
		return "not_graded"
	}
	return ""
}

// Course is one course with its assignments in date order.
type Course struct {
	Name         string       `json:"name"`
	Period       string       `json:"period"`
	Instructor   string       `json:"instructor"`
	OverallGrade string       `json:"overall_grade"`
	Assignments  []Assignment `json:"assignments"`
}

// GradeReport is the complete parsed report for one student. It is
// rebuilt from scratch on every fetch, never mutated incrementally.
type GradeReport struct {
	LastUpdated   string   `json:"last_updated"`
	Student       string   `json:"student"`
	GradingPeriod string   `json:"grading_period"`
	Courses       []Course `json:"courses"`
}

// AlertState records which assignment keys have already triggered a
// missing-assignment notification. Only the alert differ mutates it.
type AlertState struct {
	AlertedMissing []string `json:"alerted_missing"`
	LastRun        string   `json:"last_run,omitempty"`
}

// Key builds the unique assignment identifier course::name::date.
// The separator is not escaped, so names containing "::" produce
// ambiguous keys. Known limitation.
func Key(course, name, date string) string {
	return course + "::" + name + "::" + date
}

// SplitKey splits an assignment key into its course, name, and date
// parts. Missing parts come back empty.
func SplitKey(key string) (course, name, date string) {
	parts := strings.SplitN(key, "::", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

// FirstName returns the first whitespace-separated field of the student
// name, or "Student" when the name is empty.
func FirstName(student string) string {
	fields := strings.Fields(student)
	if len(fields) == 0 {
		return "Student"
	}
	return fields[0]
}
