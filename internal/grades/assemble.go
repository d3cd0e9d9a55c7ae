package grades

import "time"

// Assembler folds per-message parse results into one GradeReport.
// Courses are keyed by name: when two messages carry the same course,
// the one supplied last replaces the earlier one wholesale. This is
// supply-order replacement, not a chronological comparison or a merge.
type Assembler struct {
	order   []string
	courses map[string]Course

	student       string
	gradingPeriod string
}

func NewAssembler() *Assembler {
	return &Assembler{courses: make(map[string]Course)}
}

// Add records one parsed message. Student and grading-period metadata
// follow the most recently added message.
func (a *Assembler) Add(msg ParsedMessage) {
	a.student = msg.Student
	a.gradingPeriod = msg.GradingPeriod

	name := msg.Course.Name
	if _, seen := a.courses[name]; !seen {
		a.order = append(a.order, name)
	}
	a.courses[name] = msg.Course
}

// Report builds the assembled GradeReport, timestamped with now.
// Courses appear in first-seen order.
func (a *Assembler) Report(now time.Time) *GradeReport {
	courses := make([]Course, 0, len(a.order))
	for _, name := range a.order {
		courses = append(courses, a.courses[name])
	}
	return &GradeReport{
		LastUpdated:   now.UTC().Format(time.RFC3339),
		Student:       a.student,
		GradingPeriod: a.gradingPeriod,
		Courses:       courses,
	}
}
