package grades

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Line shapes in a PowerSchool progress-report body:
//
//	01/12/2026  5.3.4 Lesson                           Grade: A  (5/5 = 100%)
//	01/28/2026  Homework 7                             Grade: *   (-/9)
var (
	gradedLineRe  = regexp.MustCompile(`(?m)^[ \t]+(\d{2}/\d{2}/\d{4})\s+(.+?)\s{2,}Grade:\s+(\S+)\s+\((.+?)\)$`)
	pendingLineRe = regexp.MustCompile(`(?m)^[ \t]+(\d{2}/\d{2}/\d{4})\s+(.+?)\s{2,}Grade:\s+\*\s+\(-/(\d+(?:\.\d+)?)\)$`)

	// The overall grade line carries literal ** markup around the label.
	overallGradeRe = regexp.MustCompile(`(?m)^Current overall grade\*\*:\s+(\S+)`)

	scoreRe = regexp.MustCompile(`^([\d.]+)/([\d.]+)\s*=\s*([\d.]+)%`)
)

// ParsedMessage is the result of parsing one progress-report body.
type ParsedMessage struct {
	Student       string
	GradingPeriod string
	Course        Course
}

// HeaderField extracts the value of the first line shaped "field : value".
// Returns "" when the field is absent.
func HeaderField(body, field string) string {
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(field) + `\s*:\s*(.+)$`)
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// OverallGrade extracts the letter grade from the "Current overall
// grade**:" line. Returns "" when absent.
func OverallGrade(body string) string {
	m := overallGradeRe.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ParseScore parses a fragment like "5/5 = 100%" or "10.74/10 = 107.4%"
// into (earned, possible, percentage). Anything that does not match
// degrades to the zero triple.
func ParseScore(raw string) (earned, possible, percentage float64) {
	m := scoreRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, 0
	}
	e, err1 := strconv.ParseFloat(m[1], 64)
	p, err2 := strconv.ParseFloat(m[2], 64)
	pct, err3 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return e, p, pct
}

// convertDate reorders MM/DD/YYYY into YYYY-MM-DD. No calendar
// validation; the fields are reassembled as-is.
func convertDate(s string) string {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "-" + parts[0] + "-" + parts[1]
}

// ParseAssignments scans a body for assignment lines. Pending lines
// (Grade: *   (-/N)) are collected first; graded lines whose name was
// already captured as pending are skipped, since the graded pattern also
// matches pending lines. A leading ^ sigil marks the assignment exempt,
// a leading * marks it not-included.
func ParseAssignments(body string) []Assignment {
	var assignments []Assignment

	pendingNames := make(map[string]bool)
	for _, m := range pendingLineRe.FindAllStringSubmatch(body, -1) {
		name := strings.TrimSpace(m[2])
		pendingNames[name] = true

		possible, _ := strconv.ParseFloat(m[3], 64)
		assignments = append(assignments, Assignment{
			Date:           convertDate(m[1]),
			Name:           name,
			LetterGrade:    "*",
			PointsPossible: possible,
			IsNotYetGraded: true,
		})
	}

	for _, m := range gradedLineRe.FindAllStringSubmatch(body, -1) {
		rawName := strings.TrimSpace(m[2])

		name := rawName
		if strings.HasPrefix(name, "^") || strings.HasPrefix(name, "*") {
			name = strings.TrimSpace(name[1:])
		}
		if pendingNames[name] {
			continue
		}

		isExempt := strings.HasPrefix(rawName, "^")
		isNotIncluded := strings.HasPrefix(rawName, "*")

		earned, possible, percentage := ParseScore(m[4])

		isMissing := earned == 0 && possible > 0 && !isExempt && !isNotIncluded

		assignments = append(assignments, Assignment{
			Date:           convertDate(m[1]),
			Name:           name,
			LetterGrade:    m[3],
			PointsEarned:   earned,
			PointsPossible: possible,
			Percentage:     percentage,
			IsMissing:      isMissing,
			IsExempt:       isExempt,
			IsNotIncluded:  isNotIncluded,
		})
	}

	// Stable sort keeps pending lines ahead of graded ones on date ties.
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].Date < assignments[j].Date
	})
	return assignments
}

// ParseMessage parses one full progress-report body into its student
// metadata and course. Absent fields come back empty; an empty body
// yields an empty course.
func ParseMessage(body string) ParsedMessage {
	return ParsedMessage{
		Student:       HeaderField(body, "Student"),
		GradingPeriod: HeaderField(body, "Grading period"),
		Course: Course{
			Name:         HeaderField(body, "Course"),
			Period:       HeaderField(body, "Period"),
			Instructor:   HeaderField(body, "Instructor"),
			OverallGrade: OverallGrade(body),
			Assignments:  ParseAssignments(body),
		},
	}
}
