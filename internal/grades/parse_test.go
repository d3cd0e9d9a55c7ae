package grades

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `Student : Jordan Lee
Course : Algebra I
Grading period : Q3
Period : 2
Instructor : Smith, A

Current overall grade**: B+

  Assignments
  -----------
  01/12/2026  5.3.4 Lesson                           Grade: A   (5/5 = 100%)
  01/15/2026  Chapter 5 Test                         Grade: F   (0/100 = 0%)
  01/20/2026  ^Pop Quiz                              Grade: F   (0/10 = 0%)
  01/22/2026  *Extra Credit Worksheet                Grade: A   (10.74/10 = 107.4%)
  01/28/2026  Homework 7                             Grade: *   (-/9)
`

func TestHeaderField(t *testing.T) {
	assert.Equal(t, "Jordan Lee", HeaderField(sampleBody, "Student"))
	assert.Equal(t, "Algebra I", HeaderField(sampleBody, "Course"))
	assert.Equal(t, "Q3", HeaderField(sampleBody, "Grading period"))
	assert.Equal(t, "", HeaderField(sampleBody, "Teacher of Record"))
	assert.Equal(t, "", HeaderField("", "Student"))
}

func TestOverallGrade(t *testing.T) {
	assert.Equal(t, "B+", OverallGrade(sampleBody))
	assert.Equal(t, "", OverallGrade("no grade line here"))
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw        string
		earned     float64
		possible   float64
		percentage float64
	}{
		{"5/5 = 100%", 5, 5, 100},
		{"0/100 = 0%", 0, 100, 0},
		{"10.74/10 = 107.4%", 10.74, 10, 107.4},
		{"8.5/10 = 85%", 8.5, 10, 85},
		{"-/9", 0, 0, 0},
		{"", 0, 0, 0},
		{"garbage", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			earned, possible, percentage := ParseScore(tt.raw)
			assert.Equal(t, tt.earned, earned)
			assert.Equal(t, tt.possible, possible)
			assert.Equal(t, tt.percentage, percentage)
		})
	}
}

func TestConvertDate(t *testing.T) {
	assert.Equal(t, "2026-01-12", convertDate("01/12/2026"))
	assert.Equal(t, "2026-12-01", convertDate("12/01/2026"))
	assert.Equal(t, "not-a-date", convertDate("not-a-date"))
}

func TestParseAssignments(t *testing.T) {
	assignments := ParseAssignments(sampleBody)
	require.Len(t, assignments, 5)

	// Sorted by date ascending
	byName := map[string]Assignment{}
	var dates []string
	for _, a := range assignments {
		byName[a.Name] = a
		dates = append(dates, a.Date)
	}
	assert.Equal(t, []string{"2026-01-12", "2026-01-15", "2026-01-20", "2026-01-22", "2026-01-28"}, dates)

	lesson := byName["5.3.4 Lesson"]
	assert.Equal(t, "A", lesson.LetterGrade)
	assert.Equal(t, 5.0, lesson.PointsEarned)
	assert.Equal(t, 5.0, lesson.PointsPossible)
	assert.Equal(t, 100.0, lesson.Percentage)
	assert.Equal(t, "", lesson.Status())

	// Zero earned with points possible and no sigil means missing.
	test := byName["Chapter 5 Test"]
	assert.True(t, test.IsMissing)
	assert.Equal(t, "missing", test.Status())

	// Leading ^ marks exempt; a zero score is not missing then.
	quiz := byName["Pop Quiz"]
	assert.True(t, quiz.IsExempt)
	assert.False(t, quiz.IsMissing)

	// Leading * marks not-included; score above 100% parses as-is.
	extra := byName["Extra Credit Worksheet"]
	assert.True(t, extra.IsNotIncluded)
	assert.False(t, extra.IsMissing)
	assert.Equal(t, 107.4, extra.Percentage)

	// Pending line: captured once, never also as a graded zero-score.
	hw := byName["Homework 7"]
	assert.True(t, hw.IsNotYetGraded)
	assert.False(t, hw.IsMissing)
	assert.Equal(t, "*", hw.LetterGrade)
	assert.Equal(t, 9.0, hw.PointsPossible)
	assert.Equal(t, 0.0, hw.PointsEarned)
}

func TestParseAssignmentsPendingBeforeGradedOnDateTie(t *testing.T) {
	body := "  01/15/2026  Worksheet A                            Grade: B   (8/10 = 80%)\n" +
		"  01/15/2026  Worksheet B                            Grade: *   (-/10)\n"

	assignments := ParseAssignments(body)
	require.Len(t, assignments, 2)
	assert.Equal(t, "Worksheet B", assignments[0].Name)
	assert.True(t, assignments[0].IsNotYetGraded)
	assert.Equal(t, "Worksheet A", assignments[1].Name)
}

func TestParseAssignmentsEmptyBody(t *testing.T) {
	assert.Empty(t, ParseAssignments(""))
	assert.Empty(t, ParseAssignments("no assignment lines here"))
}

func TestParseAssignmentsZeroOverZeroNotMissing(t *testing.T) {
	body := "  02/01/2026  Participation                          Grade: P   (0/0 = 0%)\n"
	assignments := ParseAssignments(body)
	require.Len(t, assignments, 1)
	assert.False(t, assignments[0].IsMissing)
}

func TestParseAssignmentsAtMostOneFlag(t *testing.T) {
	for _, a := range ParseAssignments(sampleBody) {
		flags := 0
		for _, f := range []bool{a.IsMissing, a.IsExempt, a.IsNotIncluded, a.IsNotYetGraded} {
			if f {
				flags++
			}
		}
		assert.LessOrEqual(t, flags, 1, "assignment %q has %d flags", a.Name, flags)
	}
}

func TestParseMessage(t *testing.T) {
	msg := ParseMessage(sampleBody)
	assert.Equal(t, "Jordan Lee", msg.Student)
	assert.Equal(t, "Q3", msg.GradingPeriod)
	assert.Equal(t, "Algebra I", msg.Course.Name)
	assert.Equal(t, "2", msg.Course.Period)
	assert.Equal(t, "Smith, A", msg.Course.Instructor)
	assert.Equal(t, "B+", msg.Course.OverallGrade)
	assert.Len(t, msg.Course.Assignments, 5)
}

func TestParseMessageEmptyBody(t *testing.T) {
	msg := ParseMessage("")
	assert.Equal(t, "", msg.Student)
	assert.Equal(t, "", msg.Course.Name)
	assert.Empty(t, msg.Course.Assignments)
}
