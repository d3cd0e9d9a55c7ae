package grades

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblerFirstSeenOrder(t *testing.T) {
	asm := NewAssembler()
	asm.Add(ParsedMessage{Student: "Jordan Lee", GradingPeriod: "Q3", Course: Course{Name: "Algebra I"}})
	asm.Add(ParsedMessage{Student: "Jordan Lee", GradingPeriod: "Q3", Course: Course{Name: "Biology"}})
	asm.Add(ParsedMessage{Student: "Jordan Lee", GradingPeriod: "Q3", Course: Course{Name: "History"}})

	report := asm.Report(time.Now())
	require.Len(t, report.Courses, 3)
	assert.Equal(t, "Algebra I", report.Courses[0].Name)
	assert.Equal(t, "Biology", report.Courses[1].Name)
	assert.Equal(t, "History", report.Courses[2].Name)
}

func TestAssemblerLastWinsPerCourse(t *testing.T) {
	asm := NewAssembler()
	asm.Add(ParsedMessage{Course: Course{Name: "Algebra I", OverallGrade: "C"}})
	asm.Add(ParsedMessage{Course: Course{Name: "Biology", OverallGrade: "A"}})
	asm.Add(ParsedMessage{Course: Course{Name: "Algebra I", OverallGrade: "B+"}})

	report := asm.Report(time.Now())
	require.Len(t, report.Courses, 2)
	// Replacement keeps the original position.
	assert.Equal(t, "Algebra I", report.Courses[0].Name)
	assert.Equal(t, "B+", report.Courses[0].OverallGrade)
	assert.Equal(t, "Biology", report.Courses[1].Name)
}

func TestAssemblerMetadataFromLastMessage(t *testing.T) {
	asm := NewAssembler()
	asm.Add(ParsedMessage{Student: "Jordan Lee", GradingPeriod: "Q2", Course: Course{Name: "Algebra I"}})
	asm.Add(ParsedMessage{Student: "Jordan Lee", GradingPeriod: "Q3", Course: Course{Name: "Biology"}})

	report := asm.Report(time.Now())
	assert.Equal(t, "Jordan Lee", report.Student)
	assert.Equal(t, "Q3", report.GradingPeriod)
}

func TestAssemblerTimestamp(t *testing.T) {
	asm := NewAssembler()
	now := time.Date(2026, 2, 1, 15, 30, 0, 0, time.FixedZone("PST", -8*3600))

	report := asm.Report(now)
	assert.Equal(t, "2026-02-01T23:30:00Z", report.LastUpdated)
}

func TestAssemblerEmpty(t *testing.T) {
	report := NewAssembler().Report(time.Now())
	assert.Empty(t, report.Courses)
	assert.Equal(t, "", report.Student)
}
