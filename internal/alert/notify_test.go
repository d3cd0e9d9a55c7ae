package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNewMissingGroupsByCourse(t *testing.T) {
	n := BuildNewMissing("Jordan Lee", []string{
		"Algebra I::HW 1::2026-01-10",
		"Biology::Lab 3::2026-01-11",
		"Algebra I::HW 2::2026-01-12",
	}, 2, "https://example.com/d")

	assert.Equal(t, KindNewMissing, n.Kind)
	assert.Equal(t, "New Missing Assignments for Jordan", n.Title)
	assert.Equal(t, ColorAlert, n.Color)
	assert.Equal(t, 2, n.Outstanding)

	// Courses in first-seen order, items grouped under them.
	require.Len(t, n.Sections, 2)
	assert.Equal(t, "Algebra I", n.Sections[0].Course)
	require.Len(t, n.Sections[0].Items, 2)
	assert.Equal(t, "HW 1", n.Sections[0].Items[0].Name)
	assert.Equal(t, "HW 2", n.Sections[0].Items[1].Name)
	assert.Equal(t, "Biology", n.Sections[1].Course)
}

func TestBuildResolvedFlat(t *testing.T) {
	n := BuildResolved("Jordan Lee", []string{
		"Algebra I::HW 1::2026-01-10",
		"Biology::Lab 3::2026-01-11",
	}, "")

	assert.Equal(t, KindResolved, n.Kind)
	assert.Equal(t, "Assignments Completed for Jordan", n.Title)
	assert.Equal(t, ColorSuccess, n.Color)
	require.Len(t, n.Items, 2)
	assert.Equal(t, "HW 1", n.Items[0].Name)
	assert.Equal(t, "Algebra I", n.Items[0].Course)
}

func TestBuildTitlesFallBackToStudent(t *testing.T) {
	assert.Equal(t, "New Missing Assignments for Student",
		BuildNewMissing("", nil, 0, "").Title)
	assert.Equal(t, "Assignments Completed for Student",
		BuildResolved("", nil, "").Title)
}

func TestDescriptionNewMissing(t *testing.T) {
	n := BuildNewMissing("Jordan Lee", []string{
		"Algebra I::HW 1::2026-01-10",
		"Algebra I::HW 2::2026-01-12",
		"Biology::Lab 3::2026-01-11",
	}, 3, "https://example.com/d")

	want := "**Algebra I**\n" +
		"- HW 1 (2026-01-10)\n" +
		"- HW 2 (2026-01-12)\n" +
		"**Biology**\n" +
		"- Lab 3 (2026-01-11)\n" +
		"\n3 other missing\n" +
		"\n[View Dashboard](https://example.com/d)"
	assert.Equal(t, want, n.Description())
}

func TestDescriptionOmitsZeroOutstanding(t *testing.T) {
	n := BuildNewMissing("Jordan Lee", []string{"Algebra I::HW 1::2026-01-10"}, 0, "")
	assert.Equal(t, "**Algebra I**\n- HW 1 (2026-01-10)", n.Description())
}

func TestDescriptionResolved(t *testing.T) {
	n := BuildResolved("Jordan Lee", []string{
		"Algebra I::HW 1::2026-01-10",
	}, "https://example.com/d")

	want := "- HW 1 (Algebra I, 2026-01-10)\n" +
		"\n[View Dashboard](https://example.com/d)"
	assert.Equal(t, want, n.Description())
}
