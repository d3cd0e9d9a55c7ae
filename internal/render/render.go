package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/gradewatch/gradewatch/internal/index"
)

const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorBold    = "\033[1m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // keyword highlights and missing status

	colorGradeA = "\033[1;32m"
	colorGradeB = "\033[1;34m"
	colorGradeC = "\033[1;33m"
	colorGradeD = "\033[33m"
	colorGradeF = "\033[1;31m"

	colorMissing  = "\033[1;31m"
	colorExempt   = "\033[2;37m"
	colorExcluded = "\033[2;37m"
	colorPending  = "\033[1;33m"
)

type Options struct {
	HitKey string // assignment key to highlight ("" = none)
	Width  int    // wrap width (0 = no wrap)
	Query  string // search query for keyword highlighting
}

// gradeColor picks an ANSI color from the first letter of a grade.
func gradeColor(letter string) string {
	if letter == "" {
		return colorReset
	}
	switch letter[0] {
	case 'A':
		return colorGradeA
	case 'B':
		return colorGradeB
	case 'C':
		return colorGradeC
	case 'D':
		return colorGradeD
	case 'F':
		return colorGradeF
	}
	return colorReset
}

// statusLabel renders the status badge column.
func statusLabel(status string) string {
	switch status {
	case "missing":
		return colorMissing + "MISSING" + colorReset
	case "exempt":
		return colorExempt + "EXEMPT" + colorReset
	case "not_included":
		return colorExcluded + "NOT INCLUDED" + colorReset
	case "not_graded":
		return colorPending + "NOT GRADED" + colorReset
	}
	return ""
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	terms := strings.Fields(query)
	var filtered []string
	for _, t := range terms {
		if !fts5Operators[t] {
			filtered = append(filtered, t)
		}
	}
	for _, term := range filtered {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderCourse renders one course's detail: header, overall grade, and
// its assignments newest first. Returns the content, the 0-based line
// number of the highlighted assignment (-1 if none), and any error.
func RenderCourse(db *index.DB, courseName string, opts Options) (string, int, error) {
	course, err := db.GetCourse(courseName)
	if err != nil {
		return "", -1, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return "", -1, fmt.Errorf("course not found: %s", courseName)
	}

	assignments, err := db.CourseAssignments(courseName)
	if err != nil {
		return "", -1, fmt.Errorf("get assignments: %w", err)
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	// header
	writeLine(fmt.Sprintf("%s%s%s  %s%s — Period %s%s",
		colorBold, course.Name, colorReset,
		colorDim, course.Instructor, course.Period, colorReset))
	writeLine(fmt.Sprintf("Overall: %s%s%s",
		gradeColor(course.OverallGrade), course.OverallGrade, colorReset))
	writeLine("")

	if len(assignments) == 0 {
		writeLine(colorDim + "(no assignments)" + colorReset)
		return b.String(), -1, nil
	}

	for _, a := range assignments {
		isHit := opts.HitKey != "" && a.Key == opts.HitKey
		if isHit {
			hitLine = lineCount
		}

		var score string
		if a.Status == "not_graded" {
			score = fmt.Sprintf("-/%g", a.PointsPossible)
		} else {
			score = fmt.Sprintf("%g/%g = %g%%", a.PointsEarned, a.PointsPossible, a.Percentage)
		}

		name := highlightKeywords(a.Name, opts.Query)

		line := fmt.Sprintf("%s  %s%s%s  %s  %s",
			a.Date,
			gradeColor(a.LetterGrade), a.LetterGrade, colorReset,
			score,
			name,
		)
		if badge := statusLabel(a.Status); badge != "" {
			line += "  " + badge
		}
		if isHit {
			line = colorHit + ">>" + colorReset + " " + line
		} else {
			line = "   " + line
		}
		writeLine(line)
	}

	return b.String(), hitLine, nil
}
