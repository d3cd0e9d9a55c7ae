package index

import (
	"fmt"

	"github.com/gradewatch/gradewatch/internal/grades"
)

type Stats struct {
	Courses     int
	Assignments int
	Missing     int
}

func (s Stats) String() string {
	return fmt.Sprintf("courses=%d assignments=%d missing=%d",
		s.Courses, s.Assignments, s.Missing)
}

// IndexReport replaces the entire index with the contents of the
// report. The index is a derived cache for search and browsing; the
// JSON report stays the source of truth and the alert differ never
// reads from here.
func IndexReport(db *DB, report *grades.GradeReport) (Stats, error) {
	var stats Stats

	tx, err := db.Raw().Begin()
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM assignments"); err != nil {
		return stats, err
	}
	if _, err := tx.Exec("DELETE FROM courses"); err != nil {
		return stats, err
	}

	courseStmt, err := tx.Prepare(
		`INSERT INTO courses (name, period, instructor, overall_grade) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return stats, err
	}
	defer courseStmt.Close()

	assignStmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO assignments
		 (key, course, name, date, letter_grade, points_earned, points_possible, percentage, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return stats, err
	}
	defer assignStmt.Close()

	for _, course := range report.Courses {
		if _, err := courseStmt.Exec(course.Name, course.Period, course.Instructor, course.OverallGrade); err != nil {
			return stats, err
		}
		stats.Courses++

		for _, a := range course.Assignments {
			_, err := assignStmt.Exec(
				grades.Key(course.Name, a.Name, a.Date),
				course.Name,
				a.Name,
				a.Date,
				a.LetterGrade,
				a.PointsEarned,
				a.PointsPossible,
				a.Percentage,
				a.Status(),
			)
			if err != nil {
				return stats, err
			}
			stats.Assignments++
			if a.IsMissing {
				stats.Missing++
			}
		}
	}

	meta := map[string]string{
		"student":        report.Student,
		"grading_period": report.GradingPeriod,
		"last_updated":   report.LastUpdated,
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT OR REPLACE INTO report_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return stats, err
		}
	}

	return stats, tx.Commit()
}
