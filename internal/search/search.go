package search

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/gradewatch/gradewatch/internal/index"
)

type Result struct {
	Key            string
	Course         string
	Name           string
	Date           string
	LetterGrade    string
	PointsEarned   float64
	PointsPossible float64
	Percentage     float64
	Status         string
}

// Score renders the result's score column: "5/5 = 100%", or "-/9" for a
// not-yet-graded assignment.
func (r Result) Score() string {
	if r.Status == "not_graded" {
		return fmt.Sprintf("-/%g", r.PointsPossible)
	}
	return fmt.Sprintf("%g/%g = %g%%", r.PointsEarned, r.PointsPossible, r.Percentage)
}

type Options struct {
	Query  string
	Course string // "" = all
	Status string // "" = all, "missing", "exempt", "not_included", "not_graded"
	Since  string // "" = no filter, e.g. "2026-01-01"
	Limit  int
}

const selectColumns = `
	a.key,
	a.course,
	a.name,
	a.date,
	a.letter_grade,
	a.points_earned,
	a.points_possible,
	a.percentage,
	a.status`

// Search runs an FTS5 match over assignment and course names.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	conditions := []string{"assignments_fts MATCH ?"}
	args := []interface{}{opts.Query}
	conditions, args = appendFilters(conditions, args, opts)

	query := fmt.Sprintf(`
		SELECT %s
		FROM assignments_fts
		JOIN assignments a ON assignments_fts.rowid = a.rowid
		WHERE %s
		ORDER BY bm25(assignments_fts), a.date DESC
		LIMIT ?
	`, selectColumns, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// ListAll returns assignments newest first, honoring the non-query
// filters. Used by the list TUI.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	conditions, args = appendFilters(conditions, args, opts)

	query := fmt.Sprintf(`
		SELECT %s
		FROM assignments a
		WHERE %s
		ORDER BY a.date DESC, a.course, a.rowid
	`, selectColumns, strings.Join(conditions, " AND "))

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func appendFilters(conditions []string, args []interface{}, opts Options) ([]string, []interface{}) {
	if opts.Course != "" {
		conditions = append(conditions, "a.course = ?")
		args = append(args, opts.Course)
	}
	if opts.Status != "" {
		conditions = append(conditions, "a.status = ?")
		args = append(args, opts.Status)
	}
	if opts.Since != "" {
		conditions = append(conditions, "a.date >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.Key, &r.Course, &r.Name, &r.Date, &r.LetterGrade,
			&r.PointsEarned, &r.PointsPossible, &r.Percentage, &r.Status,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
