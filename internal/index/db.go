package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS report_meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS courses (
    name          TEXT PRIMARY KEY,
    period        TEXT NOT NULL DEFAULT '',
    instructor    TEXT NOT NULL DEFAULT '',
    overall_grade TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS assignments (
    key             TEXT PRIMARY KEY,
    course          TEXT NOT NULL,
    name            TEXT NOT NULL,
    date            TEXT NOT NULL,
    letter_grade    TEXT NOT NULL DEFAULT '',
    points_earned   REAL NOT NULL DEFAULT 0,
    points_possible REAL NOT NULL DEFAULT 0,
    percentage      REAL NOT NULL DEFAULT 0,
    status          TEXT NOT NULL DEFAULT ''
);

CREATE VIRTUAL TABLE IF NOT EXISTS assignments_fts USING fts5(
    name,
    course,
    content=assignments,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS assignments_ai AFTER INSERT ON assignments BEGIN
    INSERT INTO assignments_fts(rowid, name, course) VALUES (new.rowid, new.name, new.course);
END;

CREATE TRIGGER IF NOT EXISTS assignments_ad AFTER DELETE ON assignments BEGIN
    INSERT INTO assignments_fts(assignments_fts, rowid, name, course) VALUES('delete', old.rowid, old.name, old.course);
END;

CREATE TRIGGER IF NOT EXISTS assignments_au AFTER UPDATE ON assignments BEGIN
    INSERT INTO assignments_fts(assignments_fts, rowid, name, course) VALUES('delete', old.rowid, old.name, old.course);
    INSERT INTO assignments_fts(rowid, name, course) VALUES (new.rowid, new.name, new.course);
END;
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

// Meta reads one report_meta value ("" when unset).
func (d *DB) Meta(key string) (string, error) {
	var v string
	err := d.db.QueryRow("SELECT value FROM report_meta WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

func (d *DB) CourseCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM courses").Scan(&n)
	return n, err
}

func (d *DB) AssignmentCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM assignments").Scan(&n)
	return n, err
}

func (d *DB) MissingCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM assignments WHERE status = 'missing'").Scan(&n)
	return n, err
}

type CourseRow struct {
	Name         string
	Period       string
	Instructor   string
	OverallGrade string
}

func (d *DB) GetCourse(name string) (*CourseRow, error) {
	var c CourseRow
	err := d.db.QueryRow(
		"SELECT name, period, instructor, overall_grade FROM courses WHERE name = ?",
		name,
	).Scan(&c.Name, &c.Period, &c.Instructor, &c.OverallGrade)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type AssignmentRow struct {
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

// CourseAssignments returns all assignments for a course, newest first.
func (d *DB) CourseAssignments(course string) ([]AssignmentRow, error) {
	rows, err := d.db.Query(
		`SELECT key, course, name, date, letter_grade, points_earned, points_possible, percentage, status
		 FROM assignments WHERE course = ? ORDER BY date DESC, rowid`,
		course,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []AssignmentRow
	for rows.Next() {
		var a AssignmentRow
		if err := rows.Scan(&a.Key, &a.Course, &a.Name, &a.Date, &a.LetterGrade,
			&a.PointsEarned, &a.PointsPossible, &a.Percentage, &a.Status); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
