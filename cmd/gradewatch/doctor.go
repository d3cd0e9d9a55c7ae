package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gradewatch/gradewatch/internal/config"
	"github.com/gradewatch/gradewatch/internal/grades"
	"github.com/gradewatch/gradewatch/internal/index"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, secrets, report files, DB, and FTS5",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			fmt.Printf("  IMAP host: %s\n", cfg.IMAPHost)
			fmt.Printf("  Mailbox:   %s\n", cfg.Mailbox)
			fmt.Printf("  Sender:    %s\n", cfg.Sender)
			fmt.Printf("  Lookback:  %d days\n", cfg.DaysBack)

			fmt.Println("\n=== Secrets (environment) ===")
			checkEnv("GMAIL_ADDRESS", cfg.Address)
			checkEnv("GMAIL_APP_PASSWORD", cfg.Password)
			checkEnv("DISCORD_WEBHOOK_URL", cfg.WebhookURL)
			checkEnv("DASHBOARD_PASSWORD_HASH", cfg.PasswordHash)

			fmt.Println("\n=== Report Files ===")
			checkReport(cfg.GradesPath)
			checkState(cfg.StatePath)

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'gradewatch fetch' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			courseCount, err := db.CourseCount()
			if err != nil {
				return fmt.Errorf("count courses: %w", err)
			}
			assignmentCount, err := db.AssignmentCount()
			if err != nil {
				return fmt.Errorf("count assignments: %w", err)
			}
			missingCount, err := db.MissingCount()
			if err != nil {
				return fmt.Errorf("count missing: %w", err)
			}

			fmt.Printf("  Courses:     %d\n", courseCount)
			fmt.Printf("  Assignments: %d\n", assignmentCount)
			fmt.Printf("  Missing:     %d\n", missingCount)
			if student, err := db.Meta("student"); err == nil && student != "" {
				fmt.Printf("  Student:     %s\n", student)
			}
			if updated, err := db.Meta("last_updated"); err == nil && updated != "" {
				fmt.Printf("  Updated:     %s\n", updated)
			}

			fmt.Println("\n=== FTS5 ===")
			var ftsCount int
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM assignments_fts").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == assignmentCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (assignments=%d, fts=%d)\n", assignmentCount, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeKB := float64(info.Size()) / 1024
				fmt.Printf("\n=== DB Size: %.1f KB ===\n", sizeKB)
			}

			return nil
		},
	}
}

func checkEnv(name, value string) {
	if value == "" {
		fmt.Printf("  %s: MISSING\n", name)
	} else {
		fmt.Printf("  %s: set\n", name)
	}
}

func checkReport(path string) {
	report, err := grades.LoadReport(path)
	if err != nil {
		fmt.Printf("  Report: %s (NOT FOUND)\n", path)
		return
	}
	missing := 0
	total := 0
	for _, c := range report.Courses {
		for _, a := range c.Assignments {
			total++
			if a.IsMissing {
				missing++
			}
		}
	}
	fmt.Printf("  Report: %s (OK, %d courses, %d assignments, %d missing)\n",
		path, len(report.Courses), total, missing)
}

func checkState(path string) {
	state, err := grades.LoadState(path)
	if err != nil {
		fmt.Printf("  State:  %s (PARSE ERROR: %v)\n", path, err)
		return
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		fmt.Printf("  State:  %s (not created yet)\n", path)
		return
	}
	fmt.Printf("  State:  %s (OK, %d alerted, last run %s)\n",
		path, len(state.AlertedMissing), orDash(state.LastRun))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
