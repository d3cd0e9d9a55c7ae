package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gradewatch/gradewatch/internal/config"
	"github.com/gradewatch/gradewatch/internal/grades"
	"github.com/gradewatch/gradewatch/internal/index"
	"github.com/gradewatch/gradewatch/internal/mailbox"
)

func fetchCmd() *cobra.Command {
	var daysBack int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch progress-report emails, parse them, and write the grade report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Address == "" || cfg.Password == "" {
				return fmt.Errorf("GMAIL_ADDRESS and GMAIL_APP_PASSWORD must be set")
			}
			if daysBack > 0 {
				cfg.DaysBack = daysBack
			}

			logger := newLogger()

			mc := &mailbox.Client{
				Host:     cfg.IMAPHost,
				Address:  cfg.Address,
				Password: cfg.Password,
				Sender:   cfg.Sender,
				Mailbox:  cfg.Mailbox,
				DaysBack: cfg.DaysBack,
				Logger:   logger,
			}

			bodies, err := mc.FetchBodies()
			if err != nil {
				return fmt.Errorf("fetch mail: %w", err)
			}
			if len(bodies) == 0 {
				fmt.Fprintln(os.Stderr, "No progress-report emails found.")
				return nil
			}

			asm := grades.NewAssembler()
			for _, body := range bodies {
				msg := grades.ParseMessage(body)
				if msg.Course.Name == "" {
					logger.Warn("skipping message without a Course header")
					continue
				}
				asm.Add(msg)
			}

			report := asm.Report(time.Now())
			if err := grades.SaveReport(report, cfg.GradesPath); err != nil {
				return err
			}
			logger.Info("wrote grade report",
				"path", cfg.GradesPath,
				"student", report.Student,
				"courses", len(report.Courses),
			)

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			stats, err := index.IndexReport(db, report)
			if err != nil {
				return fmt.Errorf("index report: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Indexed. %s\n", stats)
			return nil
		},
	}

	cmd.Flags().IntVar(&daysBack, "days", 0, "Override lookback window in days")

	return cmd
}
