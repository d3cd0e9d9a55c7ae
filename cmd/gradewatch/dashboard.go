package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gradewatch/gradewatch/internal/config"
	"github.com/gradewatch/gradewatch/internal/dashboard"
	"github.com/gradewatch/gradewatch/internal/grades"
)

func dashboardCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Render the static HTML dashboard from the grade report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.PasswordHash == "" {
				return fmt.Errorf("DASHBOARD_PASSWORD_HASH must be set")
			}

			report, err := grades.LoadReport(cfg.GradesPath)
			if err != nil {
				if errors.Is(err, grades.ErrNoReport) {
					return fmt.Errorf("%s does not exist; run 'gradewatch fetch' first", cfg.GradesPath)
				}
				return err
			}

			out := cfg.DashboardPath
			if output != "" {
				out = output
			}
			if err := dashboard.Build(report, cfg.PasswordHash, out); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default from config)")

	return cmd
}
