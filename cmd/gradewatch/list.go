package main

import (
	"github.com/spf13/cobra"

	"github.com/gradewatch/gradewatch/internal/config"
	"github.com/gradewatch/gradewatch/internal/index"
	"github.com/gradewatch/gradewatch/internal/search"
	"github.com/gradewatch/gradewatch/internal/tui"
)

func listCmd() *cobra.Command {
	var course, status, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse all assignments sorted by due date",
		Long:  `Opens a TUI panel showing all indexed assignments newest first. Type to filter by assignment or course name.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			opts := search.Options{
				Course: course,
				Status: status,
				Since:  since,
				Limit:  limit,
			}

			return tui.RunList(db, opts)
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Filter by course name")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (missing/exempt/not_included/not_graded)")
	cmd.Flags().StringVar(&since, "since", "", "Filter assignments due since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
