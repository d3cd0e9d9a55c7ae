package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gradewatch/gradewatch/internal/config"
	"github.com/gradewatch/gradewatch/internal/index"
	"github.com/gradewatch/gradewatch/internal/search"
	"github.com/gradewatch/gradewatch/internal/tui"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorYellow  = "\033[1;33m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeStatus(status string) string {
	switch status {
	case "missing":
		return sColorBoldRed + status + sColorReset
	case "not_graded":
		return sColorYellow + status + sColorReset
	case "":
		return sColorGreen + "graded" + sColorReset
	default:
		return status
	}
}

func searchCmd() *cobra.Command {
	var course, status, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across indexed assignments",
		Long: `Search indexed assignments using FTS5. With a terminal, opens the
interactive browser; when piped, prints TSV:
  key, date, course, name, grade, score, status`,
		Args: cobra.ExactArgs(1),
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

			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(db, args[0], opts)
			}

			opts.Query = args[0]
			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				name := strings.ReplaceAll(r.Name, "\t", " ")
				// first field (key) stays plain for fzf {1}
				fmt.Printf("%s\t%s%s%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Key,
					sColorDim, r.Date, sColorReset,
					r.Course,
					name,
					r.LetterGrade,
					r.Score(),
					colorizeStatus(r.Status),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Filter by course name")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (missing/exempt/not_included/not_graded)")
	cmd.Flags().StringVar(&since, "since", "", "Filter assignments due since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
