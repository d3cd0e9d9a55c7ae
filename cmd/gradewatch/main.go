package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Secrets (IMAP credentials, webhook URL) come from the environment;
	// a .env in the working directory is the convenient place for them.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "gradewatch",
		Short:   "Grade tracker - parse PowerSchool progress reports and alert on missing assignments",
		Version: version,
	}

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(alertCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
