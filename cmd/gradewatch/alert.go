package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gradewatch/gradewatch/internal/alert"
	"github.com/gradewatch/gradewatch/internal/config"
	"github.com/gradewatch/gradewatch/internal/grades"
	"github.com/gradewatch/gradewatch/internal/webhook"
)

func alertCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Diff missing assignments against the alert state and notify",
		Long: `Compares the grade report's missing assignments against the persisted
alert state. Newly missing assignments produce one notification; assignments
that dropped off the missing list produce a completion notification. State is
updated regardless of delivery outcome, so a lost webhook post is not resent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			report, err := grades.LoadReport(cfg.GradesPath)
			if err != nil {
				if errors.Is(err, grades.ErrNoReport) {
					return fmt.Errorf("%s does not exist; run 'gradewatch fetch' first", cfg.GradesPath)
				}
				return err
			}

			state, err := grades.LoadState(cfg.StatePath)
			if err != nil {
				return err
			}

			logger := newLogger()

			var notifier alert.Notifier
			switch {
			case dryRun:
				notifier = printNotifier{}
			case cfg.WebhookURL == "":
				return fmt.Errorf("DISCORD_WEBHOOK_URL must be set (or use --dry-run)")
			default:
				notifier = webhook.New(cfg.WebhookURL, logger)
			}

			currentMissing := alert.MissingKeys(report)
			newMissing, resolved := alert.Diff(currentMissing, state)

			newState := alert.Run(cmd.Context(), report, state, notifier, cfg.DashboardURL, logger, time.Now())
			if err := grades.SaveState(newState, cfg.StatePath); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Done. missing=%d new=%d resolved=%d\n",
				len(currentMissing), len(newMissing), len(resolved))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print notifications instead of posting to the webhook")

	return cmd
}

// printNotifier writes notifications to stdout for --dry-run.
type printNotifier struct{}

func (printNotifier) Send(_ context.Context, n alert.Notification) error {
	fmt.Printf("--- %s ---\n%s\n", n.Title, n.Description())
	return nil
}
