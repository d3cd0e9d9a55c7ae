package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	IMAPHost string `toml:"imap_host"`
	Mailbox  string `toml:"mailbox"`
	Sender   string `toml:"sender"`
	DaysBack int    `toml:"days_back"`

	GradesPath    string `toml:"grades_path"`
	StatePath     string `toml:"state_path"`
	DBPath        string `toml:"db_path"`
	DashboardPath string `toml:"dashboard_path"`
	DashboardURL  string `toml:"dashboard_url"`

	// Secrets come from the environment only, never the config file.
	Address      string `toml:"-"`
	Password     string `toml:"-"`
	WebhookURL   string `toml:"-"`
	PasswordHash string `toml:"-"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		IMAPHost:      "imap.gmail.com:993",
		Mailbox:       "[Gmail]/All Mail",
		Sender:        "pwsupport@unionsd.org",
		DaysBack:      7,
		GradesPath:    "grades.json",
		StatePath:     "state.json",
		DBPath:        filepath.Join(home, ".config", "gradewatch", "gradewatch.db"),
		DashboardPath: filepath.Join("docs", "index.html"),
	}

	cfgPath := filepath.Join(home, ".config", "gradewatch", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.GradesPath = expandHome(cfg.GradesPath, home)
	cfg.StatePath = expandHome(cfg.StatePath, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.DashboardPath = expandHome(cfg.DashboardPath, home)

	cfg.Address = os.Getenv("GMAIL_ADDRESS")
	cfg.Password = os.Getenv("GMAIL_APP_PASSWORD")
	cfg.WebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	cfg.PasswordHash = os.Getenv("DASHBOARD_PASSWORD_HASH")
	if url := os.Getenv("DASHBOARD_URL"); url != "" {
		cfg.DashboardURL = url
	}

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
