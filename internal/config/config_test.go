package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHome points HOME at an empty temp dir so the real user config
// cannot leak into the test.
func fakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GMAIL_ADDRESS", "")
	t.Setenv("GMAIL_APP_PASSWORD", "")
	t.Setenv("DISCORD_WEBHOOK_URL", "")
	t.Setenv("DASHBOARD_PASSWORD_HASH", "")
	t.Setenv("DASHBOARD_URL", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := fakeHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "imap.gmail.com:993", cfg.IMAPHost)
	assert.Equal(t, "[Gmail]/All Mail", cfg.Mailbox)
	assert.Equal(t, "pwsupport@unionsd.org", cfg.Sender)
	assert.Equal(t, 7, cfg.DaysBack)
	assert.Equal(t, "grades.json", cfg.GradesPath)
	assert.Equal(t, "state.json", cfg.StatePath)
	assert.Equal(t, filepath.Join(home, ".config", "gradewatch", "gradewatch.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("docs", "index.html"), cfg.DashboardPath)
}

func TestLoadConfigFile(t *testing.T) {
	home := fakeHome(t)

	cfgDir := filepath.Join(home, ".config", "gradewatch")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	toml := `
imap_host = "imap.example.com:993"
sender = "reports@school.test"
days_back = 14
grades_path = "~/data/grades.json"
dashboard_url = "https://example.github.io/grades/"
`
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(toml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "imap.example.com:993", cfg.IMAPHost)
	assert.Equal(t, "reports@school.test", cfg.Sender)
	assert.Equal(t, 14, cfg.DaysBack)
	// ~ expands against the fake home.
	assert.Equal(t, filepath.Join(home, "data", "grades.json"), cfg.GradesPath)
	assert.Equal(t, "https://example.github.io/grades/", cfg.DashboardURL)
	// Unset keys keep their defaults.
	assert.Equal(t, "[Gmail]/All Mail", cfg.Mailbox)
}

func TestLoadBadConfigFile(t *testing.T) {
	home := fakeHome(t)

	cfgDir := filepath.Join(home, ".config", "gradewatch")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("not [valid toml"), 0o644))

	_, err := Load()
	require.Error(t, err)
}

func TestLoadSecretsFromEnv(t *testing.T) {
	fakeHome(t)
	t.Setenv("GMAIL_ADDRESS", "parent@example.com")
	t.Setenv("GMAIL_APP_PASSWORD", "app-password")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.test/webhook")
	t.Setenv("DASHBOARD_PASSWORD_HASH", "deadbeef")
	t.Setenv("DASHBOARD_URL", "https://env.example/d")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "parent@example.com", cfg.Address)
	assert.Equal(t, "app-password", cfg.Password)
	assert.Equal(t, "https://discord.test/webhook", cfg.WebhookURL)
	assert.Equal(t, "deadbeef", cfg.PasswordHash)
	assert.Equal(t, "https://env.example/d", cfg.DashboardURL)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/u/x.json", expandHome("~/x.json", "/home/u"))
	assert.Equal(t, "/abs/x.json", expandHome("/abs/x.json", "/home/u"))
	assert.Equal(t, "rel.json", expandHome("rel.json", "/home/u"))
	assert.Equal(t, "~", expandHome("~", "/home/u"))
}
