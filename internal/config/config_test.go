package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, int64(25000), cfg.Rental.DepositCents)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
	assert.Equal(t, []string{ChannelLog, ChannelInbox}, cfg.Notification.Channels)
	assert.False(t, cfg.HTTP.Enabled)
	assert.Equal(t, "127.0.0.1:8080", cfg.GetHTTPAddress())
	assert.Equal(t, "0 0 9 * * *", cfg.Scheduler.PendingPaymentReminders)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
rental:
  deposit_cents: 30000
notification:
  channels: [LOG]
http:
  enabled: true
  port: 9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, int64(30000), cfg.Rental.DepositCents)
	assert.Equal(t, []string{ChannelLog}, cfg.Notification.Channels)
	assert.True(t, cfg.HasChannel(ChannelLog))
	assert.False(t, cfg.HasChannel(ChannelInbox))
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
http:
  port: 9090
`)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HTTP_ENABLED", "true")
	t.Setenv("ADMIN_USERNAME", "gerente")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "gerente", cfg.Admin.Username)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown channel", "notification:\n  channels: [sms]\n"},
		{"email without api key", "notification:\n  channels: [email]\n"},
		{"short jwt secret", "jwt:\n  secret: short\n"},
		{"bad port", "http:\n  port: 70000\n"},
		{"negative deposit", "rental:\n  deposit_cents: -1\n"},
		{"malformed yaml", "log: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
