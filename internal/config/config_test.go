package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, 60, cfg.Animation.FPS)
	assert.Equal(t, 50*time.Millisecond, cfg.Animation.QuietWindow)
	assert.Equal(t, 5*time.Second, cfg.Contact.SuccessWindow)
	assert.False(t, cfg.SMTPConfigured())
}

func TestLoadLegacyEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "app-password")
	t.Setenv("TO_EMAIL", "inbox@example.com")
	t.Setenv("ADMIN_USERNAME", "owner")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "inbox@example.com", cfg.SMTP.To)
	assert.Equal(t, "owner", cfg.Admin.Username)
	assert.True(t, cfg.SMTPConfigured())
}

func TestLoadPrefixedEnvironmentWins(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PORTFOLIO_SERVER_PORT", "7070")
	t.Setenv("PORTFOLIO_ANIMATION_FPS", "30")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Animation.FPS)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "3000"
  mode: release
contact:
  rate_per_minute: 10
  success_window: 2s
animation:
  max_frames: 120
`), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 10, cfg.Contact.RatePerMinute)
	assert.Equal(t, 2*time.Second, cfg.Contact.SuccessWindow)
	assert.Equal(t, 120, cfg.Animation.MaxFrames)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("PORTFOLIO_ANIMATION_FPS", "0")
	_, err := Load(viper.New(), "")
	assert.ErrorContains(t, err, "animation.fps")
}
