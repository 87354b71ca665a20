package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("app:\n  name: demo\n"))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5555, cfg.Server.Port)
	assert.Equal(t, "satoken", cfg.SaToken.TokenName)
	assert.Equal(t, 120, cfg.Captcha.TTL)
	assert.Equal(t, 5, cfg.Captcha.Tolerance)
	assert.Equal(t, 5, cfg.Captcha.MaxAttempts)
	assert.NotEmpty(t, cfg.Captcha.Background)
	assert.Equal(t, "uuid", cfg.SaToken.TokenStyle)
	assert.Equal(t, "admin123", cfg.App.AdminPassword)
	assert.False(t, cfg.Redis.Enabled())
}

func TestParseKeepsExplicitValues(t *testing.T) {
	raw := `
database:
  driver: mysql
  max_open_conns: 7
  replicas:
    - "reader:pw@tcp(10.0.0.2:3306)/uac"
redis:
  host: 127.0.0.1
  port: 6379
captcha:
  tolerance: 8
`
	cfg, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.Len(t, cfg.Database.Replicas, 1)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 8, cfg.Captcha.Tolerance)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("app: [unterminated"))
	assert.Error(t, err)
}
