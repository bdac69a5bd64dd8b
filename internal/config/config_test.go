package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Auth.JWTSecret = "test-secret"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with secret", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"missing mapping path", func(c *Config) { c.Catalog.TopicMappingPath = "" }, true},
		{"unknown sampler", func(c *Config) { c.Bandit.Sampler = "gibbs" }, true},
		{"exact sampler", func(c *Config) { c.Bandit.Sampler = "exact" }, false},
		{"width too wide", func(c *Config) { c.Bandit.RoomsWidth = 0.5 }, true},
		{"negative width", func(c *Config) { c.Bandit.QuestionsWidth = -0.1 }, true},
		{"zero width", func(c *Config) { c.Bandit.TasksWidth = 0 }, false},
		{"zero task items", func(c *Config) { c.Bandit.TaskItemCount = 0 }, true},
		{"thompson mode", func(c *Config) { c.Bandit.Mode = "thompson" }, false},
		{"unknown mode", func(c *Config) { c.Bandit.Mode = "greedy" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selection.yaml")
	yamlBody := []byte(`
server:
  port: "9090"
  read_timeout: 3s
bandit:
  rooms_width: 0.25
  sampler: exact
`)
	require.NoError(t, os.WriteFile(path, yamlBody, 0o600))

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("BANDIT_SEED", "42")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 0.25, cfg.Bandit.RoomsWidth)
	assert.Equal(t, 0.2, cfg.Bandit.QuestionsWidth)
	assert.Equal(t, "exact", cfg.Bandit.Sampler)
	assert.Equal(t, uint64(42), cfg.Bandit.Seed)
	assert.True(t, cfg.Log.Redact)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "x")

	_, err := Load()
	require.Error(t, err, "a CONFIG_PATH that does not exist must fail")
}

func TestDSN(t *testing.T) {
	d := defaultConfig().Database
	assert.Equal(t, "host=localhost port=5432 user=examprep password=examprep dbname=examprep sslmode=disable", d.DSN())
}

func TestLoadFromExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bandit:\n  mode: thompson\nauth:\n  jwt_secret: file-secret\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "ignored.yaml"))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "thompson", cfg.Bandit.Mode)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenTTL)
}
