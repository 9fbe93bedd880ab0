package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	if content == "" {
		return filepath.Join(tmpDir, "nonexistent.yaml")
	}
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
database:
  driver: postgres
  host: localhost
  user: testuser
  password: testpass
  dbname: checkin
auth:
  api_keys: ["k1", "k2"]
  operator_roles: ["admin"]
rotation:
  interval: 30s
checkin:
  redemption_base_url: "https://portal.example.org/checkin"
  store_timeout: 2s
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "postgres", cfg.Database.Driver)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, []string{"k1", "k2"}, cfg.Auth.APIKeys)
				assert.Equal(t, []string{"admin"}, cfg.Auth.OperatorRoles)
				assert.Equal(t, 30*time.Second, cfg.Rotation.Interval)
				assert.Equal(t, "https://portal.example.org/checkin", cfg.Checkin.RedemptionBaseURL)
				assert.Equal(t, 2*time.Second, cfg.Checkin.StoreTimeout)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 60*time.Second, cfg.Rotation.Interval)
				assert.Equal(t, 5*time.Second, cfg.Checkin.StoreTimeout)
				assert.Equal(t, 8, cfg.Checkin.BatchWorkers)
				assert.Equal(t, []string{"admin", "staff"}, cfg.Auth.OperatorRoles)
				assert.Equal(t, "CHECKIN_EVENTS", cfg.NATS.StreamName)
			},
		},
		{
			name:       "missing config file",
			configFile: "",
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, 60*time.Second, cfg.Rotation.Interval)
			},
		},
		{
			name: "non-positive rotation interval",
			configFile: `
rotation:
  interval: 0s
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				server:
				  port: [
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadAPIConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CHECKIN_DATABASE_DRIVER", "sqlite")
	t.Setenv("CHECKIN_DATABASE_SQLITE_PATH", "/tmp/checkin.db")
	t.Setenv("CHECKIN_ROTATION_INTERVAL", "45s")

	cfg, err := LoadAPIConfig(writeConfig(t, ""), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/checkin.db", cfg.Database.DSN())
	assert.Equal(t, 45*time.Second, cfg.Rotation.Interval)
}

func TestLoadDisplayConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadDisplayConfig(writeConfig(t, "event_id: ev1\n"), t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "ev1", cfg.EventID)
		assert.Equal(t, "http://localhost:8080", cfg.APIURL)
		assert.Equal(t, time.Minute, cfg.Interval)
		assert.Equal(t, time.Second, cfg.Tick)
		assert.Equal(t, "http://localhost:8080/checkin", cfg.RedemptionBaseURL)
		assert.Equal(t, "checkin-display.log", cfg.LogFile)
	})

	t.Run("interval shorter than tick", func(t *testing.T) {
		cfg, err := LoadDisplayConfig(writeConfig(t, "interval: 500ms\ntick: 1s\n"), t.TempDir())
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestLoadSweeperConfig(t *testing.T) {
	t.Run("postgres requires host", func(t *testing.T) {
		cfg, err := LoadSweeperConfig(writeConfig(t, "database:\n  dbname: checkin\n"), t.TempDir())
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("sqlite needs no host", func(t *testing.T) {
		cfg, err := LoadSweeperConfig(writeConfig(t, "database:\n  driver: sqlite\n"), t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 3*time.Minute, cfg.MaxTokenAge)
		assert.Equal(t, time.Minute, cfg.Interval)
		assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5432,
		User:     "u",
		Password: "p",
		DBName:   "checkin",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=checkin sslmode=disable", cfg.DSN())
}
