package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, 30*time.Second, cfg.App.DashboardCacheTTL)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("STORE_FILE_PATH", "/tmp/store.json")
	t.Setenv("DASHBOARD_CACHE_TTL_SECONDS", "5")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "/tmp/store.json", cfg.Store.FilePath)
	assert.Equal(t, 5*time.Second, cfg.App.DashboardCacheTTL)
	assert.True(t, cfg.App.OtelEnabled)
	assert.True(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Store: StoreConfig{Backend: StoreMemory}}, false},
		{"file without path", Config{Store: StoreConfig{Backend: StoreFile}}, true},
		{"postgres without dsn", Config{Store: StoreConfig{Backend: StorePostgres}}, true},
		{"postgres", Config{Store: StoreConfig{Backend: StorePostgres}, Database: DatabaseConfig{Connection: "postgres://x"}}, false},
		{"unknown", Config{Store: StoreConfig{Backend: "sqlite"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
