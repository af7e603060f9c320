package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "sqlite://crowdfund.db", cfg.DB.URL)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.Sync.Workers)
	assert.Equal(t, 256, cfg.Sync.QueueSize)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 30*time.Second, cfg.Session.ExpirySkew)
	require.NotNil(t, cfg.PaymentProviders.Stripe)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "sync.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"API_BASE_URL=https://api.example.com\nSYNC_WORKERS=4\n",
	), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("API_BASE_URL")
		_ = os.Unsetenv("SYNC_WORKERS")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 4, cfg.Sync.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "no workers", key: "SYNC_WORKERS", val: "0"},
		{name: "no queue", key: "SYNC_QUEUE_SIZE", val: "0"},
		{name: "unknown session store", key: "SESSION_STORE", val: "keychain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("does-not-exist.env")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "postgres://app@db:5432/cache", maskURL("postgres://app:secret@db:5432/cache"))
	assert.Equal(t, "sqlite://crowdfund.db", maskURL("sqlite://crowdfund.db"))
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "pk****cdef", maskValue("pk_test_abcdef"))
}
