package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClient_Defaults(t *testing.T) {
	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "fleetsync.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:8080", cfg.RelayURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, time.Minute, cfg.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, time.Second, cfg.RetryBaseDelay)
	assert.Equal(t, 5*time.Minute, cfg.RetryMaxDelay)
	assert.NoError(t, cfg.Validate())
}

func TestLoadClient_FromEnv(t *testing.T) {
	t.Setenv("FLEETSYNC_DB", "/var/lib/fleetsync/replica.db")
	t.Setenv("FLEETSYNC_RELAY_URL", "https://relay.example.com")
	t.Setenv("FLEETSYNC_SECRET", "fleet-secret")
	t.Setenv("FLEETSYNC_SYNC_INTERVAL", "5s")
	t.Setenv("FLEETSYNC_RETRY_MAX_DELAY", "1m")
	t.Setenv("FLEETSYNC_LOG_FORMAT", "json")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/fleetsync/replica.db", cfg.DBPath)
	assert.Equal(t, "https://relay.example.com", cfg.RelayURL)
	assert.Equal(t, "fleet-secret", cfg.Secret)
	assert.Equal(t, 5*time.Second, cfg.SyncInterval)
	assert.Equal(t, time.Minute, cfg.RetryMaxDelay)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadClient_InvalidDuration(t *testing.T) {
	t.Setenv("FLEETSYNC_SYNC_INTERVAL", "soon")

	_, err := LoadClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestClient_Validate(t *testing.T) {
	valid := func() Client {
		return Client{
			DBPath:         "fleetsync.db",
			TokenTTL:       time.Minute,
			SyncInterval:   time.Second,
			RetryBaseDelay: time.Second,
			RetryMaxDelay:  time.Minute,
		}
	}

	tests := []struct {
		mutate func(c *Client)
		name   string
		errMsg string
	}{
		{
			name:   "empty db path",
			mutate: func(c *Client) { c.DBPath = "" },
			errMsg: "database path",
		},
		{
			name:   "zero interval",
			mutate: func(c *Client) { c.SyncInterval = 0 },
			errMsg: "sync interval",
		},
		{
			name:   "negative ttl",
			mutate: func(c *Client) { c.TokenTTL = -time.Second },
			errMsg: "token ttl",
		},
		{
			name:   "max below base",
			mutate: func(c *Client) { c.RetryMaxDelay = time.Millisecond },
			errMsg: "less than base delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadRelay(t *testing.T) {
	t.Setenv("FLEETSYNC_RELAY_ADDR", "127.0.0.1:9090")
	t.Setenv("FLEETSYNC_RATE_LIMIT", "10")

	cfg, err := LoadRelay()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.Equal(t, "fleetsync-relay.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	// Секрет обязателен
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLEETSYNC_SECRET")

	cfg.Secret = "fleet-secret"
	assert.NoError(t, cfg.Validate())
}

func TestLoadRelay_InvalidRateLimit(t *testing.T) {
	t.Setenv("FLEETSYNC_RATE_LIMIT", "many")

	_, err := LoadRelay()
	assert.Error(t, err)
}
