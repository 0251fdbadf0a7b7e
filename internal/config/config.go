// Package config loads replica and relay settings from FLEETSYNC_* environment variables.
// Command line flags are applied on top by the commands themselves.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client настройки реплики (cmd/replica)
type Client struct {
	DBPath         string        `env:"FLEETSYNC_DB" envDefault:"fleetsync.db"`
	RelayURL       string        `env:"FLEETSYNC_RELAY_URL" envDefault:"http://localhost:8080"`
	Secret         string        `env:"FLEETSYNC_SECRET"` // общий секрет флота для подписи токенов
	LogLevel       string        `env:"FLEETSYNC_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"FLEETSYNC_LOG_FORMAT" envDefault:"text"`
	TokenTTL       time.Duration `env:"FLEETSYNC_TOKEN_TTL" envDefault:"1m"`
	SyncInterval   time.Duration `env:"FLEETSYNC_SYNC_INTERVAL" envDefault:"30s"`
	RetryBaseDelay time.Duration `env:"FLEETSYNC_RETRY_BASE_DELAY" envDefault:"1s"`
	RetryMaxDelay  time.Duration `env:"FLEETSYNC_RETRY_MAX_DELAY" envDefault:"5m"`
}

// Relay настройки relay (cmd/relay)
type Relay struct {
	Addr            string        `env:"FLEETSYNC_RELAY_ADDR" envDefault:":8080"`
	DBPath          string        `env:"FLEETSYNC_RELAY_DB" envDefault:"fleetsync-relay.db"`
	Secret          string        `env:"FLEETSYNC_SECRET"`
	LogLevel        string        `env:"FLEETSYNC_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"FLEETSYNC_LOG_FORMAT" envDefault:"text"`
	RateWindow      time.Duration `env:"FLEETSYNC_RATE_WINDOW" envDefault:"1m"`
	ShutdownTimeout time.Duration `env:"FLEETSYNC_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RateLimit       int           `env:"FLEETSYNC_RATE_LIMIT" envDefault:"600"`
}

// LoadClient читает настройки реплики из окружения
func LoadClient() (*Client, error) {
	var cfg Client
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// LoadRelay читает настройки relay из окружения
func LoadRelay() (*Relay, error) {
	var cfg Relay
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate проверяет настройки реплики после применения флагов
func (c *Client) Validate() error {
	var errs []error

	if c.DBPath == "" {
		errs = append(errs, errors.New("database path must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	if c.SyncInterval <= 0 {
		errs = append(errs, errors.New("sync interval must be positive"))
	}
	if c.RetryBaseDelay <= 0 {
		errs = append(errs, errors.New("retry base delay must be positive"))
	}
	if c.RetryMaxDelay < c.RetryBaseDelay {
		errs = append(errs, fmt.Errorf("retry max delay %s is less than base delay %s", c.RetryMaxDelay, c.RetryBaseDelay))
	}

	return errors.Join(errs...)
}

// Validate проверяет настройки relay после применения флагов
func (r *Relay) Validate() error {
	var errs []error

	if r.Addr == "" {
		errs = append(errs, errors.New("listen address must not be empty"))
	}
	if r.DBPath == "" {
		errs = append(errs, errors.New("database path must not be empty"))
	}
	if r.Secret == "" {
		errs = append(errs, errors.New("FLEETSYNC_SECRET is required"))
	}
	if r.RateLimit <= 0 {
		errs = append(errs, errors.New("rate limit must be positive"))
	}
	if r.RateWindow <= 0 {
		errs = append(errs, errors.New("rate window must be positive"))
	}

	return errors.Join(errs...)
}
