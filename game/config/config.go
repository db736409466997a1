package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrBadServerURL = errors.New("server URL must use the ws or wss scheme")

// Config holds every knob the client reads from the environment. Flags on
// the binary override these values after Load.
type Config struct {
	// ServerURL is the WebSocket endpoint of the game server.
	ServerURL string `env:"OTHELLO_SERVER_URL" envDefault:"ws://localhost:8080/ws"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `env:"OTHELLO_LOG_LEVEL" envDefault:"info"`

	// LogJSON switches logs from the console writer to raw JSON.
	LogJSON bool `env:"OTHELLO_LOG_JSON" envDefault:"false"`

	// HandshakeTimeout bounds the WebSocket dial.
	HandshakeTimeout time.Duration `env:"OTHELLO_HANDSHAKE_TIMEOUT" envDefault:"10s"`
}

// Load reads .env (when present), parses the environment, and validates
// the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config. Called again after flag overrides.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadServerURL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("%w: got %q", ErrBadServerURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrBadServerURL)
	}
	return nil
}
