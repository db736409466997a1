package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerURL != "ws://localhost:8080/ws" {
		t.Errorf("Unexpected default server URL: %s", cfg.ServerURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.LogJSON {
		t.Error("Expected console logging by default")
	}
	if cfg.HandshakeTimeout != 10*time.Second {
		t.Errorf("Expected 10s handshake timeout, got %s", cfg.HandshakeTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OTHELLO_SERVER_URL", "wss://othello.example.com/ws")
	t.Setenv("OTHELLO_LOG_LEVEL", "debug")
	t.Setenv("OTHELLO_LOG_JSON", "true")
	t.Setenv("OTHELLO_HANDSHAKE_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerURL != "wss://othello.example.com/ws" {
		t.Errorf("Unexpected server URL: %s", cfg.ServerURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if !cfg.LogJSON {
		t.Error("Expected JSON logging")
	}
	if cfg.HandshakeTimeout != 3*time.Second {
		t.Errorf("Expected 3s handshake timeout, got %s", cfg.HandshakeTimeout)
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	tests := []string{
		"http://localhost:8080/ws",
		"localhost:8080",
		"ws://",
	}
	for _, raw := range tests {
		cfg := &Config{ServerURL: raw}
		if err := cfg.Validate(); !errors.Is(err, ErrBadServerURL) {
			t.Errorf("Expected ErrBadServerURL for %q, got %v", raw, err)
		}
	}

	cfg := &Config{ServerURL: "wss://example.com/ws"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected wss URL to validate, got %v", err)
	}
}

func TestLoadRejectsBadURL(t *testing.T) {
	t.Setenv("OTHELLO_SERVER_URL", "http://not-a-socket")
	if _, err := Load(); !errors.Is(err, ErrBadServerURL) {
		t.Errorf("Expected ErrBadServerURL, got %v", err)
	}
}
