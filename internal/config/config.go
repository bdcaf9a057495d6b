// Package config defines process configuration and loading hooks.
//
// Conventions:
//   - New() returns a Config populated with defaults.
//   - Load(ctx) layers defaults, an optional YAML file and SIDELINE_* env vars.
//   - External errors are wrapped with this package's sentinels.
package config

import (
	"runtime"
	"time"
)

// Profile names accepted by the transport.
const (
	ProfileDemo    = "demo"
	ProfileDefault = "default"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// BaseURL is the scheme and host of the admin backend, e.g. "http://localhost:8080".
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Profile selects the path prefix and response envelope of the backend.
	Profile string `koanf:"profile" validate:"required,oneof=demo default"`

	// TimeoutMS bounds a single request. Zero disables the client timeout.
	TimeoutMS int `koanf:"timeout_ms" validate:"gte=0"`

	// Token is sent as a bearer token when non-empty.
	Token string `koanf:"token"`

	// LogoutCodes are backend codes meaning the session is no longer valid.
	LogoutCodes []string `koanf:"logout_codes"`

	// Workers bounds the CLI batch pool.
	Workers int `koanf:"workers" validate:"gte=1"`

	// FakeAddr is the listen address of the development backend.
	FakeAddr string `koanf:"fake_addr" validate:"required"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		BaseURL:     "http://localhost:9528",
		Profile:     ProfileDemo,
		TimeoutMS:   10_000,
		LogoutCodes: []string{"8888", "8889"},
		Workers:     runtime.NumCPU(),
		FakeAddr:    ":9528",
	}
}

// Timeout returns TimeoutMS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
