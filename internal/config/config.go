// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package config holds the application configuration, loaded with
// Koanf v2 from layered sources: built-in defaults, an optional YAML
// config file, and environment variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Immutable after Load() and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// Environment is "development" or "production"; production enforces
	// admin credentials.
	Environment string `koanf:"environment"`
}

// DatabaseConfig configures the BadgerDB record store.
type DatabaseConfig struct {
	// Path is the directory holding the Badger files.
	Path string `koanf:"path"`
	// InMemory runs Badger without persistence (dev and tests only).
	InMemory bool `koanf:"in_memory"`
}

// SecurityConfig configures anti-forgery tokens, admin credentials,
// rate limiting, and CORS.
type SecurityConfig struct {
	// XSRFSecret signs anti-forgery tokens. Required, 32+ characters.
	XSRFSecret string `koanf:"xsrf_secret"`
	// XSRFTokenTTL bounds token validity.
	XSRFTokenTTL time.Duration `koanf:"xsrf_token_ttl"`

	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8085,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:     "/data/labelboard",
			InMemory: false,
		},
		Security: SecurityConfig{
			XSRFSecret:        "",
			XSRFTokenTTL:      24 * time.Hour,
			AdminUsername:     "",
			AdminPassword:     "",
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for internal consistency and
// required values. Called by Load; exposed for tests.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}

	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}

	if len(c.Security.XSRFSecret) < 32 {
		return fmt.Errorf("security.xsrf_secret must be at least 32 characters")
	}

	if c.Security.AdminUsername != "" && len(c.Security.AdminPassword) < 8 {
		return fmt.Errorf("security.admin_password must be at least 8 characters")
	}

	if c.Server.Environment == "production" && c.Security.AdminUsername == "" {
		return fmt.Errorf("security.admin_username is required in production")
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive")
		}
	}

	return nil
}
