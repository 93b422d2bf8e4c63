// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"INTRAVVEL_DB_PATH" envDefault:"./data/console.db"`
	ServerHost string `env:"INTRAVVEL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"INTRAVVEL_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"INTRAVVEL_ENV" envDefault:"development"`
	LogLevel   string `env:"INTRAVVEL_LOG_LEVEL" envDefault:"info"`

	// Bearer token lifetime issued on operator login, in hours.
	TokenTTLHours int `env:"INTRAVVEL_TOKEN_TTL_HOURS" envDefault:"24"`

	// AI provider configuration
	AIProvider   string `env:"INTRAVVEL_AI_PROVIDER" envDefault:"gemini"` // gemini | openai
	AIModel      string `env:"INTRAVVEL_AI_MODEL"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// Email notification configuration
	SMTPHost   string `env:"INTRAVVEL_SMTP_HOST"`
	SMTPPort   string `env:"INTRAVVEL_SMTP_PORT" envDefault:"587"`
	EmailUser  string `env:"EMAIL_USER"`
	EmailPass  string `env:"EMAIL_PASS"`
	AdminEmail string `env:"ADMIN_EMAIL"`

	// Seeding configuration
	DoSeed        bool   `env:"INTRAVVEL_DO_SEED" envDefault:"false"`
	AdminPassword string `env:"INTRAVVEL_ADMIN_PASSWORD"` // Initial admin password when seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// AIAPIKey returns the credential for the configured AI provider,
// or the empty string when the provider is not configured.
func (c Config) AIAPIKey() string {
	switch c.AIProvider {
	case "openai":
		return c.OpenAIAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// EmailEnabled returns true if outbound email is configured.
func (c Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailUser != "" && c.EmailPass != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.AIProvider != "gemini" && cfg.AIProvider != "openai" {
		return nil, fmt.Errorf("INTRAVVEL_AI_PROVIDER must be gemini or openai, got %q", cfg.AIProvider)
	}

	if cfg.TokenTTLHours <= 0 {
		return nil, fmt.Errorf("INTRAVVEL_TOKEN_TTL_HOURS must be positive, got %d", cfg.TokenTTLHours)
	}

	return cfg, nil
}
