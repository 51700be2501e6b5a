// Package config loads application configuration from the environment and an
// optional .env file using Viper. The signing secret is read once at startup
// and never mutated at runtime.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all process-wide configuration.
type Config struct {
	Port        string `mapstructure:"PORT"`
	AppName     string `mapstructure:"APP_NAME"`
	Environment string `mapstructure:"ENVIRONMENT"`

	// JWTSecret signs both access and refresh tokens.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	AccessTokenTTL  time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`

	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// SweepInterval controls how often expired sessions and blacklist rows
	// are pruned. Zero disables the sweep.
	SweepInterval time.Duration `mapstructure:"SWEEP_INTERVAL"`

	// BcryptCost is the bcrypt cost factor used when hashing passwords.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
}

// Load reads .env (if present), then builds Config from the environment.
// Missing .env is not an error; env vars always win over the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore a missing .env

	v.AutomaticEnv()

	// Every key needs a default registered, even an empty one: AutomaticEnv
	// only resolves keys viper already knows about, so a key without a
	// default would be invisible to Unmarshal when no .env file exists.
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_NAME", "Tarea Server")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h") // 7 days
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SWEEP_INTERVAL", "1h")
	v.SetDefault("BCRYPT_COST", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, errors.New("config: ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return nil, errors.New("config: REFRESH_TOKEN_TTL must exceed ACCESS_TOKEN_TTL")
	}

	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if c.Port != "" && c.Port[0] != ':' {
		return ":" + c.Port
	}
	return c.Port
}
