// Package config loads and validates the application configuration from
// environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variables, e.g. BOOKSTORE_SERVER_PORT.
const envPrefix = "BOOKSTORE"

// Default values applied when neither the environment nor a config file
// provides a setting.
const (
	defaultPort                 = 8080
	defaultLogLevel             = "info"
	defaultTokenLifetimeMinutes = 60
	defaultBcryptCost           = 10
	defaultBookPageSize         = 2
)

// Load reads configuration from environment variables and, if present, a
// config.yaml in the working directory. Environment variables take precedence
// over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("auth.token_lifetime_minutes", defaultTokenLifetimeMinutes)
	v.SetDefault("auth.bcrypt_cost", defaultBcryptCost)
	v.SetDefault("books.page_size", defaultBookPageSize)

	// Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from the
		// environment. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: BOOKSTORE_SERVER_PORT overrides server.port, etc.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper only surfaces env-backed keys through Unmarshal once they are
	// bound, so bind every key we expect explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"auth.bcrypt_cost",
		"books.page_size",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
