// Package config provides environment-sourced configuration for the contact server.
package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds all process configuration. It is loaded once at startup and
// passed into component constructors; nothing reads the environment after that.
type Config struct {
	// Database
	DBHost     string `env:"DB_HOST" envDefault:"postgres_db" validate:"required"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432" validate:"min=1,max=65535"`
	DBName     string `env:"POSTGRES_DB" envDefault:"postgres" validate:"required"`
	DBUser     string `env:"DB_USERNAME" envDefault:"postgres" validate:"required"`
	DBPassword string `env:"POSTGRES_PASSWORD"`

	// Address verification service
	SmartyAuthID    string `env:"SMARTY_AUTH_ID"`
	SmartyAuthToken string `env:"SMARTY_AUTH_TOKEN"`

	// Report generation
	TemplateStyle string `env:"TEMPLATE_STYLE" envDefault:"random" validate:"required"`
	TemplatesDir  string `env:"TEMPLATES_DIR" envDefault:"templates" validate:"required"`
	OutputDir     string `env:"OUTPUT_DIR" envDefault:"static/generated" validate:"required"`

	// HTTP server
	Host  string `env:"HOST" envDefault:"0.0.0.0" validate:"required"`
	Port  int    `env:"PORT" envDefault:"3000" validate:"min=1,max=65535"`
	Debug bool   `env:"DEBUG" envDefault:"false"`
}

// Load parses configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// DatabaseURL composes a pgx connection URL from the individual settings.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	return u.String()
}

// SmartyConfigured reports whether both verification credentials are present.
func (c *Config) SmartyConfigured() bool {
	return c.SmartyAuthID != "" && c.SmartyAuthToken != ""
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
