package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"gpb-module"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"accounting"`
	}

	Statements struct {
		// Dir is the base directory shared with whatever deposits new
		// statement exports into it.
		Dir string `envconfig:"STATEMENTS_DIR" default:"/var/lib/gpb/statements"`
		// SkipAccounts lists account numbers whose operations are never
		// imported.
		SkipAccounts []string `envconfig:"SKIP_ACCOUNTS"`
		// Interval between batch passes over unprocessed statements.
		Interval     time.Duration `envconfig:"PROCESS_INTERVAL" default:"10m"`
		InitialDelay time.Duration `envconfig:"PROCESS_INITIAL_DELAY" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
