package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// Config holds the credentials and connection parameters of a batch run.
// Values come from an optional .env file and the process environment, the environment taking precedence.
type Config struct {
	APIKey     string `mapstructure:"KEY"`
	DBHost     string `mapstructure:"DATABASE_HOST"`
	DBName     string `mapstructure:"DATABASE_NAME"`
	DBUser     string `mapstructure:"DATABASE_USER"`
	DBPassword string `mapstructure:"DATABASE_PASSWORD"`
}

var keys = []string{"KEY", "DATABASE_HOST", "DATABASE_NAME", "DATABASE_USER", "DATABASE_PASSWORD"}

// LoadConfig reads configuration from path/.env (if present) and the environment.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	return cfg, nil
}

// Validate checks the values the enrichment cannot run without.
// Database settings are left to fail at connect time so the spreadsheet output is still produced.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("config: KEY is required")
	}
	return nil
}

// DBSource builds the PostgreSQL connection URL.
func (c Config) DBSource() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost,
		Path:   "/" + c.DBName,
	}
	return u.String()
}
