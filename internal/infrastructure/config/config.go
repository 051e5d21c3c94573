package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Database holds database connection configuration.
type Database struct {
	URL       string `envconfig:"DATABASE_URL" required:"true"`
	AuthToken string `envconfig:"AUTH_TOKEN"`
	Driver    string `envconfig:"DATABASE_DRIVER" default:"libsql"`
}

// S3 holds report storage configuration. An empty bucket selects local storage.
type S3 struct {
	Bucket   string `envconfig:"S3_BUCKET"`
	Prefix   string `envconfig:"S3_PREFIX" default:"labstats"`
	Region   string `envconfig:"S3_REGION"`
	Endpoint string `envconfig:"S3_ENDPOINT"`
}

// Config holds every LABSTATS_* setting. The nested sections are loaded on
// their own so their keys stay at the top level of the prefix.
type Config struct {
	Database       Database `ignored:"true"`
	S3             S3       `ignored:"true"`
	Concurrency    int      `envconfig:"CONCURRENCY" default:"4"`
	LogDevelopment bool     `envconfig:"LOG_DEVELOPMENT"`
}

const prefix = "LABSTATS"

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg.Database); err != nil {
		return nil, err
	}
	if err := envconfig.Process(prefix, &cfg.S3); err != nil {
		return nil, err
	}
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
