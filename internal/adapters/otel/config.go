package otel

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// LoadConfig loads OTEL configuration from LABSTATS_OTEL_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("LABSTATS_OTEL", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading otel config: %w", err)
	}
	return cfg, nil
}
