package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "ROOTS_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if ROOTS_CONFIG is set
//  3. env (prefix ROOTS_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// ROOTS_SHEET_URL -> sheet_url; underscores are kept to match the tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.SheetURL) == "":
		return fmt.Errorf("%w: sheet_url must not be empty", ErrInvalidConfig)
	case c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case c.BoundaryTimeoutMS <= 0:
		return fmt.Errorf("%w: boundary_timeout_ms must be positive", ErrInvalidConfig)
	case c.CounterSteps <= 0:
		return fmt.Errorf("%w: counter_steps must be positive", ErrInvalidConfig)
	case c.CounterDurationMS < 0:
		return fmt.Errorf("%w: counter_duration_ms must not be negative", ErrInvalidConfig)
	case c.MapCenterLat < -90 || c.MapCenterLat > 90:
		return fmt.Errorf("%w: map_center_lat out of range", ErrInvalidConfig)
	case c.MapCenterLng < -180 || c.MapCenterLng > 180:
		return fmt.Errorf("%w: map_center_lng out of range", ErrInvalidConfig)
	}
	return nil
}
