package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"memocache/internal/cache"
)

// CacheConfig holds the cache policy. Zero disables a limit; pool time
// defaults to max age.
type CacheConfig struct {
	MaxEntries  int     `yaml:"max_entries"`
	MaxAgeSec   float64 `yaml:"max_age_sec"`
	PoolTimeSec float64 `yaml:"pool_time_sec"`
}

// LogConfig selects the logger built by the demo binary.
type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// Config is the on-disk configuration file.
type Config struct {
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`
}

// Default is used when no config file is present.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			MaxEntries:  100,
			MaxAgeSec:   300,
			PoolTimeSec: 300,
		},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Cache.Policy().Validate(); err != nil {
		return nil, fmt.Errorf("cache section: %w", err)
	}
	return &cfg, nil
}

// Policy converts the file representation to cache.Config.
func (c CacheConfig) Policy() cache.Config {
	return cache.Config{
		MaxEntries: c.MaxEntries,
		MaxAge:     seconds(c.MaxAgeSec),
		PoolTime:   seconds(c.PoolTimeSec),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
