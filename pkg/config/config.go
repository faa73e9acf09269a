package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	FantasyAPI struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout"`
		RateCapacity float64       `yaml:"rate_capacity"`
		RatePerSec   float64       `yaml:"rate_per_sec"`
	} `yaml:"fantasy_api"`
	Snapshot struct {
		TTL             time.Duration `yaml:"ttl"`
		RefreshSchedule string        `yaml:"refresh_schedule"`
	} `yaml:"snapshot"`
	Engine struct {
		Horizon                int     `yaml:"horizon"`
		HomeAdvantage          float64 `yaml:"home_advantage"`
		ImprovementThreshold   float64 `yaml:"improvement_threshold"`
		FixtureAdvantageWeight float64 `yaml:"fixture_advantage_weight"`
		CaptainMinForm         float64 `yaml:"captain_min_form"`
	} `yaml:"engine"`
	Cache struct {
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FANTASY_API_BASE_URL"); v != "" {
		c.FantasyAPI.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.FantasyAPI.BaseURL == "" {
		return fmt.Errorf("fantasy_api.base_url is required")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	return nil
}
