package config

import (
	"fmt"

	"github.com/kbukum/prodquery/logger"
)

// Config is the application configuration.
type Config struct {
	Name          string              `yaml:"name" mapstructure:"name"`
	Environment   string              `yaml:"environment" mapstructure:"environment"`
	Debug         bool                `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Seed          SeedConfig          `yaml:"seed" mapstructure:"seed"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// SeedConfig selects where the initial product sequence comes from.
// An empty File uses the built-in catalogue.
type SeedConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// ObservabilityConfig toggles in-process tracing and metrics.
type ObservabilityConfig struct {
	Tracing    bool    `yaml:"tracing" mapstructure:"tracing"`
	Metrics    bool    `yaml:"metrics" mapstructure:"metrics"`
	// SampleRate is nil until set; an explicit 0 disables sampling.
	SampleRate *float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// Rate returns the trace sampling rate, 1.0 when unset.
func (o ObservabilityConfig) Rate() float64 {
	if o.SampleRate == nil {
		return 1.0
	}
	return *o.SampleRate
}

// ApplyDefaults applies default values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "prodquery"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	if c.Observability.SampleRate == nil {
		rate := 1.0
		c.Observability.SampleRate = &rate
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if r := c.Observability.Rate(); r < 0 || r > 1 {
		return fmt.Errorf("config.observability.sample_rate must be within [0, 1] (got: %v)", r)
	}
	return nil
}
