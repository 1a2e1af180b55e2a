// Package config loads explorer settings from a config file, ARCHFLOW_*
// environment variables and command-line flags bound into viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dd0wney/cluso-archflow/pkg/logging"
	"github.com/dd0wney/cluso-archflow/pkg/validation"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ARCHFLOW"

// Keys shared by viper, flags and the config file.
const (
	KeyDataDir      = "data"
	KeyDirection    = "direction"
	KeyStepMillis   = "step_ms"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyArchitecture = "arch"
)

// Defaults
const (
	DefaultDataDir    = "examples/sample-architecture"
	DefaultDirection  = "input"
	DefaultStepMillis = 300
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "json"
)

// Config holds explorer settings.
type Config struct {
	DataDir        string `mapstructure:"data"`
	ConfigFile     string `mapstructure:"-"`
	Direction      string `mapstructure:"direction"`
	StepMillis     int    `mapstructure:"step_ms"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
	ArchitectureID int    `mapstructure:"arch"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyDirection, DefaultDirection)
	v.SetDefault(KeyStepMillis, DefaultStepMillis)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyArchitecture, 0)
}

// Load reads configuration into a Config. A config file set with
// v.SetConfigFile must exist; without one, only defaults, environment and
// bound flags apply.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.Direction = strings.ToLower(strings.TrimSpace(cfg.Direction))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("DataDir", c.DataDir).
		When(c.DataDir != "", func(cv *validation.ConfigValidator) {
			cv.DirExists("DataDir", c.DataDir)
		}).
		Custom("Direction", func() error { return validation.ValidateDirection(c.Direction) }).
		RangeInt("StepMillis", c.StepMillis, 100, 10000).
		OneOf("LogLevel", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "warning", "error"}).
		OneOf("LogFormat", strings.ToLower(c.LogFormat), []string{"json", "text"}).
		NonNegative("ArchitectureID", c.ArchitectureID).
		Validate()
}

// Step returns the animation step as a duration.
func (c *Config) Step() time.Duration {
	return time.Duration(c.StepMillis) * time.Millisecond
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Format returns the configured log format.
func (c *Config) Format() logging.Format {
	return logging.ParseFormat(c.LogFormat)
}
