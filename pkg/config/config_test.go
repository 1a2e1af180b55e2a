package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-archflow/pkg/logging"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	v.Set(KeyDataDir, "testdata/data")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "testdata/data", cfg.DataDir)
	assert.Equal(t, DefaultDirection, cfg.Direction)
	assert.Equal(t, DefaultStepMillis, cfg.StepMillis)
	assert.Equal(t, 300*time.Millisecond, cfg.Step())
	assert.Equal(t, logging.WarnLevel, cfg.Level())
	assert.Equal(t, logging.FormatJSON, cfg.Format())
	assert.Zero(t, cfg.ArchitectureID)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_ConfigFile(t *testing.T) {
	v := viper.New()
	path := filepath.Join("testdata", "archflow.yaml")
	v.SetConfigFile(path)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "output", cfg.Direction)
	assert.Equal(t, 500, cfg.StepMillis)
	assert.Equal(t, logging.DebugLevel, cfg.Level())
	assert.Equal(t, 2, cfg.ArchitectureID)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("ARCHFLOW_STEP_MS", "250")
	t.Setenv("ARCHFLOW_DIRECTION", "Input")

	v := viper.New()
	v.SetConfigFile(filepath.Join("testdata", "archflow.yaml"))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.StepMillis)
	assert.Equal(t, "input", cfg.Direction)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join("testdata", "absent.yaml"))

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestLoad_InvalidValuesReportedTogether(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join("testdata", "bad.yaml"))

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Direction")
	assert.Contains(t, err.Error(), "Config.StepMillis")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DataDir:    "testdata/data",
			Direction:  "input",
			StepMillis: 300,
			LogLevel:   "info",
			LogFormat:  "text",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "Config.DataDir: required"},
		{name: "data dir is a file", mutate: func(c *Config) { c.DataDir = "testdata/archflow.yaml" }, wantErr: "not a directory"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "Config.LogLevel"},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "Config.LogFormat"},
		{name: "negative architecture", mutate: func(c *Config) { c.ArchitectureID = -1 }, wantErr: "Config.ArchitectureID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
