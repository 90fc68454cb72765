// Package config loads the DeepKoopman configuration from a YAML file and the
// environment.
package config

import (
	"os"
	"strconv"

	"github.com/hammal/deepk/data"
	"github.com/hammal/deepk/errorfuncs"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all DeepKoopman configuration.
type Config struct {
	// Divide the states by the largest absolute training state
	NormalizeXdata bool `yaml:"normalize_xdata"`

	// Folder receiving the per run log files and the results database
	ResultsFolder string `yaml:"results_folder"`

	// Error function used for reporting, see errorfuncs.Names
	Metric string `yaml:"metric"`

	Logging LoggingConfig `yaml:"logging"`
	Store   StoreConfig   `yaml:"store"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	// Write a <run id>.log file into the results folder
	File bool `yaml:"file"`
	JSON bool `yaml:"json"`
}

// StoreConfig configures the results database.
type StoreConfig struct {
	// Path of the SQLite database, relative paths are taken relative to the
	// results folder. Empty disables the store.
	Path string `yaml:"path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NormalizeXdata: true,
		ResultsFolder:  "results",
		Metric:         "anae",
		Logging: LoggingConfig{
			Level: "info",
			File:  true,
		},
		Store: StoreConfig{
			Path: "runs.db",
		},
	}
}

// Load reads the configuration from path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrapf(err, "failed to read config %q", path)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, errors.Wrapf(err, "failed to parse config %q", path)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return errors.Wrapf(err, "failed to write config %q", path)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("DEEPK_RESULTS_FOLDER"); v != "" {
		c.ResultsFolder = v
	}
	if v := os.Getenv("DEEPK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DEEPK_METRIC"); v != "" {
		c.Metric = v
	}
	if v := os.Getenv("DEEPK_NORMALIZE_XDATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "DEEPK_NORMALIZE_XDATA=%q", v)
		}
		c.NormalizeXdata = b
	}
	return nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	if _, err := errorfuncs.Get(c.Metric); err != nil {
		return errors.Wrap(err, "metric")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// DataOptions returns the options for building a data.DataHandler.
func (c *Config) DataOptions() data.Options {
	return data.Options{NormalizeXdata: c.NormalizeXdata}
}
