// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/iwvelando/proforma/internal/storage"
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/defaults"
	"github.com/iwvelando/proforma/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for proforma.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Defaults string         `yaml:"defaults,omitempty"` // optional dataset override file
	Storage  storage.Config `yaml:"storage,omitempty"`
	Deals    []DealSpec     `yaml:"deals"`

	dir string
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, xlsx
	File   string `yaml:"file,omitempty"`   // workbook path for xlsx
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.dir = filepath.Dir(configPath)
	configuration.applyDefaults()

	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if c.Output.File == "" && c.Output.Format == constants.OutputFormatXLSX {
		c.Output.File = constants.DefaultWorkbookFile
	}
}

// Validate rejects settings that would make a run meaningless.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if len(c.ActiveDeals()) == 0 {
		return fmt.Errorf("no active deals configured")
	}
	for i, spec := range c.Deals {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("deal %d (%s): %w", i, spec.Name, err)
		}
	}
	return nil
}

// ActiveDeals returns the deal scenarios marked active.
func (c *Configuration) ActiveDeals() []DealSpec {
	var active []DealSpec
	for _, spec := range c.Deals {
		if spec.Active {
			active = append(active, spec)
		}
	}
	return active
}

// Dataset loads the configured defaults override, relative to the config
// file, or returns the built-in dataset when none is configured.
func (c *Configuration) Dataset() (*defaults.Dataset, error) {
	if c.Defaults == "" {
		return defaults.Builtin(), nil
	}
	path := c.Defaults
	if !filepath.IsAbs(path) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}
	return defaults.Load(path)
}
