// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/format"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-calc.
type Configuration struct {
	Logging  LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output   OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Defaults Defaults      `yaml:"defaults,omitempty" mapstructure:"defaults"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, yaml
}

// Defaults holds the values used when a calculation omits an input.
type Defaults struct {
	MaxDTI             float64 `yaml:"maxDti,omitempty" mapstructure:"maxDti"`
	AnnualInterestRate float64 `yaml:"annualInterestRate,omitempty" mapstructure:"annualInterestRate"`
	Years              int     `yaml:"years,omitempty" mapstructure:"years"` // 0 means no default term
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so that environment overrides are picked up
	// by Unmarshal even when the file omits the key.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("defaults.maxDti", constants.DefaultMaxDTI)
	v.SetDefault("defaults.annualInterestRate", 0.0)
	v.SetDefault("defaults.years", constants.DefaultTermYears)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Default returns the built-in configuration with environment overrides applied.
func Default() (*Configuration, error) {
	return decode(newViper())
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Validate checks that the configured defaults are themselves valid inputs.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if err := validation.Ratio(c.Defaults.MaxDTI, "defaults.maxDti must be between 0 and 1"); err != nil {
		return err
	}
	if err := validation.NonNegative(c.Defaults.AnnualInterestRate, "defaults.annualInterestRate cannot be negative"); err != nil {
		return err
	}
	if c.Defaults.Years < 0 {
		return validation.Invalid("defaults.years cannot be negative")
	}
	return nil
}

// ValidateConfiguration returns warnings for settings that are valid but unusual.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Defaults.MaxDTI > constants.QualifiedMortgageMaxDTI {
		warnings = append(warnings, fmt.Sprintf("defaults.maxDti of %s exceeds the %s qualified mortgage limit",
			format.Percent(c.Defaults.MaxDTI), format.Percent(constants.QualifiedMortgageMaxDTI)))
	}
	if c.Defaults.AnnualInterestRate >= 1 {
		warnings = append(warnings, fmt.Sprintf("defaults.annualInterestRate of %s looks like a percentage; rates are decimals (0.06 for 6%%)",
			format.Rate(c.Defaults.AnnualInterestRate)))
	}
	return warnings
}
