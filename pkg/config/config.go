// Package config loads the application configuration from an optional
// YAML file, environment variables, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/coolbeans/civitas/pkg/vdem"
)

// Default source and output locations, matching the layout that
// `civitas init` scaffolds.
const (
	DefaultPanelPath = "data/V-Dem-CY+Others-v6.2.csv"
	DefaultLawPath   = "data/ngo-laws.xlsx"
	DefaultFigureDir = "figures"
)

// Config represents the complete application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Window  WindowConfig  `mapstructure:"window"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig locates the source datasets and fixes the expected panel shape.
type DataConfig struct {
	PanelPath        string `mapstructure:"panel_path"`
	LawPath          string `mapstructure:"law_path"`
	LawSheet         string `mapstructure:"law_sheet"`
	CountryOverrides string `mapstructure:"country_overrides"`
	ExpectedRows     int    `mapstructure:"expected_rows"`
	ExpectedColumns  int    `mapstructure:"expected_columns"`
}

// WindowConfig bounds the regime classification window.
type WindowConfig struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

// OutputConfig holds figure output configuration.
type OutputConfig struct {
	FigureDir string `mapstructure:"figure_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. An empty
// path searches the working directory for civitas.yaml and falls back to
// defaults when none exists; an explicit path must be readable.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CIVITAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("civitas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.panel_path", DefaultPanelPath)
	v.SetDefault("data.law_path", DefaultLawPath)
	v.SetDefault("data.law_sheet", "")
	v.SetDefault("data.country_overrides", "")
	v.SetDefault("data.expected_rows", vdem.CanonicalShape.Rows)
	v.SetDefault("data.expected_columns", vdem.CanonicalShape.Columns)

	v.SetDefault("window.start", vdem.WindowStart)
	v.SetDefault("window.end", vdem.WindowEnd)

	v.SetDefault("output.figure_dir", DefaultFigureDir)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// ExpectedShape returns the panel shape the shape gate asserts against.
func (c *Config) ExpectedShape() vdem.Shape {
	return vdem.Shape{Rows: c.Data.ExpectedRows, Columns: c.Data.ExpectedColumns}
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if c.Data.PanelPath == "" {
		return fmt.Errorf("data.panel_path is required")
	}
	if c.Data.LawPath == "" {
		return fmt.Errorf("data.law_path is required")
	}
	if c.Data.ExpectedRows < 1 {
		return fmt.Errorf("data.expected_rows must be at least 1")
	}
	if c.Data.ExpectedColumns < 1 {
		return fmt.Errorf("data.expected_columns must be at least 1")
	}

	if c.Window.Start > c.Window.End {
		return fmt.Errorf("window.start must not exceed window.end")
	}

	if c.Output.FigureDir == "" {
		return fmt.Errorf("output.figure_dir is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console")
	}

	return nil
}

// DefaultYAML renders the default configuration as a commented YAML
// document, suitable for scaffolding a working directory.
func DefaultYAML() []byte {
	return []byte(fmt.Sprintf(`# civitas configuration
data:
  panel_path: %s
  law_path: %s
  law_sheet: ""         # empty selects the first sheet
  country_overrides: "" # optional YAML of extra name -> ISO3 mappings
  expected_rows: %d
  expected_columns: %d

window:
  start: %d
  end: %d

output:
  figure_dir: %s

logging:
  level: info
  format: json
`,
		DefaultPanelPath, DefaultLawPath,
		vdem.CanonicalShape.Rows, vdem.CanonicalShape.Columns,
		vdem.WindowStart, vdem.WindowEnd,
		DefaultFigureDir))
}
