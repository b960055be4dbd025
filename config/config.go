// Package config holds the run configuration of the arrhenius CLI:
// solver settings, plot output and logging.
//
// Sources, lowest precedence first:
//
//	1. Default()
//	2. a YAML (.yaml, .yml) or TOML (.toml) file via LoadFromPath
//	3. ARRHENIUS_* environment variables via ApplyEnvOverrides, optionally
//	   seeded from a .env file by LoadDotEnv
//	4. command-line flags, applied by the CLI
//
// Keys absent from a file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/arrhenius/fit"
	"github.com/katalvlaran/arrhenius/plot"
)

var (
	// ErrUnsupportedFormat indicates a config file extension with no decoder.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the full run configuration.
type Config struct {
	Fit  FitConfig  `toml:"fit" yaml:"fit"`
	Plot PlotConfig `toml:"plot" yaml:"plot"`
	Log  LogConfig  `toml:"log" yaml:"log"`
}

// FitConfig mirrors fit.Options.
type FitConfig struct {
	InitialPrefactor        float64 `toml:"initial_prefactor" yaml:"initial_prefactor"`
	InitialActivationEnergy float64 `toml:"initial_activation_energy" yaml:"initial_activation_energy"`
	MaxEvaluations          int     `toml:"max_evaluations" yaml:"max_evaluations"`
	FTol                    float64 `toml:"ftol" yaml:"ftol"`
	XTol                    float64 `toml:"xtol" yaml:"xtol"`
	GTol                    float64 `toml:"gtol" yaml:"gtol"`
}

// PlotConfig controls PNG output.
type PlotConfig struct {
	Width     int     `toml:"width" yaml:"width"`
	Height    int     `toml:"height" yaml:"height"`
	DPI       float64 `toml:"dpi" yaml:"dpi"`
	OutputDir string  `toml:"output_dir" yaml:"output_dir"`
	Disabled  bool    `toml:"disabled" yaml:"disabled"`
}

// LogConfig controls the hclog root logger.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	JSON  bool   `toml:"json" yaml:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := plot.DefaultOptions()
	return &Config{
		Fit: FitConfig{
			InitialPrefactor:        fit.DefaultInitialPrefactor,
			InitialActivationEnergy: fit.DefaultInitialActivationEnergy,
			MaxEvaluations:          fit.DefaultMaxEvaluations,
			FTol:                    fit.DefaultFTol,
			XTol:                    fit.DefaultXTol,
			GTol:                    fit.DefaultGTol,
		},
		Plot: PlotConfig{
			Width:     p.Width,
			Height:    p.Height,
			DPI:       p.DPI,
			OutputDir: ".",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadFromPath decodes path over the defaults and validates the result.
// Environment overrides are not applied.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode yaml %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode toml %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load resolves the effective configuration: defaults, the optional file
// at path, then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromPath(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from files (default ".env") into the
// process environment without overriding variables already set. A missing
// default .env is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load .env: %w", err)
	}
	return nil
}

// FitOptions converts the fit section to solver options. Call Validate
// first: option constructors panic on invalid values.
func (c *Config) FitOptions(logger hclog.Logger) []fit.Option {
	return []fit.Option{
		fit.WithInitialGuess(c.Fit.InitialPrefactor, c.Fit.InitialActivationEnergy),
		fit.WithMaxEvaluations(c.Fit.MaxEvaluations),
		fit.WithTolerances(c.Fit.FTol, c.Fit.XTol, c.Fit.GTol),
		fit.WithLogger(logger),
	}
}

// PlotOptions converts the plot section to renderer options.
func (c *Config) PlotOptions() plot.Options {
	return plot.Options{Width: c.Plot.Width, Height: c.Plot.Height, DPI: c.Plot.DPI}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() hclog.Level { return hclog.LevelFromString(c.Log.Level) }
