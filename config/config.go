package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/perf"
)

// EnvPrefix namespaces every environment variable read by Load
const EnvPrefix = "RAINFIELD_"

// DefaultConfigPath is read when present; an explicit --config must exist
const DefaultConfigPath = "rainfield.yaml"

// Config is the resolved runtime configuration
type Config struct {
	PixelRatio   int    `yaml:"pixel_ratio" env:"PIXEL_RATIO"`
	ReduceMotion bool   `yaml:"reduce_motion" env:"REDUCE_MOTION"`
	Connection   string `yaml:"connection" env:"CONNECTION"`
	ColorMode    string `yaml:"color_mode" env:"COLOR_MODE"`
	Seed         uint64 `yaml:"seed" env:"SEED"`

	HUD         bool   `yaml:"hud" env:"HUD"`
	Audio       bool   `yaml:"audio" env:"AUDIO"`
	MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR"`

	Debug   bool   `yaml:"debug" env:"DEBUG"`
	LogFile string `yaml:"log_file" env:"LOG_FILE"`

	Device Device `yaml:"device" envPrefix:"DEVICE_"`
}

// Device overrides measured capabilities to emulate another machine
type Device struct {
	Cores    int     `yaml:"cores" env:"CORES"`
	MemoryGB float64 `yaml:"memory_gb" env:"MEMORY_GB"`
	Mobile   *bool   `yaml:"mobile" env:"MOBILE"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		PixelRatio: parameter.MinPixelRatio,
		ColorMode:  "auto",
		LogFile:    "rainfield.log",
	}
}

// LoadOptions locates the optional configuration sources
type LoadOptions struct {
	// Path is the YAML file; Explicit makes a missing file an error
	Path     string
	Explicit bool

	// DotEnv is loaded into the process environment when present
	DotEnv string
}

// Load layers defaults, the YAML file, .env and the environment, then validates
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.Path != "" {
		if err := cfg.loadFile(opts.Path, opts.Explicit); err != nil {
			return cfg, err
		}
	}

	if opts.DotEnv != "" {
		if err := godotenv.Load(opts.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", opts.DotEnv, err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ParseEnv overlays RAINFIELD_* environment variables onto target
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

var colorModes = []string{"auto", "truecolor", "24bit", "256"}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var errs []error
	if c.PixelRatio < parameter.MinPixelRatio || c.PixelRatio > parameter.MaxPixelRatio {
		errs = append(errs, fmt.Errorf("pixel_ratio %d outside %d-%d",
			c.PixelRatio, parameter.MinPixelRatio, parameter.MaxPixelRatio))
	}
	if c.Connection != "" && !slices.Contains(perf.ConnectionClasses, strings.ToLower(c.Connection)) {
		errs = append(errs, fmt.Errorf("connection %q not one of %s",
			c.Connection, strings.Join(perf.ConnectionClasses, ", ")))
	}
	if !slices.Contains(colorModes, strings.ToLower(c.ColorMode)) {
		errs = append(errs, fmt.Errorf("color_mode %q not one of %s",
			c.ColorMode, strings.Join(colorModes, ", ")))
	}
	if c.Device.Cores < 0 {
		errs = append(errs, fmt.Errorf("device.cores %d is negative", c.Device.Cores))
	}
	if c.Device.MemoryGB < 0 {
		errs = append(errs, fmt.Errorf("device.memory_gb %g is negative", c.Device.MemoryGB))
	}
	if c.Debug && c.LogFile == "" {
		errs = append(errs, errors.New("debug requires log_file"))
	}
	return errors.Join(errs...)
}

// ProbeOptions maps the configuration onto capability probe inputs
func (c Config) ProbeOptions() perf.ProbeOptions {
	return perf.ProbeOptions{
		ReduceMotion: c.ReduceMotion,
		PixelRatio:   float64(c.PixelRatio),
		Connection:   strings.ToLower(c.Connection),
		Cores:        c.Device.Cores,
		MemoryGB:     c.Device.MemoryGB,
		Mobile:       c.Device.Mobile,
	}
}
