// SPDX-License-Identifier: EPL-2.0

// Package config loads tonegen settings from YAML with ${VAR} expansion.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audtone/audio"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type SourceConfig struct {
	Kind       string  `yaml:"kind"`
	SampleRate int     `yaml:"sample_rate"`
	Channels   int     `yaml:"channels"`
	Frequency  float64 `yaml:"frequency"`
	Amplitude  float64 `yaml:"amplitude"`
	BufferSize int     `yaml:"buffer_size"`
	PoolSize   int     `yaml:"pool_size"`
}

type OutputConfig struct {
	// Format is one of wav, aiff or raw.
	Format   string        `yaml:"format"`
	Path     string        `yaml:"path"`
	Duration time.Duration `yaml:"duration"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	// Addr is where /metrics is served. Empty disables it.
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()

	return &cfg
}

// Load reads path after loading an optional .env from the working directory.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment references in data and decodes it.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Source.Kind == "" {
		c.Source.Kind = "tone"
	}
	if c.Source.SampleRate == 0 {
		c.Source.SampleRate = 44100
	}
	if c.Source.Channels == 0 {
		c.Source.Channels = 1
	}
	if c.Source.Frequency == 0 {
		c.Source.Frequency = audio.DefaultFrequency
	}
	if c.Source.Amplitude == 0 {
		c.Source.Amplitude = audio.DefaultAmplitude
	}
	if c.Source.BufferSize == 0 {
		c.Source.BufferSize = audio.DefaultBufferSize
	}
	if c.Source.PoolSize == 0 {
		c.Source.PoolSize = audio.DefaultPoolSize
	}
	if c.Output.Format == "" {
		c.Output.Format = "wav"
	}
	if c.Output.Duration == 0 {
		c.Output.Duration = time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks values Load cannot default. Source parameters are checked
// again by the source itself.
func (c *Config) Validate() error {
	switch {
	case c.Source.SampleRate <= 0:
		return fmt.Errorf("%w: source.sample_rate must be positive, got %d", ErrInvalidConfig, c.Source.SampleRate)
	case c.Source.Channels <= 0:
		return fmt.Errorf("%w: source.channels must be positive, got %d", ErrInvalidConfig, c.Source.Channels)
	case c.Source.Frequency <= 0 || math.IsInf(c.Source.Frequency, 0) || math.IsNaN(c.Source.Frequency):
		return fmt.Errorf("%w: source.frequency must be positive, got %v", ErrInvalidConfig, c.Source.Frequency)
	case c.Source.Amplitude <= 0 || c.Source.Amplitude > 1:
		return fmt.Errorf("%w: source.amplitude must be in (0, 1], got %v", ErrInvalidConfig, c.Source.Amplitude)
	case c.Source.BufferSize < 0 || c.Source.PoolSize < 0:
		return fmt.Errorf("%w: source.buffer_size and source.pool_size must be positive", ErrInvalidConfig)
	case c.Output.Duration < 0:
		return fmt.Errorf("%w: output.duration must not be negative", ErrInvalidConfig)
	}

	switch c.Output.Format {
	case "wav", "aiff", "raw":
	default:
		return fmt.Errorf("%w: output.format %q (want wav, aiff or raw)", ErrInvalidConfig, c.Output.Format)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// ToneOptions maps the source section onto tone source options.
func (c *Config) ToneOptions() []audio.ToneOption {
	return []audio.ToneOption{
		audio.WithFrequency(c.Source.Frequency),
		audio.WithAmplitude(c.Source.Amplitude),
		audio.WithBufferSize(c.Source.BufferSize),
		audio.WithPoolSize(c.Source.PoolSize),
	}
}
