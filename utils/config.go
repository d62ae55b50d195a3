package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width" yaml:"width"`
	Height              int           `json:"height" yaml:"height"`
	Capacity            int           `json:"capacity" yaml:"capacity"`
	MaxDepth            int           `json:"max_depth" yaml:"max_depth"`
	NeighborHalfExtent  float64       `json:"neighbor_half_extent" yaml:"neighbor_half_extent"`
	CountSelf           bool          `json:"count_self" yaml:"count_self"`
	Seed                int64         `json:"seed" yaml:"seed"`
	FrameRate           time.Duration `json:"frame_rate" yaml:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart"`
	RefreshInterval     int           `json:"refresh_interval" yaml:"refresh_interval"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations"`
	RandomDensity       float64       `json:"random_density" yaml:"random_density"`
	InjectionCount      int           `json:"injection_count" yaml:"injection_count"`
	StatusInterval      int           `json:"status_interval" yaml:"status_interval"`
	Render              bool          `json:"render" yaml:"render"`
	LogLevel            string        `json:"log_level" yaml:"log_level"`
	LogFormat           string        `json:"log_format" yaml:"log_format"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		Capacity:            4,
		MaxDepth:            32,
		NeighborHalfExtent:  1.5,
		CountSelf:           false,
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         true,
		RefreshInterval:     200,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		InjectionCount:      3,
		StatusInterval:      50,
		Render:              true,
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// Validate checks that the config describes a buildable world
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return errors.Wrapf(ErrInvalidConfig, "world must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.Capacity < 1:
		return errors.Wrapf(ErrInvalidConfig, "capacity must be at least 1, got %d", c.Capacity)
	case c.MaxDepth < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_depth must be non-negative, got %d", c.MaxDepth)
	case c.NeighborHalfExtent <= 0:
		return errors.Wrapf(ErrInvalidConfig, "neighbor_half_extent must be positive, got %v", c.NeighborHalfExtent)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density must be within [0,1], got %v", c.RandomDensity)
	case c.StatusInterval < 0:
		return errors.Wrapf(ErrInvalidConfig, "status_interval must be non-negative, got %d", c.StatusInterval)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must be non-negative, got %v", c.FrameRate)
	}
	return nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Fields missing from the file keep their defaults.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}
	return config, nil
}
