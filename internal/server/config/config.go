// Package config holds the server configuration and its file encoding.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Generator types.
const (
	GeneratorDefault = "default"
	GeneratorFlat    = "flat"
)

// Config holds the server configuration.
type Config struct {
	Seed          int64  `json:"seed" yaml:"seed"`
	GeneratorType string `json:"generator_type" yaml:"generator_type"` // "default" or "flat"
	ViewDistance  int    `json:"view_distance" yaml:"view_distance"`
	WorldRadius   int    `json:"world_radius" yaml:"world_radius"` // pre-generated radius in chunks (0 = view distance)
	DataDir       string `json:"data_dir" yaml:"data_dir"`
	SeaLevel      int    `json:"sea_level" yaml:"sea_level"`
	LargeBiomes   bool   `json:"large_biomes" yaml:"large_biomes"`
	Amplified     bool   `json:"amplified" yaml:"amplified"`

	AutosaveInterval time.Duration `json:"autosave_interval" yaml:"autosave_interval"`
	PregenWorkers    int           `json:"pregen_workers" yaml:"pregen_workers"`
	LogLevel         string        `json:"log_level" yaml:"log_level"`

	// NoiseDataDir overrides the embedded noise parameters with a data pack's
	// worldgen/noise directory.
	NoiseDataDir string `json:"noise_data_dir,omitempty" yaml:"noise_data_dir,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		GeneratorType:    GeneratorDefault,
		ViewDistance:     8,
		DataDir:          "data",
		SeaLevel:         63,
		AutosaveInterval: 5 * time.Minute,
		PregenWorkers:    4,
		LogLevel:         "info",
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.GeneratorType != GeneratorDefault && c.GeneratorType != GeneratorFlat:
		return fmt.Errorf("generator_type %q: want %q or %q", c.GeneratorType, GeneratorDefault, GeneratorFlat)
	case c.ViewDistance < 1 || c.ViewDistance > 64:
		return fmt.Errorf("view_distance %d: want 1..64", c.ViewDistance)
	case c.WorldRadius < 0:
		return fmt.Errorf("world_radius %d: must not be negative", c.WorldRadius)
	case c.PregenWorkers < 1:
		return fmt.Errorf("pregen_workers %d: want at least 1", c.PregenWorkers)
	case c.AutosaveInterval < 0:
		return fmt.Errorf("autosave_interval %v: must not be negative", c.AutosaveInterval)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// PregenRadius is the radius of the area generated at startup.
func (c *Config) PregenRadius() int {
	if c.WorldRadius > 0 {
		return c.WorldRadius
	}
	return c.ViewDistance
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, err)
	}
	return l, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["view-distance"] {
		cfg.ViewDistance = fromFile.ViewDistance
	}
	if !explicitFlags["world-radius"] {
		cfg.WorldRadius = fromFile.WorldRadius
	}
	if !explicitFlags["sea-level"] {
		cfg.SeaLevel = fromFile.SeaLevel
	}
	if !explicitFlags["large-biomes"] {
		cfg.LargeBiomes = fromFile.LargeBiomes
	}
	if !explicitFlags["amplified"] {
		cfg.Amplified = fromFile.Amplified
	}
	if !explicitFlags["autosave"] {
		cfg.AutosaveInterval = fromFile.AutosaveInterval
	}
	if !explicitFlags["pregen-workers"] {
		cfg.PregenWorkers = fromFile.PregenWorkers
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["noise-data"] {
		cfg.NoiseDataDir = fromFile.NoiseDataDir
	}
}

// File names probed by Load, in order.
const (
	YAMLFile = "config.yaml"
	JSONFile = "config.json"
)

// Load reads config.yaml, or config.json when no YAML file exists, from dir
// over the defaults. found is false when neither file exists.
func Load(dir string) (cfg *Config, found bool, err error) {
	cfg = DefaultConfig()
	for _, name := range []string{YAMLFile, JSONFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("read %s: %w", name, err)
		}
		if name == YAMLFile {
			err = yaml.Unmarshal(data, cfg)
		} else {
			err = json.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, false, fmt.Errorf("parse %s: %w", name, err)
		}
		return cfg, true, nil
	}
	return cfg, false, nil
}

// Save writes cfg to dir/config.yaml atomically.
func Save(dir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := filepath.Join(dir, YAMLFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
