package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.ViewDistance = 12

	fromFile := DefaultConfig()
	fromFile.Seed = 99
	fromFile.ViewDistance = 4
	fromFile.GeneratorType = GeneratorFlat

	Merge(cfg, fromFile, map[string]bool{"seed": true})
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want the flag value 7", cfg.Seed)
	}
	if cfg.ViewDistance != 4 {
		t.Errorf("ViewDistance = %d, want the file value 4", cfg.ViewDistance)
	}
	if cfg.GeneratorType != GeneratorFlat {
		t.Errorf("GeneratorType = %q, want %q", cfg.GeneratorType, GeneratorFlat)
	}
}

func TestSaveLoadYAML(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Seed = -42
	cfg.AutosaveInterval = 90 * time.Second
	cfg.LargeBiomes = true
	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, found, err := Load(dir)
	if err != nil || !found {
		t.Fatalf("Load = %v, %v", found, err)
	}
	if *got != *cfg {
		t.Errorf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoadJSONFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, JSONFile), []byte(`{"seed": 5, "generator_type": "flat"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, found, err := Load(dir)
	if err != nil || !found {
		t.Fatalf("Load = %v, %v", found, err)
	}
	if got.Seed != 5 || got.GeneratorType != GeneratorFlat {
		t.Errorf("Load = %+v", got)
	}
	if got.ViewDistance != DefaultConfig().ViewDistance {
		t.Errorf("ViewDistance = %d, want the default", got.ViewDistance)
	}
}

func TestLoadYAMLDuration(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, YAMLFile), []byte("autosave_interval: 30s\nview_distance: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AutosaveInterval != 30*time.Second || got.ViewDistance != 10 {
		t.Errorf("Load = %+v", got)
	}
}

func TestLoadMissing(t *testing.T) {
	got, found, err := Load(t.TempDir())
	if err != nil || found {
		t.Fatalf("Load = %v, %v, want not found", found, err)
	}
	if *got != *DefaultConfig() {
		t.Errorf("Load without a file = %+v, want defaults", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad generator", func(c *Config) { c.GeneratorType = "amplified" }, false},
		{"view distance", func(c *Config) { c.ViewDistance = 0 }, false},
		{"workers", func(c *Config) { c.PregenWorkers = 0 }, false},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"debug level", func(c *Config) { c.LogLevel = "debug" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			if err := c.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
