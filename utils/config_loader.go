package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ─── Prep config ────────────────────────────────────────────────────────

type InputConfig struct {
	Path          string `yaml:"path"`
	NMinValid     int    `yaml:"n_min_valid"`
	ChannelBuffer int    `yaml:"channel_buffer"`
}

type TransformConfig struct {
	Workers      int  `yaml:"workers"`
	StrictDomain bool `yaml:"strict_domain"` // fail on NaN/Inf instead of propagating
}

type StorageConfig struct {
	BaseDir       string `yaml:"base_dir"`
	SessionPrefix string `yaml:"session_prefix"`
	Overwrite     bool   `yaml:"overwrite"`
	BufferSizeKB  int    `yaml:"buffer_size_kb"`
	WriteHeader   bool   `yaml:"write_header"`
	WriteYAML     bool   `yaml:"write_yaml"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// PrepConfig is the top-level structure for prep.yaml.
type PrepConfig struct {
	Input     InputConfig     `yaml:"input"`
	Transform TransformConfig `yaml:"transform"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// DefaultPrepConfig returns the settings used when no config file is given.
func DefaultPrepConfig() *PrepConfig {
	cfg := &PrepConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *PrepConfig) applyDefaults() {
	if c.Input.ChannelBuffer <= 0 {
		c.Input.ChannelBuffer = 256
	}
	if c.Transform.Workers <= 0 {
		c.Transform.Workers = 4
	}
	if c.Storage.BaseDir == "" {
		c.Storage.BaseDir = "output"
	}
	if c.Storage.SessionPrefix == "" {
		c.Storage.SessionPrefix = "prep"
	}
	if c.Storage.BufferSizeKB <= 0 {
		c.Storage.BufferSizeKB = 256
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *PrepConfig) Validate() error {
	if c.Input.NMinValid < 0 {
		return fmt.Errorf("input.n_min_valid must be >= 0 (got %d): %w", c.Input.NMinValid, ErrValue)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ─── Loader ─────────────────────────────────────────────────────────────

// LoadPrepConfig reads and parses prep.yaml, then fills defaults.
func LoadPrepConfig(path string) (*PrepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prep config: %w", err)
	}
	var cfg PrepConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse prep config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate prep config: %w", err)
	}
	return &cfg, nil
}
