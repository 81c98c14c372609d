// Package config loads bytewalk settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".bytewalk.yaml"

// Config holds the settings shared by the CLI commands.
type Config struct {
	IncludeHidden  bool     `yaml:"include_hidden"`
	IncludeBinary  bool     `yaml:"include_binary"`
	MaxFileSize    int64    `yaml:"max_file_size"`
	MaxDiagnostics int      `yaml:"max_diagnostics"`
	Exclude        []string `yaml:"exclude,omitempty"`
	Format         string   `yaml:"format"`
	Color          string   `yaml:"color"`
	Output         string   `yaml:"output"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxFileSize: 10 * 1024 * 1024,
		Format:      "human",
		Color:       "auto",
		Output:      ":memory:",
	}
}

var (
	validFormats = map[string]bool{"human": true, "json": true, "sarif": true}
	validColors  = map[string]bool{"auto": true, "always": true, "never": true}
)

// Validate checks enumerated fields and limits.
func (c Config) Validate() error {
	if !validFormats[c.Format] {
		return fmt.Errorf("unknown format %q (want human, json or sarif)", c.Format)
	}
	if !validColors[c.Color] {
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", c.Color)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative")
	}
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("max_diagnostics must not be negative")
	}
	return nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config at path. An empty path means DefaultFile, which may
// be absent; an explicitly named file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
