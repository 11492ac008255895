package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emzakit/slothymarker/pkg/errors"
)

// Config holds all configuration for the highlighter
type Config struct {
	// Document handling
	FileTags []string `yaml:"file_tags"`

	// Rendering colors
	HighlightColor string `yaml:"highlight_color"`
	SelectionColor string `yaml:"selection_color"`

	// Subtitle export timing
	FallbackDuration float64 `yaml:"fallback_duration"`
	MinimumDuration  float64 `yaml:"minimum_duration"`

	// Header prepended when handing the document to an external editor
	ExternalEditHeader string `yaml:"external_edit_header"`

	// User options
	UseColors bool `yaml:"use_colors"`
	QuietMode bool `yaml:"quiet"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		FileTags:           []string{"[SRT]", "[VTT]", "[TRANSCRIPT]"},
		HighlightColor:     "#f5d76e",
		SelectionColor:     "#e91e63",
		FallbackDuration:   5.0,
		MinimumDuration:    1.0,
		ExternalEditHeader: "<!--- Edit your highlights below. Keep ==markers== intact, then save and return. -->",
		UseColors:          true,
		QuietMode:          false,
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewIOError("failed to read config file", err).WithContext("path", path)
	}

	if errYaml := yaml.Unmarshal(data, cfg); errYaml != nil {
		return nil, errors.NewConfigError("failed to parse config file", errYaml).WithContext("path", path)
	}
	if len(cfg.FileTags) == 0 {
		cfg.FileTags = NewConfig().FileTags
	}
	return cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.NewConfigError("failed to encode config", err)
	}
	if errWrite := os.WriteFile(path, data, 0644); errWrite != nil {
		return errors.NewIOError("failed to write config file", errWrite).WithContext("path", path)
	}
	return nil
}
