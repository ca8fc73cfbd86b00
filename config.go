package splitly

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/viant/splitly/splitter"
)

// Config defines service defaults and named strategy profiles
type Config struct {
	// Buffer is the default fragment sink buffer size
	Buffer int `yaml:"buffer,omitempty" json:"buffer,omitempty"`
	// Profiles maps a profile name to a reusable strategy configuration
	Profiles map[string]ProfileConfig `yaml:"profiles,omitempty" json:"profiles,omitempty"`
}

// ProfileConfig binds a strategy to preset options
type ProfileConfig struct {
	Strategy string           `yaml:"strategy" json:"strategy"`
	Options  splitter.Options `yaml:"options,omitempty" json:"options,omitempty"`
}

// Validate checks profile integrity
func (c *Config) Validate() error {
	for name, profile := range c.Profiles {
		if profile.Strategy == "" {
			return fmt.Errorf("invalid profile %v: strategy was empty", name)
		}
	}
	return nil
}

// LoadConfig reads a YAML config from the supplied path
func LoadConfig(path string) (*Config, error) {
	path, err := expandUserPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	config := &Config{}
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// expandUserPath expands a leading ~ and strips a file scheme
func expandUserPath(path string) (string, error) {
	if strings.HasPrefix(path, "file://") {
		path = strings.TrimPrefix(path, "file://")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand %v: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}
