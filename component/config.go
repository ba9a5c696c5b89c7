package component

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PluginConfig declares one plugin registration.
type PluginConfig struct {
	// Category is the plugin category identifier (e.g. "api_connector").
	Category string `yaml:"category"`

	// Provider selects the factory from the catalog (e.g. "bloomberg").
	Provider string `yaml:"provider"`

	// Name is the registered plugin name. Defaults to Provider, so a
	// deployment only sets it when registering the same provider twice.
	Name string `yaml:"name,omitempty"`

	// When is an optional CEL expression over the deployment environment.
	// The entry is skipped when it evaluates to false.
	When string `yaml:"when,omitempty"`

	// Settings is the provider configuration passed to the factory.
	Settings map[string]any `yaml:"settings,omitempty"`
}

// Config is the root of a plugins.yaml file.
type Config struct {
	Plugins []PluginConfig `yaml:"plugins"`
}

// Load reads and parses a plugin configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	for i := range cfg.Plugins {
		if cfg.Plugins[i].Name == "" {
			cfg.Plugins[i].Name = cfg.Plugins[i].Provider
		}
	}
	return &cfg, nil
}

// Validate checks the structural fields of every entry. Settings are
// not checked here; each plugin validates its own settings against its
// schema during registration.
func (c *Config) Validate() error {
	for i, p := range c.Plugins {
		if p.Category == "" {
			return fmt.Errorf("plugin %d: category is required", i)
		}
		if p.Provider == "" {
			return fmt.Errorf("plugin %d: provider is required", i)
		}
	}
	return nil
}
