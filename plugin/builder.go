package plugin

import (
	"context"
	"fmt"

	"github.com/deaffirst/enterprise-sdk/types"
)

// ExecuteFunc handles a plugin execution request.
type ExecuteFunc func(ctx context.Context, args map[string]any) (any, error)

// ValidateFunc reports whether the plugin's settings are usable.
type ValidateFunc func(settings Settings) error

// InitFunc is called once to initialize the plugin.
type InitFunc func(ctx context.Context, settings Settings) error

// ShutdownFunc is called to release the plugin's resources.
type ShutdownFunc func(ctx context.Context) error

// Config holds the configuration for building a function-backed plugin.
// Use NewConfig to create a configuration, the setter methods to populate
// it, and New to build the plugin.
type Config struct {
	name         string
	category     Category
	description  string
	settings     Settings
	executeFunc  ExecuteFunc
	validateFunc ValidateFunc
	initFunc     InitFunc
	shutdownFunc ShutdownFunc
}

// NewConfig creates a plugin configuration with no-op lifecycle hooks.
func NewConfig() *Config {
	return &Config{
		settings: Settings{},
		validateFunc: func(Settings) error {
			return nil
		},
		initFunc: func(context.Context, Settings) error {
			return nil
		},
		shutdownFunc: func(context.Context) error {
			return nil
		},
	}
}

// SetName sets the plugin's registration name.
func (c *Config) SetName(name string) {
	c.name = name
}

// SetCategory sets the plugin's capability category.
func (c *Config) SetCategory(category Category) {
	c.category = category
}

// SetDescription sets the plugin's provider description.
func (c *Config) SetDescription(desc string) {
	c.description = desc
}

// SetSettings sets the settings bound to the plugin instance.
func (c *Config) SetSettings(settings Settings) {
	c.settings = settings
}

// SetExecuteFunc sets the execution handler. Required.
func (c *Config) SetExecuteFunc(fn ExecuteFunc) {
	c.executeFunc = fn
}

// SetValidateFunc sets the settings validation hook.
func (c *Config) SetValidateFunc(fn ValidateFunc) {
	c.validateFunc = fn
}

// SetInitFunc sets the initialization hook.
func (c *Config) SetInitFunc(fn InitFunc) {
	c.initFunc = fn
}

// SetShutdownFunc sets the shutdown hook.
func (c *Config) SetShutdownFunc(fn ShutdownFunc) {
	c.shutdownFunc = fn
}

// New creates a Plugin from the configuration.
// Returns an error if the configuration is incomplete.
func New(cfg *Config) (Plugin, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}
	if !cfg.category.Valid() {
		return nil, fmt.Errorf("plugin category %q is not valid", cfg.category)
	}
	if cfg.executeFunc == nil {
		return nil, fmt.Errorf("plugin execute function is required")
	}

	return &funcPlugin{
		name:         cfg.name,
		category:     cfg.category,
		description:  cfg.description,
		settings:     cfg.settings.Clone(),
		executeFunc:  cfg.executeFunc,
		validateFunc: cfg.validateFunc,
		initFunc:     cfg.initFunc,
		shutdownFunc: cfg.shutdownFunc,
	}, nil
}

// funcPlugin is the private function-backed implementation of Plugin.
type funcPlugin struct {
	name         string
	category     Category
	description  string
	settings     Settings
	executeFunc  ExecuteFunc
	validateFunc ValidateFunc
	initFunc     InitFunc
	shutdownFunc ShutdownFunc
	initialized  bool
}

func (p *funcPlugin) Name() string {
	return p.name
}

func (p *funcPlugin) Category() Category {
	return p.category
}

func (p *funcPlugin) Description() string {
	return p.description
}

func (p *funcPlugin) Enabled() bool {
	return p.settings.Enabled()
}

func (p *funcPlugin) ValidateConfig() error {
	return p.validateFunc(p.settings)
}

func (p *funcPlugin) Initialize(ctx context.Context) error {
	if p.initialized {
		return fmt.Errorf("plugin %s already initialized", p.name)
	}
	if err := p.initFunc(ctx, p.settings); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

func (p *funcPlugin) Execute(ctx context.Context, args map[string]any) (any, error) {
	return p.executeFunc(ctx, args)
}

func (p *funcPlugin) Shutdown(ctx context.Context) error {
	if !p.initialized {
		return nil
	}
	p.initialized = false
	return p.shutdownFunc(ctx)
}

func (p *funcPlugin) Health(ctx context.Context) types.HealthStatus {
	if !p.initialized {
		return types.NewUnhealthyStatus("plugin not initialized", nil)
	}
	return types.NewHealthyStatus("plugin operational")
}
