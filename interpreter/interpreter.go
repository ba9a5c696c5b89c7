package interpreter

import (
	"context"
	"errors"
	"fmt"

	"github.com/deaffirst/enterprise-sdk"
	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
	"github.com/deaffirst/enterprise-sdk/types"
)

// base carries the plumbing shared by every interpreter variant:
// identity, settings, schema validation, and lifecycle state.
type base struct {
	name        string
	description string
	settings    plugin.Settings
	schema      schema.JSON

	initialized bool
}

func newBase(name string, settings plugin.Settings) base {
	return base{
		name:     name,
		settings: settings.Clone(),
	}
}

func (b *base) Name() string { return b.name }

func (b *base) Category() plugin.Category { return plugin.CategoryASLInterpreter }

func (b *base) Description() string { return b.description }

func (b *base) Enabled() bool { return b.settings.Enabled() }

// ValidateConfig checks the settings against the variant's schema.
func (b *base) ValidateConfig() error {
	return b.schema.Validate(map[string]any(b.settings))
}

func (b *base) Initialize(ctx context.Context) error {
	b.initialized = true
	return nil
}

func (b *base) Shutdown(ctx context.Context) error {
	b.initialized = false
	return nil
}

func (b *base) Health(ctx context.Context) types.HealthStatus {
	if !b.initialized {
		return types.NewUnhealthyStatus("plugin not initialized", nil)
	}
	return types.NewHealthyStatus("plugin operational")
}

// execErr builds the uniform execution failure for interpreter actions.
func (b *base) execErr(action string, err error) error {
	var perr *enterprise.Error
	if errors.As(err, &perr) {
		return err
	}
	return enterprise.NewExecutionError("Interpreter."+action,
		fmt.Errorf("%w: %w", enterprise.ErrExecutionFailed, err)).
		WithContext(map[string]any{
			"provider": b.name,
			"action":   action,
		})
}

// notInitializedErr guards Execute on an uninitialized plugin.
func (b *base) notInitializedErr() error {
	return enterprise.NewExecutionError("Interpreter.Execute",
		fmt.Errorf("%w: plugin %s not initialized", enterprise.ErrExecutionFailed, b.name))
}

// unknownActionErr rejects actions the variant does not support.
func (b *base) unknownActionErr(action string) error {
	return b.execErr(action, fmt.Errorf("unknown action %q", action))
}
