package plugin

import (
	"context"

	"github.com/deaffirst/enterprise-sdk/types"
)

// Plugin is the uniform contract every enterprise plugin variant
// satisfies. The registry treats heterogeneous providers identically
// through this interface: it validates, initializes, and dispatches
// without knowing which provider is behind an instance.
//
// Implementations must not be considered usable until ValidateConfig and
// Initialize have both succeeded; the registry enforces this ordering at
// registration time.
type Plugin interface {
	// Name returns the registration name of this instance, unique within
	// its category.
	Name() string

	// Category returns the capability class this plugin belongs to.
	Category() Category

	// Description returns a human-readable description of the provider
	// behind this plugin.
	Description() string

	// ValidateConfig reports whether the settings supplied at
	// construction contain everything the plugin needs to operate.
	// It must be callable before Initialize and must not perform network
	// calls.
	ValidateConfig() error

	// Initialize performs any setup needed before first use, such as
	// deriving internal fields from settings. It is called once per
	// registration. A failed Initialize leaves the plugin unusable.
	Initialize(ctx context.Context) error

	// Execute performs the plugin's primary capability. The shape of args
	// is specific to each variant: API connectors expect
	// {method, endpoint, params, data}; service connectors expect an
	// "action" discriminator plus an action payload.
	//
	// Failures from the underlying provider are normalized into the
	// platform's error taxonomy rather than leaking provider-specific
	// types.
	Execute(ctx context.Context, args map[string]any) (any, error)

	// Shutdown releases provider-side resources held by this instance.
	// The registry invokes it when the instance is unregistered,
	// overwritten, or when the registry is closed.
	Shutdown(ctx context.Context) error

	// Health returns the current operational status of the plugin.
	Health(ctx context.Context) types.HealthStatus
}

// Factory constructs a plugin instance bound to the given name and
// settings. Registration supplies a Factory rather than an instance so
// the registry controls construction, validation, and initialization
// ordering.
type Factory func(name string, settings Settings) (Plugin, error)
