package enterprise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/deaffirst/enterprise-sdk/plugin"
)

// registryKey identifies one registered plugin instance. Only one
// instance may occupy a given key at a time; a later registration
// overwrites the earlier one.
type registryKey struct {
	category plugin.Category
	name     string
}

// Registry is the process-wide coordinator for registering, looking up,
// and invoking plugins by (category, name).
//
// Construct one with NewRegistry at application startup, pass it by
// reference to the layers that need it, and call Close during shutdown.
// All methods are safe for concurrent use.
type Registry struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *registryMetrics

	mu      sync.RWMutex
	plugins map[registryKey]plugin.Plugin
	// order preserves per-category insertion order for deterministic
	// listing. An overwritten name keeps its original slot.
	order  map[plugin.Category][]string
	closed bool
}

// registryMetrics holds the OpenTelemetry metric instruments for plugin
// dispatch. Created once during NewRegistry when a meter is configured.
type registryMetrics struct {
	executions metric.Int64Counter
	failures   metric.Int64Counter
}

func newRegistryMetrics(meter metric.Meter) (*registryMetrics, error) {
	m := &registryMetrics{}
	var err error

	m.executions, err = meter.Int64Counter(
		"plugin.executions",
		metric.WithDescription("Number of plugin executions dispatched"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create executions counter: %w", err)
	}

	m.failures, err = meter.Int64Counter(
		"plugin.failures",
		metric.WithDescription("Number of plugin executions that failed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create failures counter: %w", err)
	}

	return m, nil
}

// NewRegistry creates an empty plugin registry.
//
// Example:
//
//	reg := enterprise.NewRegistry(
//	    enterprise.WithLogger(logger),
//	    enterprise.WithTracer(tracer),
//	)
//	defer reg.Close(context.Background())
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	r := &Registry{
		logger:  cfg.logger,
		tracer:  cfg.tracer,
		plugins: make(map[registryKey]plugin.Plugin),
		order:   make(map[plugin.Category][]string),
	}

	if cfg.meter != nil {
		metrics, err := newRegistryMetrics(cfg.meter)
		if err != nil {
			cfg.logger.Warn("failed to create registry metrics, continuing without",
				"error", err)
		} else {
			r.metrics = metrics
		}
	}

	return r
}

// Register constructs a plugin instance via factory, validates its
// settings, initializes it, and stores it under (category, name).
//
// The ordering is strict: a registration that fails validation or
// initialization mutates no registry state. On success a prior instance
// at the same key is replaced and receives a Shutdown call; its shutdown
// errors are logged, not propagated, since the replacement has already
// taken effect.
func (r *Registry) Register(ctx context.Context, category plugin.Category, name string, factory plugin.Factory, settings plugin.Settings) error {
	const op = "Registry.Register"

	if !category.Valid() {
		return NewConfigurationError(op, fmt.Errorf("%w: %q", ErrInvalidCategory, category))
	}
	if name == "" {
		return NewConfigurationError(op, errors.New("plugin name is required"))
	}
	if factory == nil {
		return NewConfigurationError(op, errors.New("plugin factory is required"))
	}

	inst, err := factory(name, settings.Clone())
	if err != nil {
		return NewConfigurationError(op, fmt.Errorf("%w: %w", ErrInvalidConfig, err)).
			WithContext(map[string]any{"category": category.String(), "name": name})
	}

	if err := inst.ValidateConfig(); err != nil {
		return NewValidationError(op, fmt.Errorf("%w: %w", ErrInvalidConfig, err)).
			WithContext(map[string]any{"category": category.String(), "name": name})
	}

	if err := inst.Initialize(ctx); err != nil {
		return NewInitializationError(op, fmt.Errorf("%w: %w", ErrInitializationFailed, err)).
			WithContext(map[string]any{"category": category.String(), "name": name})
	}

	key := registryKey{category: category, name: name}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return NewInternalError(op, ErrRegistryClosed)
	}
	prior := r.plugins[key]
	r.plugins[key] = inst
	if prior == nil {
		r.order[category] = append(r.order[category], name)
	}
	r.mu.Unlock()

	if prior != nil {
		if err := prior.Shutdown(ctx); err != nil {
			r.logger.Warn("shutdown of replaced plugin failed",
				slog.String("category", category.String()),
				slog.String("name", name),
				"error", err)
		}
	}

	r.logger.Info("plugin registered",
		slog.String("category", category.String()),
		slog.String("name", name),
		slog.String("description", inst.Description()),
	)
	return nil
}

// Get returns the plugin instance registered under (category, name).
// It fails with ErrPluginNotRegistered when the key is absent; callers
// must check the error before use.
func (r *Registry) Get(category plugin.Category, name string) (plugin.Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[registryKey{category: category, name: name}]
	if !ok {
		return nil, NewNotFoundError("Registry.Get",
			fmt.Errorf("%w: %s/%s", ErrPluginNotRegistered, category, name))
	}
	return p, nil
}

// Execute looks up the instance under (category, name) and delegates to
// its Execute. The registry is a pure dispatcher: it adds no retry, no
// timeout, and no fallback. The plugin's failure is propagated to the
// caller; deciding whether to try a different provider name under the
// same category is the caller's job.
func (r *Registry) Execute(ctx context.Context, category plugin.Category, name string, args map[string]any) (any, error) {
	const op = "Registry.Execute"

	r.mu.RLock()
	p, ok := r.plugins[registryKey{category: category, name: name}]
	r.mu.RUnlock()
	if !ok {
		return nil, NewNotFoundError(op,
			fmt.Errorf("%w: %s/%s", ErrPluginNotRegistered, category, name))
	}

	var span trace.Span
	if r.tracer != nil {
		ctx, span = r.tracer.Start(ctx, "enterprise.plugin.execute",
			trace.WithAttributes(
				attribute.String("plugin.category", category.String()),
				attribute.String("plugin.name", name),
			))
		defer span.End()
	}

	result, err := p.Execute(ctx, args)

	if r.metrics != nil {
		attrs := metric.WithAttributes(
			attribute.String("plugin.category", category.String()),
			attribute.String("plugin.name", name),
		)
		r.metrics.executions.Add(ctx, 1, attrs)
		if err != nil {
			r.metrics.failures.Add(ctx, 1, attrs)
		}
	}

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		// Variants normalize provider failures into the platform error
		// taxonomy already; pass those through unchanged.
		var perr *Error
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, NewExecutionError(op, fmt.Errorf("%w: %w", ErrExecutionFailed, err)).
			WithContext(map[string]any{"category": category.String(), "name": name})
	}

	return result, nil
}

// List enumerates the plugins registered under category, in the order
// they were registered. It returns descriptors only, never instances or
// settings, so callers cannot bypass Execute or read credentials through
// the listing surface.
func (r *Registry) List(category plugin.Category) []plugin.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(category)
}

// ListAll enumerates every registered plugin grouped by category, with
// categories in their declaration order and names in registration order.
func (r *Registry) ListAll() []plugin.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []plugin.Descriptor
	for _, category := range plugin.Categories() {
		all = append(all, r.listLocked(category)...)
	}
	return all
}

func (r *Registry) listLocked(category plugin.Category) []plugin.Descriptor {
	names := r.order[category]
	if len(names) == 0 {
		return nil
	}
	descriptors := make([]plugin.Descriptor, 0, len(names))
	for _, name := range names {
		p, ok := r.plugins[registryKey{category: category, name: name}]
		if !ok {
			continue
		}
		descriptors = append(descriptors, plugin.ToDescriptor(p))
	}
	return descriptors
}

// Unregister removes the plugin registered under (category, name) and
// invokes its Shutdown. It fails with ErrPluginNotRegistered when the
// key is absent, with no side effect.
func (r *Registry) Unregister(ctx context.Context, category plugin.Category, name string) error {
	const op = "Registry.Unregister"
	key := registryKey{category: category, name: name}

	r.mu.Lock()
	p, ok := r.plugins[key]
	if !ok {
		r.mu.Unlock()
		return NewNotFoundError(op,
			fmt.Errorf("%w: %s/%s", ErrPluginNotRegistered, category, name))
	}
	delete(r.plugins, key)
	r.order[category] = removeName(r.order[category], name)
	r.mu.Unlock()

	if err := p.Shutdown(ctx); err != nil {
		r.logger.Warn("plugin shutdown failed during unregister",
			slog.String("category", category.String()),
			slog.String("name", name),
			"error", err)
	}

	r.logger.Info("plugin unregistered",
		slog.String("category", category.String()),
		slog.String("name", name),
	)
	return nil
}

// Close shuts down every registered plugin and marks the registry
// closed. Subsequent registrations fail with ErrRegistryClosed.
// Shutdown errors are joined and returned, but every plugin is shut down
// regardless of earlier failures.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	instances := make([]plugin.Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		instances = append(instances, p)
	}
	r.plugins = make(map[registryKey]plugin.Plugin)
	r.order = make(map[plugin.Category][]string)
	r.mu.Unlock()

	var errs []error
	for _, p := range instances {
		if err := p.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s/%s: %w", p.Category(), p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
