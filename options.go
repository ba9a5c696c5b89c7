package enterprise

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

// registryConfig holds configuration for a Registry instance.
type registryConfig struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
}

// WithLogger sets a custom structured logger for the registry.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer. When configured, every
// dispatch through Execute is recorded as a span carrying the plugin
// category and name.
func WithTracer(tracer trace.Tracer) RegistryOption {
	return func(c *registryConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter. When configured, the registry
// counts dispatched and failed executions per plugin.
func WithMeter(meter metric.Meter) RegistryOption {
	return func(c *registryConfig) {
		c.meter = meter
	}
}
