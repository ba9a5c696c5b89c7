package enterprise

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/deaffirst/enterprise-sdk/plugin"
)

func TestNewRegistry_Defaults(t *testing.T) {
	reg := NewRegistry()

	assert.NotNil(t, reg.logger, "a registry without options still logs")
	assert.Nil(t, reg.tracer)
	assert.Nil(t, reg.metrics)
}

func TestWithLogger(t *testing.T) {
	logger := slog.Default().With("component", "registry")
	reg := NewRegistry(WithLogger(logger))
	assert.Same(t, logger, reg.logger)
}

func TestWithMeter(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	reg := NewRegistry(WithMeter(meter))
	require.NotNil(t, reg.metrics)

	// Dispatch once so the counters are exercised.
	ctx := context.Background()
	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "importer",
		testFactory(plugin.CategoryDataConnector), nil))
	_, err := reg.Execute(ctx, plugin.CategoryDataConnector, "importer", nil)
	assert.NoError(t, err)
}
