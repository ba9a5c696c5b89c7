package enterprise

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/deaffirst/enterprise-sdk/plugin"
)

// testFactory builds function-backed plugins for registry tests. The
// returned factory tags results with the instance name so overwrite
// tests can tell instances apart.
func testFactory(category plugin.Category) plugin.Factory {
	return func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(category)
		cfg.SetSettings(settings)
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return map[string]any{"served_by": name}, nil
		})
		return plugin.New(cfg)
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	err := reg.Register(ctx, plugin.CategoryDataConnector, "importer",
		testFactory(plugin.CategoryDataConnector), nil)
	require.NoError(t, err)

	p, err := reg.Get(plugin.CategoryDataConnector, "importer")
	require.NoError(t, err)
	assert.Equal(t, "importer", p.Name())
}

func TestRegistry_RegisterInvalidCategory(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register(context.Background(), "time_travel", "tardis",
		testFactory("time_travel"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestRegistry_RegisterRequiresNameAndFactory(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	err := reg.Register(ctx, plugin.CategoryDataConnector, "",
		testFactory(plugin.CategoryDataConnector), nil)
	assert.Error(t, err)

	err = reg.Register(ctx, plugin.CategoryDataConnector, "importer", nil, nil)
	assert.Error(t, err)
}

func TestRegistry_RegisterFactoryFailure(t *testing.T) {
	reg := NewRegistry()
	factory := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		return nil, errors.New("bad settings shape")
	}

	err := reg.Register(context.Background(), plugin.CategoryDataConnector, "importer", factory, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRegistry_RegisterValidationFailureLeavesNoState(t *testing.T) {
	reg := NewRegistry()
	factory := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetValidateFunc(func(plugin.Settings) error {
			return errors.New("api_key is required")
		})
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return nil, nil
		})
		return plugin.New(cfg)
	}

	err := reg.Register(context.Background(), plugin.CategoryDataConnector, "importer", factory, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindValidation, perr.Kind)

	_, err = reg.Get(plugin.CategoryDataConnector, "importer")
	assert.ErrorIs(t, err, ErrPluginNotRegistered)
	assert.Empty(t, reg.List(plugin.CategoryDataConnector))
}

func TestRegistry_RegisterInitializationFailureLeavesNoState(t *testing.T) {
	reg := NewRegistry()
	factory := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetInitFunc(func(context.Context, plugin.Settings) error {
			return errors.New("upstream handshake failed")
		})
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return nil, nil
		})
		return plugin.New(cfg)
	}

	err := reg.Register(context.Background(), plugin.CategoryDataConnector, "importer", factory, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInitializationFailed)

	_, err = reg.Get(plugin.CategoryDataConnector, "importer")
	assert.ErrorIs(t, err, ErrPluginNotRegistered)
}

func TestRegistry_OverwriteReplacesAndShutsDownPrior(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	var firstShutdown bool
	first := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return "first", nil
		})
		cfg.SetShutdownFunc(func(context.Context) error {
			firstShutdown = true
			return nil
		})
		return plugin.New(cfg)
	}
	second := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return "second", nil
		})
		return plugin.New(cfg)
	}

	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "importer", first, nil))
	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "importer", second, nil))

	assert.True(t, firstShutdown, "replaced instance must be shut down")

	result, err := reg.Execute(ctx, plugin.CategoryDataConnector, "importer", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", result)

	listed := reg.List(plugin.CategoryDataConnector)
	require.Len(t, listed, 1, "overwrite must not duplicate the listing entry")
}

func TestRegistry_ExecuteNotRegistered(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Execute(context.Background(), plugin.CategoryVideoChat, "webex", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPluginNotRegistered)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindNotFound, perr.Kind)
}

func TestRegistry_ExecutePropagatesPlatformErrors(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	cause := NewExecutionError("Provider.call",
		fmt.Errorf("%w: rate limited", ErrExecutionFailed)).
		WithContext(map[string]any{"provider": "flaky"})
	factory := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return nil, cause
		})
		return plugin.New(cfg)
	}
	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "flaky", factory, nil))

	_, err := reg.Execute(ctx, plugin.CategoryDataConnector, "flaky", nil)
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Same(t, cause, perr, "already-normalized failures pass through unchanged")
}

func TestRegistry_ExecuteWrapsForeignErrors(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	factory := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return nil, errors.New("socket closed")
		})
		return plugin.New(cfg)
	}
	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "raw", factory, nil))

	_, err := reg.Execute(ctx, plugin.CategoryDataConnector, "raw", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutionFailed)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "raw", perr.Context["name"])
}

func TestRegistry_ListPreservesInsertionOrder(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	for _, name := range []string{"zoom", "twilio", "meet"} {
		require.NoError(t, reg.Register(ctx, plugin.CategoryVideoChat, name,
			testFactory(plugin.CategoryVideoChat), nil))
	}
	require.NoError(t, reg.Register(ctx, plugin.CategoryAPIConnector, "bloomberg",
		testFactory(plugin.CategoryAPIConnector), nil))

	listed := reg.List(plugin.CategoryVideoChat)
	require.Len(t, listed, 3)
	assert.Equal(t, "zoom", listed[0].Name)
	assert.Equal(t, "twilio", listed[1].Name)
	assert.Equal(t, "meet", listed[2].Name)
	for _, d := range listed {
		assert.Equal(t, plugin.CategoryVideoChat, d.Category)
	}
}

func TestRegistry_ListEmptyCategory(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.List(plugin.CategoryPaymentProcessor))
}

func TestRegistry_OverwriteKeepsListingSlot(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, reg.Register(ctx, plugin.CategoryVideoChat, name,
			testFactory(plugin.CategoryVideoChat), nil))
	}
	require.NoError(t, reg.Register(ctx, plugin.CategoryVideoChat, "b",
		testFactory(plugin.CategoryVideoChat), nil))

	listed := reg.List(plugin.CategoryVideoChat)
	require.Len(t, listed, 3)
	assert.Equal(t, "b", listed[1].Name, "overwritten name keeps its original slot")
}

func TestRegistry_ListAllGroupsByCategory(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	require.NoError(t, reg.Register(ctx, plugin.CategoryVideoChat, "twilio",
		testFactory(plugin.CategoryVideoChat), nil))
	require.NoError(t, reg.Register(ctx, plugin.CategoryAPIConnector, "bloomberg",
		testFactory(plugin.CategoryAPIConnector), nil))
	require.NoError(t, reg.Register(ctx, plugin.CategoryAPIConnector, "turbotax",
		testFactory(plugin.CategoryAPIConnector), nil))

	all := reg.ListAll()
	require.Len(t, all, 3)
	assert.Equal(t, "bloomberg", all[0].Name, "api_connector entries come first")
	assert.Equal(t, "turbotax", all[1].Name)
	assert.Equal(t, "twilio", all[2].Name)
}

func TestRegistry_Unregister(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	var shutdown bool
	factory := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryVideoChat)
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return nil, nil
		})
		cfg.SetShutdownFunc(func(context.Context) error {
			shutdown = true
			return nil
		})
		return plugin.New(cfg)
	}

	require.NoError(t, reg.Register(ctx, plugin.CategoryVideoChat, "twilio", factory, nil))
	require.NoError(t, reg.Unregister(ctx, plugin.CategoryVideoChat, "twilio"))

	assert.True(t, shutdown, "unregister must shut the instance down")
	assert.Empty(t, reg.List(plugin.CategoryVideoChat))

	_, err := reg.Get(plugin.CategoryVideoChat, "twilio")
	assert.ErrorIs(t, err, ErrPluginNotRegistered)
}

func TestRegistry_UnregisterAbsent(t *testing.T) {
	reg := NewRegistry()

	err := reg.Unregister(context.Background(), plugin.CategoryVideoChat, "twilio")
	assert.ErrorIs(t, err, ErrPluginNotRegistered)
}

func TestRegistry_ReRegisterAfterUnregister(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "importer",
		testFactory(plugin.CategoryDataConnector), nil))
	require.NoError(t, reg.Unregister(ctx, plugin.CategoryDataConnector, "importer"))

	replacement := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetDescription("replacement importer")
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return "replacement", nil
		})
		return plugin.New(cfg)
	}
	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "importer", replacement, nil))

	result, err := reg.Execute(ctx, plugin.CategoryDataConnector, "importer", nil)
	require.NoError(t, err)
	assert.Equal(t, "replacement", result)
}

func TestRegistry_Close(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	var shutdowns int
	factory := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return nil, nil
		})
		cfg.SetShutdownFunc(func(context.Context) error {
			shutdowns++
			return nil
		})
		return plugin.New(cfg)
	}

	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "a", factory, nil))
	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "b", factory, nil))

	require.NoError(t, reg.Close(ctx))
	assert.Equal(t, 2, shutdowns)

	err := reg.Register(ctx, plugin.CategoryDataConnector, "c", factory, nil)
	assert.ErrorIs(t, err, ErrRegistryClosed)

	_, err = reg.Execute(ctx, plugin.CategoryDataConnector, "a", nil)
	assert.ErrorIs(t, err, ErrPluginNotRegistered)

	assert.NoError(t, reg.Close(ctx), "closing twice is a no-op")
}

func TestRegistry_CloseJoinsShutdownErrors(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	factory := func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		cfg := plugin.NewConfig()
		cfg.SetName(name)
		cfg.SetCategory(plugin.CategoryDataConnector)
		cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (any, error) {
			return nil, nil
		})
		cfg.SetShutdownFunc(func(context.Context) error {
			return fmt.Errorf("%s refused to stop", name)
		})
		return plugin.New(cfg)
	}

	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "a", factory, nil))
	require.NoError(t, reg.Register(ctx, plugin.CategoryDataConnector, "b", factory, nil))

	err := reg.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a refused to stop")
	assert.Contains(t, err.Error(), "b refused to stop")
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()
	factory := testFactory(plugin.CategoryDataConnector)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("worker-%d", i)
			if err := reg.Register(ctx, plugin.CategoryDataConnector, name, factory, nil); err != nil {
				t.Error(err)
				return
			}
			if _, err := reg.Execute(ctx, plugin.CategoryDataConnector, name, nil); err != nil {
				t.Error(err)
			}
			reg.List(plugin.CategoryDataConnector)
			reg.ListAll()
		}(i)
	}
	wg.Wait()

	assert.Len(t, reg.List(plugin.CategoryDataConnector), 16)
}

func TestRegistry_ExecuteRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	reg := NewRegistry(WithTracer(provider.Tracer("test")))
	ctx := context.Background()

	require.NoError(t, reg.Register(ctx, plugin.CategoryVideoChat, "twilio",
		testFactory(plugin.CategoryVideoChat), nil))

	_, err := reg.Execute(ctx, plugin.CategoryVideoChat, "twilio", nil)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "enterprise.plugin.execute", spans[0].Name())

	attrs := spans[0].Attributes()
	var sawCategory, sawName bool
	for _, attr := range attrs {
		switch string(attr.Key) {
		case "plugin.category":
			sawCategory = true
			assert.Equal(t, "video_chat", attr.Value.AsString())
		case "plugin.name":
			sawName = true
			assert.Equal(t, "twilio", attr.Value.AsString())
		}
	}
	assert.True(t, sawCategory)
	assert.True(t, sawName)
}
