// Package enterprise provides the plugin registry at the core of the
// DeafFirst financial-accessibility platform's enterprise integrations.
//
// The platform swaps between interchangeable third-party providers
// (video chat vendors, ASL interpretation services, financial data and
// tax filing APIs) without call-site changes. The seam is the plugin
// contract defined in the plugin package; this package supplies the
// process-wide Registry that registers, looks up, and dispatches plugin
// instances by (category, name).
//
// A Registry is an explicit, constructed object whose lifecycle is tied
// to application startup and shutdown:
//
//	reg := enterprise.NewRegistry(enterprise.WithLogger(logger))
//	defer reg.Close(context.Background())
//
//	err := reg.Register(ctx, plugin.CategoryAPIConnector, "bloomberg",
//	    apiconn.BloombergFactory, plugin.Settings{
//	        "api_key": os.Getenv("BLOOMBERG_API_KEY"),
//	    })
//
//	result, err := reg.Execute(ctx, plugin.CategoryAPIConnector, "bloomberg",
//	    map[string]any{
//	        "method":   "GET",
//	        "endpoint": "/market-data/v1/securities",
//	        "params":   map[string]any{"symbols": "AAPL"},
//	    })
//
// The registry is a thin, honest dispatcher: failures from a plugin's
// underlying provider are surfaced to the caller unchanged in kind, with
// no retry, no timeout, and no silent fallback to another provider.
// Provider swapping happens at the configuration level (see the component
// package), never as automatic runtime failover.
package enterprise
