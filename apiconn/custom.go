package apiconn

import (
	"context"
	"fmt"

	"github.com/deaffirst/enterprise-sdk"
	"github.com/deaffirst/enterprise-sdk/plugin"
)

// Custom is a flexible connector for customer-operated RESTful APIs.
// White-label resellers configure named endpoints once and invoke them
// by name, so route code never embeds partner-specific paths:
//
//	settings := plugin.Settings{
//	    "base_url": "https://internal.partner.example",
//	    "endpoints": map[string]any{
//	        "eligibility": map[string]any{"method": "POST", "path": "/v2/eligibility"},
//	    },
//	}
type Custom struct {
	*Connector

	endpoints map[string]customEndpoint
}

type customEndpoint struct {
	method string
	path   string
}

// NewCustom creates a connector for a customer-configured API.
func NewCustom(name string, settings plugin.Settings) (*Custom, error) {
	c, err := New(name, settings)
	if err != nil {
		return nil, err
	}
	c.setDescription("custom enterprise API connector")
	return &Custom{Connector: c}, nil
}

// CustomFactory builds custom enterprise connector plugins.
var CustomFactory plugin.Factory = func(name string, settings plugin.Settings) (plugin.Plugin, error) {
	return NewCustom(name, settings)
}

// ValidateConfig additionally checks that every configured endpoint
// carries a path.
func (c *Custom) ValidateConfig() error {
	if err := c.Connector.ValidateConfig(); err != nil {
		return err
	}
	for name, raw := range c.settings.Map("endpoints") {
		entry, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("endpoint %q: expected a mapping, got %T", name, raw)
		}
		if plugin.Settings(entry).String("path") == "" {
			return fmt.Errorf("endpoint %q: path is required", name)
		}
	}
	return nil
}

// Initialize parses the configured endpoint table after the base
// connector has derived its request state.
func (c *Custom) Initialize(ctx context.Context) error {
	if err := c.Connector.Initialize(ctx); err != nil {
		return err
	}
	c.endpoints = make(map[string]customEndpoint)
	for name, raw := range c.settings.Map("endpoints") {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		e := plugin.Settings(entry)
		c.endpoints[name] = customEndpoint{
			method: e.StringOr("method", "GET"),
			path:   e.String("path"),
		}
	}
	return nil
}

// CallEndpoint invokes a named configured endpoint.
func (c *Custom) CallEndpoint(ctx context.Context, endpointName string, params, data map[string]any) (any, error) {
	ep, ok := c.endpoints[endpointName]
	if !ok {
		return nil, enterprise.NewExecutionError("CustomConnector.CallEndpoint",
			fmt.Errorf("%w: endpoint %q not configured", enterprise.ErrExecutionFailed, endpointName)).
			WithContext(map[string]any{"provider": c.Name()})
	}
	return c.Request(ctx, ep.method, ep.path, params, data)
}

// Execute supports both the shared {method, endpoint, ...} shape and a
// configured-endpoint call via {"endpoint_name": "..."}.
func (c *Custom) Execute(ctx context.Context, args map[string]any) (any, error) {
	a := plugin.Settings(args)
	if name := a.String("endpoint_name"); name != "" {
		return c.CallEndpoint(ctx, name, a.Map("params"), a.Map("data"))
	}
	return c.Connector.Execute(ctx, args)
}
