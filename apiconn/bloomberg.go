package apiconn

import (
	"context"
	"fmt"
	"strings"

	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
)

// bloombergSchema extends the connector schema: Bloomberg rejects
// unauthenticated calls, so an api_key is required up front.
var bloombergSchema = schema.Object(map[string]schema.JSON{
	"base_url": schema.NonEmptyString("root URL of the Bloomberg API"),
	"api_key":  schema.NonEmptyString("Bloomberg API access token"),
	"headers":  schema.Any(),
	"timeout":  schema.Any(),
	"enabled":  schema.Bool(),
}, "base_url", "api_key")

// Bloomberg wraps the Bloomberg market-data API.
type Bloomberg struct {
	*Connector
}

// NewBloomberg creates a Bloomberg connector. The base URL defaults to
// the public Bloomberg API endpoint and may be overridden in settings.
func NewBloomberg(name string, settings plugin.Settings) (*Bloomberg, error) {
	c, err := New(name, settings)
	if err != nil {
		return nil, err
	}
	c.setDefault("base_url", "https://api.bloomberg.com")
	c.setDescription("Bloomberg market data API connector")
	c.setSchema(bloombergSchema)
	return &Bloomberg{Connector: c}, nil
}

// BloombergFactory builds Bloomberg connector plugins.
var BloombergFactory plugin.Factory = func(name string, settings plugin.Settings) (plugin.Plugin, error) {
	return NewBloomberg(name, settings)
}

// FinancialData fetches market data for the given security symbols.
func (b *Bloomberg) FinancialData(ctx context.Context, symbols []string) (any, error) {
	return b.Request(ctx, "GET", "/market-data/v1/securities",
		map[string]any{"symbols": strings.Join(symbols, ",")}, nil)
}

// Terminology fetches the definition of a financial term. The platform
// renders these definitions alongside ASL gloss translations.
func (b *Bloomberg) Terminology(ctx context.Context, term string) (any, error) {
	return b.Request(ctx, "GET", fmt.Sprintf("/terminology/v1/terms/%s", term), nil, nil)
}
