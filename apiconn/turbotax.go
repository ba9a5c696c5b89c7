package apiconn

import (
	"context"
	"fmt"

	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
)

var turboTaxSchema = schema.Object(map[string]schema.JSON{
	"base_url": schema.NonEmptyString("root URL of the Intuit API"),
	"api_key":  schema.NonEmptyString("Intuit OAuth access token"),
	"headers":  schema.Any(),
	"timeout":  schema.Any(),
	"enabled":  schema.Bool(),
}, "base_url", "api_key")

// TurboTax wraps the TurboTax/Intuit tax filing API.
type TurboTax struct {
	*Connector
}

// NewTurboTax creates a TurboTax connector with the Intuit API endpoint
// as the default base URL.
func NewTurboTax(name string, settings plugin.Settings) (*TurboTax, error) {
	c, err := New(name, settings)
	if err != nil {
		return nil, err
	}
	c.setDefault("base_url", "https://api.intuit.com")
	c.setDescription("TurboTax/Intuit tax filing API connector")
	c.setSchema(turboTaxSchema)
	return &TurboTax{Connector: c}, nil
}

// TurboTaxFactory builds TurboTax connector plugins.
var TurboTaxFactory plugin.Factory = func(name string, settings plugin.Settings) (plugin.Plugin, error) {
	return NewTurboTax(name, settings)
}

// ImportTaxData fetches a user's imported tax data.
func (t *TurboTax) ImportTaxData(ctx context.Context, userID string) (any, error) {
	return t.Request(ctx, "GET", fmt.Sprintf("/tax/v1/users/%s/data", userID), nil, nil)
}

// SubmitReturn submits a prepared tax return.
func (t *TurboTax) SubmitReturn(ctx context.Context, returnData map[string]any) (any, error) {
	return t.Request(ctx, "POST", "/tax/v1/returns", nil, returnData)
}
