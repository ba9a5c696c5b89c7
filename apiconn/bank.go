package apiconn

import (
	"context"
	"fmt"

	"github.com/deaffirst/enterprise-sdk/plugin"
)

// Bank wraps a generic bank API. Unlike the branded connectors there is
// no default base URL: each partner bank supplies its own endpoint.
type Bank struct {
	*Connector

	bankName string
}

// NewBank creates a bank connector.
func NewBank(name string, settings plugin.Settings) (*Bank, error) {
	c, err := New(name, settings)
	if err != nil {
		return nil, err
	}
	bankName := settings.StringOr("bank_name", "Generic Bank")
	c.setDescription(fmt.Sprintf("%s account API connector", bankName))
	return &Bank{Connector: c, bankName: bankName}, nil
}

// BankFactory builds bank connector plugins.
var BankFactory plugin.Factory = func(name string, settings plugin.Settings) (plugin.Plugin, error) {
	return NewBank(name, settings)
}

// BankName returns the partner bank's display name.
func (b *Bank) BankName() string {
	return b.bankName
}

// Accounts fetches a customer's accounts.
func (b *Bank) Accounts(ctx context.Context, customerID string) (any, error) {
	return b.Request(ctx, "GET",
		fmt.Sprintf("/accounts/v1/customers/%s/accounts", customerID), nil, nil)
}

// Transactions fetches transactions for an account within a date range.
// Dates are ISO 8601 strings (YYYY-MM-DD).
func (b *Bank) Transactions(ctx context.Context, accountID, startDate, endDate string) (any, error) {
	return b.Request(ctx, "GET",
		fmt.Sprintf("/transactions/v1/accounts/%s", accountID),
		map[string]any{
			"start_date": startDate,
			"end_date":   endDate,
		}, nil)
}
