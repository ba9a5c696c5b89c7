// Package apiconn provides API connector plugins: request/response
// integrations with external financial data and filing providers.
//
// Every connector shares one execution shape. Execute expects
//
//	{
//	    "method":   "GET",
//	    "endpoint": "/market-data/v1/securities",
//	    "params":   map[string]any{"symbols": "AAPL"},
//	    "data":     map[string]any{...},   // optional JSON body
//	}
//
// and returns the provider's decoded JSON response. Provider failures
// (transport errors, non-2xx responses, undecodable bodies) are
// normalized into the platform error taxonomy so registry callers see
// one failure shape regardless of which provider is behind the
// connector.
//
// Concrete variants wrap Bloomberg, TurboTax/Intuit, banking APIs, and
// arbitrary customer-configured RESTful APIs. Each exposes typed helper
// methods on top of the shared Execute contract for use outside the
// registry dispatch path.
package apiconn
