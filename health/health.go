package health

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/deaffirst/enterprise-sdk/types"
)

// EndpointCheck verifies TCP connectivity to a host:port address.
// It returns a healthy status if the connection succeeds within the
// timeout, unhealthy otherwise.
//
// Example:
//
//	status := health.EndpointCheck("api.zoom.us:443", 3*time.Second)
//	if status.IsUnhealthy() {
//	    log.Warn("zoom unreachable")
//	}
func EndpointCheck(address string, timeout time.Duration) types.HealthStatus {
	if address == "" {
		return types.NewUnhealthyStatus("address cannot be empty", nil)
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return types.NewUnhealthyStatus(
			fmt.Sprintf("endpoint %s unreachable", address),
			map[string]any{
				"address": address,
				"error":   err.Error(),
			},
		)
	}
	defer conn.Close()

	return types.NewHealthyStatus(fmt.Sprintf("endpoint %s reachable", address))
}

// URLCheck performs a HEAD request against rawURL and reports the result.
// Any response below 500, including 4xx, counts as reachable: the
// provider is up even if it rejects an unauthenticated probe. Transport
// failures are unhealthy and 5xx responses are degraded.
//
// A nil client falls back to http.DefaultClient. Callers should pass a
// context with a deadline.
func URLCheck(ctx context.Context, client *http.Client, rawURL string) types.HealthStatus {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return types.NewUnhealthyStatus(fmt.Sprintf("invalid URL %q", rawURL), nil)
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return types.NewUnhealthyStatus(
			fmt.Sprintf("building probe request for %s failed", rawURL),
			map[string]any{"error": err.Error()},
		)
	}

	resp, err := client.Do(req)
	if err != nil {
		return types.NewUnhealthyStatus(
			fmt.Sprintf("provider at %s unreachable", u.Host),
			map[string]any{
				"url":   rawURL,
				"error": err.Error(),
			},
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return types.NewDegradedStatus(
			fmt.Sprintf("provider at %s responded with %d", u.Host, resp.StatusCode),
			map[string]any{"status_code": resp.StatusCode},
		)
	}

	return types.NewHealthyStatus(fmt.Sprintf("provider at %s reachable", u.Host))
}
