package apiconn

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deaffirst/enterprise-sdk"
	"github.com/deaffirst/enterprise-sdk/plugin"
)

// recordedRequest captures what the fake provider received.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Auth   string
	Body   map[string]any
}

// newProvider starts a fake provider that records requests and answers
// with the given status and payload.
func newProvider(t *testing.T, status int, payload any) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = map[string]string{}
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		rec.Auth = r.Header.Get("Authorization")
		if r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				rec.Body = body
			}
		}
		w.WriteHeader(status)
		if payload != nil {
			json.NewEncoder(w).Encode(payload)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func initConnector(t *testing.T, p plugin.Plugin) {
	t.Helper()
	require.NoError(t, p.ValidateConfig())
	require.NoError(t, p.Initialize(context.Background()))
}

func TestConnector_Execute(t *testing.T) {
	srv, rec := newProvider(t, http.StatusOK, map[string]any{"ok": true})

	c, err := New("partner", plugin.Settings{
		"base_url": srv.URL,
		"api_key":  "secret-token",
	})
	require.NoError(t, err)
	initConnector(t, c)

	result, err := c.Execute(context.Background(), map[string]any{
		"method":   "GET",
		"endpoint": "/v1/things",
		"params":   map[string]any{"page": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "GET", rec.Method)
	assert.Equal(t, "/v1/things", rec.Path)
	assert.Equal(t, "2", rec.Query["page"])
	assert.Equal(t, "Bearer secret-token", rec.Auth)
	assert.Equal(t, map[string]any{"ok": true}, result)
}

func TestConnector_Execute_PostBody(t *testing.T) {
	srv, rec := newProvider(t, http.StatusOK, map[string]any{"id": "42"})

	c, err := New("partner", plugin.Settings{"base_url": srv.URL})
	require.NoError(t, err)
	initConnector(t, c)

	_, err = c.Execute(context.Background(), map[string]any{
		"method":   "POST",
		"endpoint": "submit",
		"data":     map[string]any{"amount": float64(100)},
	})
	require.NoError(t, err)

	assert.Equal(t, "POST", rec.Method)
	assert.Equal(t, "/submit", rec.Path)
	assert.Equal(t, map[string]any{"amount": float64(100)}, rec.Body)
}

func TestConnector_Execute_ProviderFailure(t *testing.T) {
	srv, _ := newProvider(t, http.StatusBadGateway, nil)

	c, err := New("partner", plugin.Settings{"base_url": srv.URL})
	require.NoError(t, err)
	initConnector(t, c)

	_, err = c.Execute(context.Background(), map[string]any{"endpoint": "/v1/things"})
	require.Error(t, err)
	assert.ErrorIs(t, err, enterprise.ErrExecutionFailed)

	var perr *enterprise.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, enterprise.KindExecution, perr.Kind)
	assert.Equal(t, "partner", perr.Context["provider"])
}

func TestConnector_Execute_TransportFailure(t *testing.T) {
	srv, _ := newProvider(t, http.StatusOK, nil)
	url := srv.URL
	srv.Close()

	c, err := New("partner", plugin.Settings{"base_url": url})
	require.NoError(t, err)
	initConnector(t, c)

	_, err = c.Execute(context.Background(), map[string]any{"endpoint": "/v1/things"})
	assert.ErrorIs(t, err, enterprise.ErrExecutionFailed)
}

func TestConnector_Execute_MissingEndpoint(t *testing.T) {
	srv, _ := newProvider(t, http.StatusOK, nil)

	c, err := New("partner", plugin.Settings{"base_url": srv.URL})
	require.NoError(t, err)
	initConnector(t, c)

	_, err = c.Execute(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, enterprise.ErrExecutionFailed)
}

func TestConnector_ValidateConfig_MissingBaseURL(t *testing.T) {
	c, err := New("partner", plugin.Settings{})
	require.NoError(t, err)

	err = c.ValidateConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestConnector_RequestBeforeInitialize(t *testing.T) {
	c, err := New("partner", plugin.Settings{"base_url": "https://api.example.com"})
	require.NoError(t, err)

	_, err = c.Request(context.Background(), "GET", "/v1/things", nil, nil)
	assert.ErrorIs(t, err, enterprise.ErrExecutionFailed)
}

func TestConnector_CustomHeaders(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Partner-Id")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New("partner", plugin.Settings{
		"base_url": srv.URL,
		"headers":  map[string]any{"X-Partner-Id": "reseller-7"},
	})
	require.NoError(t, err)
	initConnector(t, c)

	_, err = c.Request(context.Background(), "GET", "/v1/things", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "reseller-7", gotHeader)
}

func TestConnector_Health(t *testing.T) {
	srv, _ := newProvider(t, http.StatusOK, nil)

	c, err := New("partner", plugin.Settings{"base_url": srv.URL})
	require.NoError(t, err)

	status := c.Health(context.Background())
	assert.True(t, status.IsUnhealthy(), "uninitialized connector must report unhealthy")

	initConnector(t, c)
	status = c.Health(context.Background())
	assert.True(t, status.IsHealthy())
}

func TestConnector_Shutdown(t *testing.T) {
	srv, _ := newProvider(t, http.StatusOK, nil)

	c, err := New("partner", plugin.Settings{"base_url": srv.URL})
	require.NoError(t, err)
	initConnector(t, c)

	require.NoError(t, c.Shutdown(context.Background()))

	_, err = c.Request(context.Background(), "GET", "/v1/things", nil, nil)
	assert.Error(t, err, "a shut-down connector must not serve requests")
}

func TestConnector_ImplementsPlugin(t *testing.T) {
	var _ plugin.Plugin = &Connector{}
	var _ plugin.Plugin = &Bloomberg{}
	var _ plugin.Plugin = &TurboTax{}
	var _ plugin.Plugin = &Bank{}
	var _ plugin.Plugin = &Custom{}
}

func TestFactory_ErrorsWithoutName(t *testing.T) {
	_, err := Factory("", plugin.Settings{})
	assert.Error(t, err)
}

func TestConnector_ExecuteEmptyResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New("partner", plugin.Settings{"base_url": srv.URL})
	require.NoError(t, err)
	initConnector(t, c)

	result, err := c.Request(context.Background(), "DELETE", "/v1/things/1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, result)
}

func TestConnector_ErrorsSupportUnwrapping(t *testing.T) {
	srv, _ := newProvider(t, http.StatusUnauthorized, nil)

	c, err := New("partner", plugin.Settings{"base_url": srv.URL})
	require.NoError(t, err)
	initConnector(t, c)

	_, err = c.Request(context.Background(), "GET", "/v1/things", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, enterprise.ErrExecutionFailed))
}
