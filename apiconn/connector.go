package apiconn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deaffirst/enterprise-sdk"
	"github.com/deaffirst/enterprise-sdk/health"
	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
	"github.com/deaffirst/enterprise-sdk/types"
)

// defaultTimeout bounds provider calls when no timeout is configured.
const defaultTimeout = 30 * time.Second

// SettingsSchema describes the settings every API connector understands.
// Variants extend the required set with their own keys.
var SettingsSchema = schema.Object(map[string]schema.JSON{
	"base_url": schema.NonEmptyString("root URL of the provider API"),
	"api_key":  schema.StringWithDesc("bearer token sent with every request"),
	"headers":  schema.Any(),
	"timeout":  schema.Any(),
	"enabled":  schema.Bool(),
}, "base_url")

// Connector is the shared implementation behind every API connector
// variant. It maps the uniform Execute contract onto an HTTP request and
// decodes the provider's JSON response.
type Connector struct {
	name        string
	description string
	settings    plugin.Settings
	schema      schema.JSON

	baseURL string
	apiKey  string
	headers map[string]string
	timeout time.Duration
	client  *http.Client

	initialized bool
}

// New creates a generic API connector. Variant constructors wrap this
// with provider defaults and a stricter settings schema.
func New(name string, settings plugin.Settings) (*Connector, error) {
	if name == "" {
		return nil, fmt.Errorf("connector name is required")
	}
	return &Connector{
		name:        name,
		description: "generic API connector",
		settings:    settings.Clone(),
		schema:      SettingsSchema,
	}, nil
}

// Factory builds generic API connector plugins.
var Factory plugin.Factory = func(name string, settings plugin.Settings) (plugin.Plugin, error) {
	return New(name, settings)
}

func (c *Connector) Name() string {
	return c.name
}

func (c *Connector) Category() plugin.Category {
	return plugin.CategoryAPIConnector
}

func (c *Connector) Description() string {
	return c.description
}

func (c *Connector) Enabled() bool {
	return c.settings.Enabled()
}

// ValidateConfig checks the settings against the connector's schema.
// It performs no network calls; reachability is Initialize's and
// Health's concern.
func (c *Connector) ValidateConfig() error {
	return c.schema.Validate(map[string]any(c.settings))
}

// Initialize derives the connector's request state from its settings.
func (c *Connector) Initialize(ctx context.Context) error {
	c.baseURL = strings.TrimRight(c.settings.String("base_url"), "/")
	if c.baseURL == "" {
		return fmt.Errorf("no base_url configured for %s", c.name)
	}
	c.apiKey = c.settings.String("api_key")
	c.timeout = c.settings.DurationOr("timeout", defaultTimeout)

	c.headers = make(map[string]string)
	for k, v := range c.settings.Map("headers") {
		if s, ok := v.(string); ok {
			c.headers[k] = s
		}
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	c.initialized = true
	return nil
}

// Execute performs an API call described by args. See the package
// documentation for the expected argument shape.
func (c *Connector) Execute(ctx context.Context, args map[string]any) (any, error) {
	a := plugin.Settings(args)
	method := strings.ToUpper(a.StringOr("method", http.MethodGet))
	endpoint := a.String("endpoint")
	return c.Request(ctx, method, endpoint, a.Map("params"), a.Map("data"))
}

// Request performs an HTTP call against the provider and decodes the
// JSON response. Variant helper methods are thin wrappers around it.
func (c *Connector) Request(ctx context.Context, method, endpoint string, params, data map[string]any) (any, error) {
	op := "APIConnector.Request"
	if !c.initialized {
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: connector %s not initialized", enterprise.ErrExecutionFailed, c.name))
	}
	if endpoint == "" {
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: endpoint is required", enterprise.ErrExecutionFailed)).
			WithContext(c.errContext(method, endpoint))
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, fmt.Sprint(v))
		}
		reqURL += "?" + q.Encode()
	}

	var body io.Reader
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, enterprise.NewExecutionError(op,
				fmt.Errorf("%w: encoding request body: %w", enterprise.ErrExecutionFailed, err)).
				WithContext(c.errContext(method, endpoint))
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: building request: %w", enterprise.ErrExecutionFailed, err)).
			WithContext(c.errContext(method, endpoint))
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: %w", enterprise.ErrExecutionFailed, err)).
			WithContext(c.errContext(method, endpoint))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: reading response: %w", enterprise.ErrExecutionFailed, err)).
			WithContext(c.errContext(method, endpoint))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: provider responded with %d", enterprise.ErrExecutionFailed, resp.StatusCode)).
			WithContext(c.errContext(method, endpoint))
	}

	if len(payload) == 0 {
		return map[string]any{}, nil
	}

	var result any
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: decoding response: %w", enterprise.ErrExecutionFailed, err)).
			WithContext(c.errContext(method, endpoint))
	}
	return result, nil
}

// Shutdown releases pooled connections held by the connector.
func (c *Connector) Shutdown(ctx context.Context) error {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	c.initialized = false
	return nil
}

// Health probes the provider's base URL.
func (c *Connector) Health(ctx context.Context) types.HealthStatus {
	if !c.initialized {
		return types.NewUnhealthyStatus("connector not initialized", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return health.URLCheck(ctx, c.client, c.baseURL)
}

func (c *Connector) errContext(method, endpoint string) map[string]any {
	return map[string]any{
		"provider":  c.name,
		"operation": method + " " + endpoint,
	}
}

// setDescription is used by variant constructors.
func (c *Connector) setDescription(desc string) {
	c.description = desc
}

// setSchema replaces the settings schema; variants use it to require
// provider-specific keys.
func (c *Connector) setSchema(s schema.JSON) {
	c.schema = s
}

// setDefault fills a settings key only when the caller left it unset.
func (c *Connector) setDefault(key string, value any) {
	if _, ok := c.settings[key]; !ok {
		c.settings[key] = value
	}
}

// SetHTTPClient overrides the HTTP client used for provider calls.
// Intended for tests; must be called before Initialize.
func (c *Connector) SetHTTPClient(client *http.Client) {
	c.client = client
}
