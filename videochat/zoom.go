package videochat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
	"github.com/deaffirst/enterprise-sdk/session"
)

// defaultZoomAPIBase is the Zoom REST endpoint.
const defaultZoomAPIBase = "https://api.zoom.us"

var zoomSchema = schema.Object(map[string]schema.JSON{
	"api_key":  schema.NonEmptyString("Zoom server-to-server OAuth token"),
	"api_base": schema.StringWithDesc("override for the Zoom API endpoint"),
	"timeout":  schema.Any(),
	"enabled":  schema.Bool(),
}, "api_key")

// Zoom provides video rooms through Zoom Meetings. A created "room" is
// an instant meeting; ending it ends the meeting for all participants.
type Zoom struct {
	*Chat

	apiKey string
}

// NewZoom creates a Zoom video chat plugin. A nil store disables
// session tracking.
func NewZoom(name string, settings plugin.Settings, store session.Store) (*Zoom, error) {
	if name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}
	z := &Zoom{Chat: newChat(name, settings, store)}
	z.description = "Zoom Meetings"
	z.schema = zoomSchema
	z.ops = z
	return z, nil
}

// ZoomFactory builds Zoom video chat plugins backed by the given
// session store.
func ZoomFactory(store session.Store) plugin.Factory {
	return func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		return NewZoom(name, settings, store)
	}
}

// Initialize resolves credentials from the settings.
func (z *Zoom) Initialize(ctx context.Context) error {
	z.apiKey = z.settings.String("api_key")
	if z.apiKey == "" {
		return fmt.Errorf("zoom api_key not configured for %s", z.name)
	}
	return z.initialize(strings.TrimRight(z.settings.StringOr("api_base", defaultZoomAPIBase), "/"))
}

func (z *Zoom) createRoom(ctx context.Context, roomName string) (*session.Room, error) {
	payload, err := z.call(ctx, http.MethodPost, "/v2/users/me/meetings", map[string]any{
		"topic": roomName,
		"type":  1, // instant meeting
	})
	if err != nil {
		return nil, err
	}

	id, ok := payload["id"].(float64)
	if !ok {
		return nil, fmt.Errorf("zoom response missing meeting id")
	}
	joinURL, _ := payload["join_url"].(string)
	startURL, _ := payload["start_url"].(string)
	return &session.Room{
		ID:       fmt.Sprintf("%.0f", id),
		Name:     roomName,
		Provider: "zoom",
		JoinURL:  joinURL,
		StartURL: startURL,
	}, nil
}

func (z *Zoom) endRoom(ctx context.Context, roomID string) error {
	_, err := z.call(ctx, http.MethodPut, "/v2/meetings/"+roomID+"/status", map[string]any{
		"action": "end",
	})
	return err
}

func (z *Zoom) call(ctx context.Context, method, path string, data map[string]any) (map[string]any, error) {
	var body io.Reader
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding zoom request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, z.apiBase+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+z.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := z.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("zoom responded with %d", resp.StatusCode)
	}

	result := map[string]any{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("decoding zoom response: %w", err)
		}
	}
	return result, nil
}
