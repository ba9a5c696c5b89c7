package videochat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
	"github.com/deaffirst/enterprise-sdk/session"
)

// defaultTwilioAPIBase is the Programmable Video REST endpoint.
const defaultTwilioAPIBase = "https://video.twilio.com"

var twilioSchema = schema.Object(map[string]schema.JSON{
	"account_sid": schema.NonEmptyString("Twilio account SID"),
	"api_secret":  schema.NonEmptyString("Twilio API secret"),
	"api_base":    schema.StringWithDesc("override for the Programmable Video endpoint"),
	"timeout":     schema.Any(),
	"enabled":     schema.Bool(),
}, "account_sid", "api_secret")

// Twilio provides video rooms through Twilio Programmable Video.
type Twilio struct {
	*Chat

	accountSID string
	apiSecret  string
}

// NewTwilio creates a Twilio video chat plugin. A nil store disables
// session tracking.
func NewTwilio(name string, settings plugin.Settings, store session.Store) (*Twilio, error) {
	if name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}
	t := &Twilio{Chat: newChat(name, settings, store)}
	t.description = "Twilio Programmable Video"
	t.schema = twilioSchema
	t.ops = t
	return t, nil
}

// TwilioFactory builds Twilio video chat plugins backed by the given
// session store.
func TwilioFactory(store session.Store) plugin.Factory {
	return func(name string, settings plugin.Settings) (plugin.Plugin, error) {
		return NewTwilio(name, settings, store)
	}
}

// Initialize resolves credentials from the settings.
func (t *Twilio) Initialize(ctx context.Context) error {
	t.accountSID = t.settings.String("account_sid")
	t.apiSecret = t.settings.String("api_secret")
	if t.accountSID == "" || t.apiSecret == "" {
		return fmt.Errorf("twilio credentials not configured for %s", t.name)
	}
	return t.initialize(strings.TrimRight(t.settings.StringOr("api_base", defaultTwilioAPIBase), "/"))
}

func (t *Twilio) createRoom(ctx context.Context, roomName string) (*session.Room, error) {
	form := url.Values{}
	form.Set("UniqueName", roomName)
	form.Set("Type", "group")

	payload, err := t.call(ctx, http.MethodPost, "/v1/Rooms", form)
	if err != nil {
		return nil, err
	}
	sid, _ := payload["sid"].(string)
	if sid == "" {
		return nil, fmt.Errorf("twilio response missing room sid")
	}
	return &session.Room{
		ID:       sid,
		Name:     roomName,
		Provider: "twilio",
		JoinURL:  t.apiBase + "/v1/Rooms/" + sid,
	}, nil
}

func (t *Twilio) endRoom(ctx context.Context, roomID string) error {
	form := url.Values{}
	form.Set("Status", "completed")
	_, err := t.call(ctx, http.MethodPost, "/v1/Rooms/"+roomID, form)
	return err
}

// call performs a form-encoded request with HTTP basic auth, the shape
// the Twilio REST API expects.
func (t *Twilio) call(ctx context.Context, method, path string, form url.Values) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, method, t.apiBase+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(t.accountSID, t.apiSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("twilio responded with %d", resp.StatusCode)
	}

	result := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("decoding twilio response: %w", err)
		}
	}
	return result, nil
}
