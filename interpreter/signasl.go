package interpreter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
)

// defaultSessionMinutes is the booking length when the caller does not
// ask for a specific duration.
const defaultSessionMinutes = 60

var signASLSchema = schema.Object(map[string]schema.JSON{
	"api_key": schema.NonEmptyString("SignASL API key"),
	"region":  schema.StringWithDesc("preferred interpreter region"),
	"enabled": schema.Bool(),
}, "api_key")

// SignASL books live human interpreters. Requests are scheduled, not
// immediate; the response carries the booking details.
type SignASL struct {
	base
}

// NewSignASL creates a SignASL interpreter plugin.
func NewSignASL(name string, settings plugin.Settings) (*SignASL, error) {
	if name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}
	s := &SignASL{base: newBase(name, settings)}
	s.description = "SignASL live interpreter booking"
	s.schema = signASLSchema
	return s, nil
}

// SignASLFactory builds SignASL interpreter plugins.
var SignASLFactory plugin.Factory = func(name string, settings plugin.Settings) (plugin.Plugin, error) {
	return NewSignASL(name, settings)
}

// Execute dispatches an interpretation action.
func (s *SignASL) Execute(ctx context.Context, args map[string]any) (any, error) {
	if !s.initialized {
		return nil, s.notInitializedErr()
	}
	a := plugin.Settings(args)
	switch action := a.String("action"); action {
	case "request_interpreter":
		return s.requestInterpreter(a), nil
	case "embed_interpreter":
		videoURL := a.String("video_url")
		if videoURL == "" {
			return nil, s.execErr(action, fmt.Errorf("video_url is required"))
		}
		return map[string]any{
			"embed_url": "https://live.signasl.org/embed?video=" + videoURL,
		}, nil
	default:
		return nil, s.unknownActionErr(action)
	}
}

func (s *SignASL) requestInterpreter(a plugin.Settings) map[string]any {
	bookingID := uuid.NewString()
	return map[string]any{
		"interpreter_id":   "signasl-" + bookingID[:8],
		"type":             "live_interpreter",
		"session_type":     a.StringOr("session_type", "general"),
		"scheduled_time":   a.String("scheduled_time"),
		"duration_minutes": a.IntOr("duration", defaultSessionMinutes),
		"join_url":         "https://live.signasl.org/join/" + bookingID,
		"region":           s.settings.String("region"),
	}
}
