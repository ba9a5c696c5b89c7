package interpreter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
)

var vslLabsSchema = schema.Object(map[string]schema.JSON{
	"api_key":      schema.NonEmptyString("VSLLabs API key"),
	"avatar_style": schema.Enum("realistic", "animated"),
	"enabled":      schema.Bool(),
}, "api_key")

// VSLLabs provides on-demand AI avatar interpretation. Requests are
// served immediately; there is no human scheduling involved.
type VSLLabs struct {
	base
}

// NewVSLLabs creates a VSLLabs interpreter plugin.
func NewVSLLabs(name string, settings plugin.Settings) (*VSLLabs, error) {
	if name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}
	v := &VSLLabs{base: newBase(name, settings)}
	v.description = "VSLLabs AI avatar interpretation"
	v.schema = vslLabsSchema
	return v, nil
}

// VSLLabsFactory builds VSLLabs interpreter plugins.
var VSLLabsFactory plugin.Factory = func(name string, settings plugin.Settings) (plugin.Plugin, error) {
	return NewVSLLabs(name, settings)
}

// Execute dispatches an interpretation action.
func (v *VSLLabs) Execute(ctx context.Context, args map[string]any) (any, error) {
	if !v.initialized {
		return nil, v.notInitializedErr()
	}
	a := plugin.Settings(args)
	switch action := a.String("action"); action {
	case "request_interpreter":
		return v.requestInterpreter(a.StringOr("session_type", "general")), nil
	case "embed_interpreter":
		videoURL := a.String("video_url")
		if videoURL == "" {
			return nil, v.execErr(action, fmt.Errorf("video_url is required"))
		}
		return v.embedInterpreter(videoURL), nil
	default:
		return nil, v.unknownActionErr(action)
	}
}

func (v *VSLLabs) requestInterpreter(sessionType string) map[string]any {
	sessionID := uuid.NewString()
	return map[string]any{
		"interpreter_id": "vsl_ai_001",
		"type":           "ai_interpreter",
		"session_type":   sessionType,
		"capabilities": []string{
			"real_time_asl",
			"avatar_rendering",
			"technical_vocabulary",
		},
		"session_url": "https://interpret.vsllabs.com/session/" + sessionID,
		"avatar":      v.settings.StringOr("avatar_style", "realistic"),
	}
}

func (v *VSLLabs) embedInterpreter(videoURL string) map[string]any {
	embedURL := "https://interpret.vsllabs.com/embed?video=" + videoURL
	return map[string]any{
		"embed_url": embedURL,
		"embed_html": fmt.Sprintf(
			`<iframe src=%q width="320" height="240" allow="camera; microphone"></iframe>`,
			embedURL),
	}
}
