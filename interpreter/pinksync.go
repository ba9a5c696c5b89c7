package interpreter

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
)

var pinkSyncSchema = schema.Object(map[string]schema.JSON{
	"api_key":           schema.NonEmptyString("PinkSync API key"),
	"subscription_tier": schema.Enum("basic", "premium"),
	"enabled":           schema.Bool(),
}, "api_key")

// PinkSync is a deaf-first interpretation platform. The premium tier
// unlocks real-time translation, context analysis, and gloss
// conversion.
type PinkSync struct {
	base

	tier string
}

// NewPinkSync creates a PinkSync interpreter plugin.
func NewPinkSync(name string, settings plugin.Settings) (*PinkSync, error) {
	if name == "" {
		return nil, fmt.Errorf("plugin name is required")
	}
	p := &PinkSync{base: newBase(name, settings)}
	p.description = "PinkSync deaf-first interpretation"
	p.schema = pinkSyncSchema
	return p, nil
}

// PinkSyncFactory builds PinkSync interpreter plugins.
var PinkSyncFactory plugin.Factory = func(name string, settings plugin.Settings) (plugin.Plugin, error) {
	return NewPinkSync(name, settings)
}

// Initialize resolves the subscription tier from the settings.
func (p *PinkSync) Initialize(ctx context.Context) error {
	p.tier = p.settings.StringOr("subscription_tier", "basic")
	return p.base.Initialize(ctx)
}

// Tier reports the active subscription tier.
func (p *PinkSync) Tier() string { return p.tier }

// Execute dispatches an interpretation action. convert_gloss is a
// premium-tier action.
func (p *PinkSync) Execute(ctx context.Context, args map[string]any) (any, error) {
	if !p.initialized {
		return nil, p.notInitializedErr()
	}
	a := plugin.Settings(args)
	switch action := a.String("action"); action {
	case "request_interpreter":
		return p.requestInterpreter(a.StringOr("session_type", "general")), nil
	case "embed_interpreter":
		videoURL := a.String("video_url")
		if videoURL == "" {
			return nil, p.execErr(action, fmt.Errorf("video_url is required"))
		}
		return map[string]any{
			"embed_url": "https://app.pinksync.io/embed?video=" + videoURL,
		}, nil
	case "convert_gloss":
		if p.tier != "premium" {
			return nil, p.execErr(action,
				fmt.Errorf("convert_gloss requires the premium tier, got %q", p.tier))
		}
		text := a.String("text")
		if text == "" {
			return nil, p.execErr(action, fmt.Errorf("text is required"))
		}
		return p.convertGloss(text), nil
	default:
		return nil, p.unknownActionErr(action)
	}
}

func (p *PinkSync) requestInterpreter(sessionType string) map[string]any {
	features := []string{"asl_interpretation", "visual_alerts"}
	if p.tier == "premium" {
		features = append(features, "real_time_translation", "ai_context_analysis")
	}
	return map[string]any{
		"interpreter_id": "pinksync-" + uuid.NewString()[:8],
		"type":           "platform_interpreter",
		"session_type":   sessionType,
		"tier":           p.tier,
		"features":       features,
	}
}

// convertGloss produces an ASL gloss rendering of English text. Gloss
// is conventionally written in uppercase, one sign per word.
func (p *PinkSync) convertGloss(text string) map[string]any {
	words := strings.Fields(strings.ToUpper(text))
	return map[string]any{
		"gloss":      strings.Join(words, " "),
		"word_count": len(words),
		"video_url":  "https://app.pinksync.io/gloss/" + uuid.NewString(),
	}
}
