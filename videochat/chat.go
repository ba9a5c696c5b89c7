package videochat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/deaffirst/enterprise-sdk"
	"github.com/deaffirst/enterprise-sdk/health"
	"github.com/deaffirst/enterprise-sdk/plugin"
	"github.com/deaffirst/enterprise-sdk/schema"
	"github.com/deaffirst/enterprise-sdk/session"
	"github.com/deaffirst/enterprise-sdk/types"
)

// defaultTimeout bounds provider calls when no timeout is configured.
const defaultTimeout = 30 * time.Second

// provider is the part of a video plugin that differs per vendor.
// The shared Chat type maps the uniform Execute contract onto it.
type provider interface {
	createRoom(ctx context.Context, roomName string) (*session.Room, error)
	endRoom(ctx context.Context, roomID string) error
}

// Chat is the shared implementation behind every video chat variant.
// It dispatches the create_room, end_room, and get_token actions and
// keeps the session store consistent with the provider.
type Chat struct {
	name        string
	description string
	settings    plugin.Settings
	schema      schema.JSON

	ops     provider
	store   session.Store
	apiBase string
	timeout time.Duration
	client  *http.Client

	initialized bool
}

func newChat(name string, settings plugin.Settings, store session.Store) *Chat {
	return &Chat{
		name:     name,
		settings: settings.Clone(),
		store:    store,
	}
}

func (c *Chat) Name() string { return c.name }

func (c *Chat) Category() plugin.Category { return plugin.CategoryVideoChat }

func (c *Chat) Description() string { return c.description }

func (c *Chat) Enabled() bool { return c.settings.Enabled() }

// ValidateConfig checks the settings against the variant's schema.
func (c *Chat) ValidateConfig() error {
	return c.schema.Validate(map[string]any(c.settings))
}

// Initialize derives the shared request state. Variants call this from
// their own Initialize after resolving provider-specific settings.
func (c *Chat) initialize(apiBase string) error {
	c.apiBase = apiBase
	c.timeout = c.settings.DurationOr("timeout", defaultTimeout)
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	c.initialized = true
	return nil
}

// Execute dispatches a video chat action. Supported actions are
// create_room, end_room, and get_token.
func (c *Chat) Execute(ctx context.Context, args map[string]any) (any, error) {
	op := "VideoChat.Execute"
	if !c.initialized {
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: plugin %s not initialized", enterprise.ErrExecutionFailed, c.name))
	}

	a := plugin.Settings(args)
	action := a.String("action")
	switch action {
	case "create_room":
		return c.createRoom(ctx, a.StringOr("room_name", "room-"+uuid.NewString()[:8]))
	case "end_room":
		return c.endRoom(ctx, a.String("room_id"))
	case "get_token":
		return c.getToken(ctx, a.String("room_id"), a.String("identity"))
	default:
		return nil, enterprise.NewExecutionError(op,
			fmt.Errorf("%w: unknown action %q", enterprise.ErrExecutionFailed, action)).
			WithContext(c.errContext(action))
	}
}

func (c *Chat) createRoom(ctx context.Context, roomName string) (any, error) {
	room, err := c.ops.createRoom(ctx, roomName)
	if err != nil {
		return nil, c.wrapErr("create_room", err)
	}
	room.CreatedAt = time.Now().UTC()

	if c.store != nil {
		if err := c.store.SaveRoom(ctx, *room); err != nil {
			return nil, c.wrapErr("create_room", err)
		}
	}
	return map[string]any{
		"room_id":   room.ID,
		"room_name": room.Name,
		"provider":  room.Provider,
		"join_url":  room.JoinURL,
		"start_url": room.StartURL,
	}, nil
}

func (c *Chat) endRoom(ctx context.Context, roomID string) (any, error) {
	if roomID == "" {
		return nil, c.wrapErr("end_room", fmt.Errorf("room_id is required"))
	}
	if err := c.ops.endRoom(ctx, roomID); err != nil {
		return nil, c.wrapErr("end_room", err)
	}
	if c.store != nil {
		if err := c.store.DeleteRoom(ctx, roomID); err != nil && !errors.Is(err, session.ErrRoomNotFound) {
			return nil, c.wrapErr("end_room", err)
		}
	}
	return map[string]any{"room_id": roomID, "status": "ended"}, nil
}

// getToken issues an opaque access token for a live room. When a
// session store is attached, only rooms it knows about get tokens.
func (c *Chat) getToken(ctx context.Context, roomID, identity string) (any, error) {
	if roomID == "" {
		return nil, c.wrapErr("get_token", fmt.Errorf("room_id is required"))
	}
	if identity == "" {
		return nil, c.wrapErr("get_token", fmt.Errorf("identity is required"))
	}
	if c.store != nil {
		if _, err := c.store.Room(ctx, roomID); err != nil {
			return nil, c.wrapErr("get_token", fmt.Errorf("room %s: %w", roomID, err))
		}
	}
	return map[string]any{
		"token":    "tok-" + uuid.NewString(),
		"room_id":  roomID,
		"identity": identity,
	}, nil
}

// Shutdown releases pooled connections held by the plugin.
func (c *Chat) Shutdown(ctx context.Context) error {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	c.initialized = false
	return nil
}

// Health probes the provider's API base URL.
func (c *Chat) Health(ctx context.Context) types.HealthStatus {
	if !c.initialized {
		return types.NewUnhealthyStatus("plugin not initialized", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return health.URLCheck(ctx, c.client, c.apiBase)
}

func (c *Chat) wrapErr(action string, err error) error {
	var perr *enterprise.Error
	if errors.As(err, &perr) {
		return err
	}
	return enterprise.NewExecutionError("VideoChat."+action,
		fmt.Errorf("%w: %w", enterprise.ErrExecutionFailed, err)).
		WithContext(c.errContext(action))
}

func (c *Chat) errContext(action string) map[string]any {
	return map[string]any{
		"provider": c.name,
		"action":   action,
	}
}

// SetHTTPClient overrides the HTTP client used for provider calls.
// Intended for tests; must be called before Initialize.
func (c *Chat) SetHTTPClient(client *http.Client) {
	c.client = client
}
