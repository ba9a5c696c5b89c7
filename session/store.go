package session

import (
	"context"
	"errors"
	"time"
)

// ErrRoomNotFound is returned when a room ID has no live session,
// either because it never existed or because its record expired.
var ErrRoomNotFound = errors.New("room not found")

// Room describes one live video session created by a plugin.
type Room struct {
	// ID is the provider-assigned room or meeting identifier.
	ID string `json:"id"`

	// Name is the human-readable room name.
	Name string `json:"name,omitempty"`

	// Provider identifies which plugin created the room (e.g. "twilio").
	Provider string `json:"provider"`

	// JoinURL is the participant join link, when the provider issues one.
	JoinURL string `json:"join_url,omitempty"`

	// StartURL is the host start link, when the provider issues one.
	StartURL string `json:"start_url,omitempty"`

	// CreatedAt is when the room was created.
	CreatedAt time.Time `json:"created_at"`
}

// Store records live sessions. Implementations must be safe for
// concurrent use; plugins invoked concurrently share one store.
type Store interface {
	// SaveRoom records a live room.
	SaveRoom(ctx context.Context, room Room) error

	// Room returns a live room by ID, or ErrRoomNotFound.
	Room(ctx context.Context, id string) (*Room, error)

	// DeleteRoom removes a room record. Returns ErrRoomNotFound when
	// no record exists.
	DeleteRoom(ctx context.Context, id string) error

	// ActiveRooms returns all live rooms.
	ActiveRooms(ctx context.Context) ([]Room, error)

	// Close releases the store's resources.
	Close() error
}
