package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-node
// deployments that do not run Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]Room
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]Room)}
}

// SaveRoom records a live room.
func (s *MemoryStore) SaveRoom(_ context.Context, room Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
	return nil
}

// Room returns a live room by ID.
func (s *MemoryStore) Room(_ context.Context, id string) (*Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return &room, nil
}

// DeleteRoom removes a room record.
func (s *MemoryStore) DeleteRoom(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return ErrRoomNotFound
	}
	delete(s.rooms, id)
	return nil
}

// ActiveRooms returns all live rooms.
func (s *MemoryStore) ActiveRooms(_ context.Context) ([]Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// Close is a no-op for the in-process store.
func (s *MemoryStore) Close() error { return nil }
