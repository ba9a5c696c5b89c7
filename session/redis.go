package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis-backed session store.
type RedisOptions struct {
	// URL is the Redis connection URL (redis://host:port/db).
	URL string

	// Prefix namespaces all keys written by the store.
	// Defaults to "enterprise".
	Prefix string

	// TTL bounds how long a room record lives without being deleted.
	// Zero means records never expire.
	TTL time.Duration

	// ConnectTimeout bounds the initial connection check.
	// Defaults to 5 seconds.
	ConnectTimeout time.Duration
}

// RedisStore is a Redis-backed Store. Room records are stored as JSON
// under "<prefix>:room:<id>", with a set "<prefix>:rooms" indexing the
// live IDs.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Prefix == "" {
		opts.Prefix = "enterprise"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
	}, nil
}

func (s *RedisStore) roomKey(id string) string {
	return s.prefix + ":room:" + id
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":rooms"
}

// SaveRoom records a live room.
func (s *RedisStore) SaveRoom(ctx context.Context, room Room) error {
	if room.ID == "" {
		return errors.New("room ID is required")
	}
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.roomKey(room.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), room.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save room %s: %w", room.ID, err)
	}
	return nil
}

// Room returns a live room by ID.
func (s *RedisStore) Room(ctx context.Context, id string) (*Room, error) {
	data, err := s.client.Get(ctx, s.roomKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room %s: %w", id, err)
	}

	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room %s: %w", id, err)
	}
	return &room, nil
}

// DeleteRoom removes a room record.
func (s *RedisStore) DeleteRoom(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.roomKey(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ActiveRooms returns all live rooms. IDs whose records have expired
// are pruned from the index as a side effect.
func (s *RedisStore) ActiveRooms(ctx context.Context) ([]Room, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]Room, 0, len(ids))
	var expired []any
	for _, id := range ids {
		room, err := s.Room(ctx, id)
		if errors.Is(err, ErrRoomNotFound) {
			expired = append(expired, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	if len(expired) > 0 {
		s.client.SRem(ctx, s.indexKey(), expired...)
	}
	return rooms, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
