package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog_analyzer/internal/core"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// NewRedisClient parses the URL and verifies the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required for the redis session backend")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisSessionStore stores snapshots as JSON under session:{id}
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis backed store. A zero ttl stores keys without expiry.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// key generates a Redis key for the given session ID
func (r *RedisSessionStore) key(sessionID string) string {
	return sessionPrefix + sessionID
}

// Save stores the snapshot and refreshes its TTL
func (r *RedisSessionStore) Save(ctx context.Context, snapshot *core.Snapshot) error {
	if snapshot == nil || snapshot.SessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	data, err := sonic.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.client.Set(ctx, r.key(snapshot.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session data: %w", err)
	}
	return nil
}

// Load retrieves and decodes a snapshot
func (r *RedisSessionStore) Load(ctx context.Context, sessionID string) (*core.Snapshot, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session data: %w", err)
	}

	var snapshot core.Snapshot
	if err := sonic.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return &snapshot, nil
}

// Delete removes a session from Redis
func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	n, err := r.client.Del(ctx, r.key(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

// Exists checks if a session exists
func (r *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	count, err := r.client.Exists(ctx, r.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session existence: %w", err)
	}
	return count > 0, nil
}
