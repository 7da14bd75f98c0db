package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FeedCache remembers the ranked recipe IDs of a user's discover feed
type FeedCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error)
	Set(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// NewFeedCache returns a redis-backed cache, or an in-process one when client is nil
func NewFeedCache(client *redis.Client, ttl time.Duration) FeedCache {
	if client == nil {
		return NewMemoryFeedCache(ttl)
	}
	return &RedisFeedCache{redis: client, ttl: ttl}
}

// RedisFeedCache stores each feed as a JSON array under recipe:feed:<user>
type RedisFeedCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func feedKey(userID uuid.UUID) string {
	return fmt.Sprintf("recipe:feed:%s", userID)
}

func (c *RedisFeedCache) Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error) {
	data, err := c.redis.Get(ctx, feedKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get feed from Redis: %w", err)
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal feed: %w", err)
	}
	return ids, true, nil
}

func (c *RedisFeedCache) Set(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal feed: %w", err)
	}
	if err := c.redis.Set(ctx, feedKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save feed to Redis: %w", err)
	}
	return nil
}

func (c *RedisFeedCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.redis.Del(ctx, feedKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete feed from Redis: %w", err)
	}
	return nil
}

type feedEntry struct {
	ids     []uuid.UUID
	expires time.Time
}

// MemoryFeedCache is the single-process fallback used when redis is not configured
type MemoryFeedCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]feedEntry
	now     func() time.Time
}

func NewMemoryFeedCache(ttl time.Duration) *MemoryFeedCache {
	return &MemoryFeedCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]feedEntry),
		now:     time.Now,
	}
}

func (c *MemoryFeedCache) Get(_ context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.After(c.now()) {
		delete(c.entries, userID)
		return nil, false, nil
	}
	return append([]uuid.UUID(nil), entry.ids...), true, nil
}

func (c *MemoryFeedCache) Set(_ context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = feedEntry{
		ids:     append([]uuid.UUID(nil), ids...),
		expires: c.now().Add(c.ttl),
	}
	return nil
}

func (c *MemoryFeedCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, userID)
	return nil
}
