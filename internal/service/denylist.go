package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenyList records revoked token IDs until they would have expired anyway
type TokenDenyList interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewTokenDenyList returns a redis-backed deny list, or an in-process one when client is nil
func NewTokenDenyList(client *redis.Client) TokenDenyList {
	if client == nil {
		return NewMemoryDenyList()
	}
	return &RedisDenyList{redis: client}
}

// RedisDenyList stores revoked token IDs as expiring redis keys
type RedisDenyList struct {
	redis *redis.Client
}

func denyKey(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", tokenID)
}

func (d *RedisDenyList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := d.redis.Set(ctx, denyKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token in Redis: %w", err)
	}
	return nil
}

func (d *RedisDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.redis.Get(ctx, denyKey(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token in Redis: %w", err)
	}
	return true, nil
}

// MemoryDenyList is the single-process fallback used when redis is not configured
type MemoryDenyList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryDenyList() *MemoryDenyList {
	return &MemoryDenyList{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (d *MemoryDenyList) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, id)
		}
	}
	if expiresAt.After(now) {
		d.revoked[tokenID] = expiresAt
	}
	return nil
}

func (d *MemoryDenyList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[tokenID]
	return ok && exp.After(d.now()), nil
}
