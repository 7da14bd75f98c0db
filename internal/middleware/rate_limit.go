package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Unlimited reports whether the config disables limiting. A zero Limit or
// Window lets every request through.
func (c RateLimitConfig) Unlimited() bool {
	return c.Limit <= 0 || c.Window <= 0
}

// Limiter decides whether the caller identified by key may proceed.
// It returns the remaining budget and when the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, reset time.Time, err error)
	Config() RateLimitConfig
}

// NewLimiter returns a redis fixed-window limiter, or an in-process token
// bucket when client is nil.
func NewLimiter(client *redis.Client, config RateLimitConfig) Limiter {
	if client == nil {
		return NewMemoryLimiter(config)
	}
	return NewRateLimiter(client, config)
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

func (rl *RateLimiter) Config() RateLimitConfig {
	return rl.config
}

// Allow counts the request in the current fixed window
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	if rl.config.Unlimited() {
		return true, 0, time.Now(), nil
	}
	windowStart := time.Now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

// MemoryLimiter keeps one token bucket per key. The bucket holds Limit
// tokens and refills at Limit per Window.
type MemoryLimiter struct {
	mu       sync.Mutex
	config   RateLimitConfig
	limiters map[string]*rate.Limiter
}

func NewMemoryLimiter(config RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		config:   config,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (ml *MemoryLimiter) Config() RateLimitConfig {
	return ml.config
}

func (ml *MemoryLimiter) limiter(key string) *rate.Limiter {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if l, ok := ml.limiters[key]; ok {
		return l
	}
	every := ml.config.Window / time.Duration(ml.config.Limit)
	l := rate.NewLimiter(rate.Every(every), ml.config.Limit)
	ml.limiters[key] = l
	return l
}

func (ml *MemoryLimiter) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()
	if ml.config.Unlimited() {
		return true, 0, now, nil
	}
	l := ml.limiter(key)
	allowed := l.AllowN(now, 1)

	remaining := int(l.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	missing := float64(ml.config.Limit) - l.TokensAt(now)
	reset := now.Add(time.Duration(missing * float64(ml.config.Window) / float64(ml.config.Limit)))
	return allowed, remaining, reset, nil
}

// RateLimitMiddleware enforces limiter per authenticated user. It must run
// after AuthMiddleware.
func RateLimitMiddleware(limiter Limiter) gin.HandlerFunc {
	cfg := limiter.Config()
	if cfg.Unlimited() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		userID, exists := c.Get(UserIDKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		allowed, remaining, resetTime, err := limiter.Allow(c.Request.Context(), fmt.Sprintf("%v", userID))
		if err != nil {
			// Log error but don't fail the request
			log.Printf("[RateLimit] check failed for %v: %v", userID, err)
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", cfg.Limit, cfg.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			return
		}

		c.Next()
	}
}

// RecipeCreationLimit allows 20 new recipes per user per hour
var RecipeCreationLimit = RateLimitConfig{
	Window:    time.Hour,
	Limit:     20,
	KeyPrefix: "rate_limit:recipe_creation",
}

// InteractionLimit allows 600 swipes per user per minute
var InteractionLimit = RateLimitConfig{
	Window:    time.Minute,
	Limit:     600,
	KeyPrefix: "rate_limit:interaction",
}
