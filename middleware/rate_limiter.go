// api/middleware/rate_limiter.go

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dev-mohitbeniwal/weathergate/api/db"
	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

// Limiter reports whether one more request under key is allowed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter keeps a token bucket per key in process memory. A bucket
// left idle for a full period has refilled completely, so it is dropped and
// recreated on the next hit. The map therefore only holds keys active within
// the last period.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*memoryBucket
	limit     rate.Limit
	burst     int
	per       time.Duration
	clock     util.Clock
	lastSweep time.Time
}

type memoryBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(limit int, per time.Duration) *MemoryLimiter {
	return NewMemoryLimiterWithClock(limit, per, util.SystemClock())
}

func NewMemoryLimiterWithClock(limit int, per time.Duration, clock util.Clock) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &MemoryLimiter{
		buckets:   make(map[string]*memoryBucket),
		limit:     rate.Every(per / time.Duration(limit)),
		burst:     limit,
		per:       per,
		clock:     clock,
		lastSweep: clock.Now(),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.per {
		l.sweep(now)
	}

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &memoryBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1), nil
}

// Len returns the number of tracked keys
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) >= l.per {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// RedisLimiter shares a sliding window across instances
type RedisLimiter struct {
	client *redis.Client
	limit  int
	per    time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, per time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, per: per}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return db.RateLimit(ctx, l.client, key, l.limit, l.per)
}

// RateLimiter throttles per identity, falling back to the client IP for
// anonymous callers.
func RateLimiter(limiter Limiter, limit int, per time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := util.GetIdentityFromContext(c)
		if key == "" {
			key = c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			util.RespondWithError(c, http.StatusInternalServerError, "Rate limiting failed", err)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Duration", per.String())

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.Int("limit", limit),
				zap.Duration("per", per))
			util.RespondWithError(c, http.StatusTooManyRequests, "Rate limit exceeded", echo_errors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
