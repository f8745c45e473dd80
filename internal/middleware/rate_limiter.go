package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// minVisitorIdle is the shortest time a visitor is kept after its last request
const minVisitorIdle = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorStore holds one token bucket per client key. Buckets idle for longer than idleTTL
// are swept, so the map stays bounded by the number of recently active clients.
type visitorStore struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newVisitorStore(r rate.Limit, b int, now func() time.Time) *visitorStore {
	return &visitorStore{
		visitors:  make(map[string]*visitor),
		limit:     r,
		burst:     b,
		idleTTL:   visitorIdleTTL(r, b),
		lastSweep: now(),
		now:       now,
	}
}

// visitorIdleTTL is at least the time an empty bucket needs to refill completely, so evicting
// an idle visitor never grants more than it would already have.
func visitorIdleTTL(r rate.Limit, b int) time.Duration {
	ttl := minVisitorIdle
	if r > 0 && r != rate.Inf {
		refill := time.Duration(float64(b) / float64(r) * float64(time.Second))
		if refill > ttl {
			ttl = refill
		}
	}
	return ttl
}

func (s *visitorStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idleTTL {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) >= s.idleTTL {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, exists := s.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (s *visitorStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimiter is an in-process token bucket per client IP. The client IP honours
// X-Forwarded-For only from proxies the engine trusts.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	store := newVisitorStore(r, b, time.Now)

	return func(c *gin.Context) {
		if !store.allow(IPKeyFunc(c)) {
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// PerMinute converts a requests-per-minute budget into a limiter rate and burst
func PerMinute(n int) (rate.Limit, int) {
	if n <= 0 {
		return rate.Inf, 0
	}
	return rate.Every(time.Minute / time.Duration(n)), n
}

// DistributedRateLimiter is a sliding window limiter shared through Redis
type DistributedRateLimiter struct {
	redis  *redis.Client
	logger *slog.Logger
}

type RateLimit struct {
	Rate    int
	Window  time.Duration
	KeyFunc func(*gin.Context) string
}

func NewDistributedRateLimiter(redisClient *redis.Client, logger *slog.Logger) *DistributedRateLimiter {
	return &DistributedRateLimiter{
		redis:  redisClient,
		logger: logger,
	}
}

// CreateMiddleware limits requests per key. Redis failures let the request through.
func (rl *DistributedRateLimiter) CreateMiddleware(name string, limit *RateLimit) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", name, limit.KeyFunc(c))

		allowed, err := rl.checkLimit(c.Request.Context(), key, limit)
		if err != nil {
			rl.logger.WarnContext(c.Request.Context(), "rate limiter unavailable",
				slog.String("limiter", name),
				slog.String("error", err.Error()),
			)
			c.Header("X-RateLimit-Error", "true")
			c.Next()
			return
		}

		if !allowed {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
			c.Header("X-RateLimit-Window", limit.Window.String())
			c.Header("Retry-After", strconv.Itoa(int(limit.Window.Seconds())))
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *DistributedRateLimiter) checkLimit(ctx context.Context, key string, limit *RateLimit) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - limit.Window.Nanoseconds()

	pipe := rl.redis.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))

	countCmd := pipe.ZCard(ctx, key)

	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: uuid.NewString()})

	pipe.Expire(ctx, key, limit.Window)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	count := countCmd.Val()
	return count < int64(limit.Rate), nil
}

// IPKeyFunc keys limits on the client IP as resolved by the engine's trusted proxy settings
func IPKeyFunc(c *gin.Context) string {
	return c.ClientIP()
}
