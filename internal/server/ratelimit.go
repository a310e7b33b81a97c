package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const rateStateKey = "rateLimiter"

// RateState describes a caller's standing against a limit.
type RateState struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

// Limiter counts requests per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (RateState, bool, error)
}

// RedisLimiter is a fixed-window counter shared by every proxy instance.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter allows limit requests per key per window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

// NewRedisClient connects to the server at url ("redis://host:6379/0").
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return client, nil
}

// windowScript increments the counter and sets its expiry in one step.
// A counter found without an expiry gets the window too.
var windowScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {n, ttl}
`)

func (l *RedisLimiter) Allow(ctx context.Context, key string) (RateState, bool, error) {
	res, err := windowScript.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return RateState{}, false, fmt.Errorf("rate counter: %w", err)
	}
	if len(res) != 2 {
		return RateState{}, false, fmt.Errorf("rate counter: unexpected reply %v", res)
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	st := newRateState(l.limit, count, time.Now().Add(ttl))
	return st, count <= l.limit, nil
}

func newRateState(limit, count int, resetAt time.Time) RateState {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	resetIn := int(time.Until(resetAt).Seconds())
	if resetIn < 0 {
		resetIn = 0
	}
	return RateState{Limit: limit, Remaining: remaining, ResetAt: resetAt, ResetInSeconds: resetIn}
}

// LocalLimiter is a token bucket per key, for a single proxy instance.
type LocalLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// maxBuckets bounds memory; idle buckets are swept past it.
const maxBuckets = 10000

// NewLocalLimiter allows bursts of limit requests refilled over window.
func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LocalLimiter{limit: limit, window: window, now: time.Now, buckets: make(map[string]*bucket)}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (RateState, bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxBuckets {
			l.sweep(now)
		}
		every := l.window / time.Duration(l.limit)
		b = &bucket{lim: rate.NewLimiter(rate.Every(every), l.limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.lim.AllowN(now, 1)
	tokens := b.lim.TokensAt(now)
	used := l.limit - int(tokens)
	if !allowed {
		used = l.limit + 1
	}

	// Time until one more request is admitted.
	wait := time.Duration(0)
	if tokens < 1 {
		wait = time.Duration((1 - tokens) * float64(l.window) / float64(l.limit))
	}
	st := newRateState(l.limit, used, now.Add(wait))
	return st, allowed, nil
}

func (l *LocalLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.window {
			delete(l.buckets, k)
		}
	}
}

// rateLimit limits requests per client IP, method and route.
func rateLimit(limiter Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		st, ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open when the counter is unreachable.
			logger.Warn("rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}
		c.Set(rateStateKey, &st)

		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorView{
				Message: "Too many requests",
				Error:   true,
				Rate:    &st,
			})
			return
		}
		c.Next()
	}
}
