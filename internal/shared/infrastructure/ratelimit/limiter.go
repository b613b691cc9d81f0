// Package ratelimit implements a fixed-window request limiter backed by Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// DefaultWindow is the length of one counting window.
const DefaultWindow = time.Minute

const keyPrefix = "taskanalyzer:ratelimit"

// Store counts hits per key within a window.
type Store interface {
	// Incr adds one hit to key and returns the count in the current window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisStore counts with INCR. Keys carry the window start, so refreshing
// the expiry on every hit never extends a window.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// Degraded is set when the store failed and the request was let through.
	Degraded bool
}

// Config configures a Limiter.
type Config struct {
	// Limit is the number of requests allowed per window. 0 disables limiting.
	Limit  int
	Window time.Duration
	// FailureThreshold consecutive store failures open the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
}

// Limiter allows up to Limit requests per client per window. When the store
// is unavailable it fails open, and a circuit breaker stops it from waiting
// on a dead store for every request.
type Limiter struct {
	store   Store
	config  Config
	breaker *gobreaker.CircuitBreaker[int64]
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a limiter over store.
func New(store Store, config Config, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Window <= 0 {
		config.Window = DefaultWindow
	}
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 3
	}
	if config.OpenTimeout <= 0 {
		config.OpenTimeout = 30 * time.Second
	}

	l := &Limiter{
		store:  store,
		config: config,
		logger: logger,
		now:    time.Now,
	}
	l.breaker = gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
		Name:        "ratelimit",
		MaxRequests: 1,
		Timeout:     config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("rate limiter breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return l
}

// Allow records a hit for client and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, client string) Decision {
	now := l.now()
	windowStart := now.Truncate(l.config.Window)
	decision := Decision{
		Allowed:   true,
		Limit:     l.config.Limit,
		Remaining: l.config.Limit,
		ResetAt:   windowStart.Add(l.config.Window),
	}
	if l.config.Limit <= 0 {
		return decision
	}

	key := fmt.Sprintf("%s:%s:%d", keyPrefix, client, windowStart.Unix())
	count, err := l.breaker.Execute(func() (int64, error) {
		return l.store.Incr(ctx, key, l.config.Window)
	})
	if err != nil {
		if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
			l.logger.Warn("rate limit store unavailable, allowing request", "error", err)
		}
		decision.Degraded = true
		return decision
	}

	decision.Remaining = max(0, l.config.Limit-int(count))
	decision.Allowed = count <= int64(l.config.Limit)
	return decision
}

// State returns the breaker state.
func (l *Limiter) State() gobreaker.State {
	return l.breaker.State()
}
