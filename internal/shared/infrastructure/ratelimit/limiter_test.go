package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
	calls  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{counts: make(map[string]int64)}
}

func (s *memoryStore) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	s.counts[key]++
	return s.counts[key], nil
}

func newLimiter(store Store, limit int) *Limiter {
	l := New(store, Config{Limit: limit, FailureThreshold: 2}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	l.now = func() time.Time { return time.Date(2025, 6, 10, 12, 0, 30, 0, time.UTC) }
	return l
}

func TestLimiter_Allow(t *testing.T) {
	l := newLimiter(newMemoryStore(), 3)
	ctx := context.Background()

	tests := []struct {
		client        string
		wantAllowed   bool
		wantRemaining int
	}{
		{"10.0.0.1", true, 2},
		{"10.0.0.1", true, 1},
		{"10.0.0.1", true, 0},
		{"10.0.0.1", false, 0},
		{"10.0.0.2", true, 2},
	}
	for i, tc := range tests {
		d := l.Allow(ctx, tc.client)
		assert.Equal(t, tc.wantAllowed, d.Allowed, "request %d", i)
		assert.Equal(t, tc.wantRemaining, d.Remaining, "request %d", i)
		assert.Equal(t, 3, d.Limit)
		assert.Equal(t, time.Date(2025, 6, 10, 12, 1, 0, 0, time.UTC), d.ResetAt)
		assert.False(t, d.Degraded)
	}
}

func TestLimiter_NewWindowResets(t *testing.T) {
	store := newMemoryStore()
	l := newLimiter(store, 1)
	ctx := context.Background()

	require.True(t, l.Allow(ctx, "c").Allowed)
	require.False(t, l.Allow(ctx, "c").Allowed)

	l.now = func() time.Time { return time.Date(2025, 6, 10, 12, 1, 5, 0, time.UTC) }
	assert.True(t, l.Allow(ctx, "c").Allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	store := newMemoryStore()
	l := newLimiter(store, 0)

	for range 5 {
		assert.True(t, l.Allow(context.Background(), "c").Allowed)
	}
	assert.Zero(t, store.calls)
}

func TestLimiter_FailsOpenAndTrips(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")
	l := newLimiter(store, 1)
	ctx := context.Background()

	for range 4 {
		d := l.Allow(ctx, "c")
		assert.True(t, d.Allowed)
		assert.True(t, d.Degraded)
	}

	assert.Equal(t, gobreaker.StateOpen, l.State())
	assert.Equal(t, 2, store.calls, "open breaker stops calling the store")
}
