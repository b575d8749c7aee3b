package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestStore returns a memory store with a controllable clock and no sweep
// routine.
func newTestStore(now *time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     func() time.Time { return *now },
		stop:    make(chan struct{}),
	}
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	now := time.Now()
	store := newTestStore(&now)
	limiter := NewLimiter(store, 3, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "otp:4670123")
		require.NoError(t, err)
		require.True(t, allowed, "attempt %d should be allowed", i+1)

		_, err = limiter.RecordAttempt(ctx, "otp:4670123")
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, "otp:4670123")
	require.NoError(t, err)
	require.False(t, allowed, "attempt past the budget should be blocked")
}

func TestLimiterWindowExpiry(t *testing.T) {
	now := time.Now()
	store := newTestStore(&now)
	limiter := NewLimiter(store, 3, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.RecordAttempt(ctx, "key")
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	require.False(t, allowed)

	// Once the window lapses the budget is restored in full
	now = now.Add(5*time.Minute + time.Second)

	allowed, err = limiter.Allow(ctx, "key")
	require.NoError(t, err)
	require.True(t, allowed)

	remaining, err := limiter.TimeRemaining(ctx, "key")
	require.NoError(t, err)
	require.Zero(t, remaining)
}

func TestLimiterWindowExtendsOnEachAttempt(t *testing.T) {
	now := time.Now()
	store := newTestStore(&now)
	limiter := NewLimiter(store, 3, 5*time.Minute)
	ctx := context.Background()

	_, err := limiter.RecordAttempt(ctx, "key")
	require.NoError(t, err)

	// A later attempt pushes expiry out from that attempt, not the first
	now = now.Add(2 * time.Minute)
	_, err = limiter.RecordAttempt(ctx, "key")
	require.NoError(t, err)

	_, expiresAt, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, now.Add(5*time.Minute), expiresAt)
}

func TestLimiterReset(t *testing.T) {
	now := time.Now()
	store := newTestStore(&now)
	limiter := NewLimiter(store, 3, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.RecordAttempt(ctx, "key")
		require.NoError(t, err)
	}
	require.NoError(t, limiter.Reset(ctx, "key"))

	allowed, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	now := time.Now()
	store := newTestStore(&now)
	limiter := NewLimiter(store, 1, 5*time.Minute)
	ctx := context.Background()

	_, err := limiter.RecordAttempt(ctx, "login:a@example.com")
	require.NoError(t, err)

	allowed, err := limiter.Allow(ctx, "login:a@example.com")
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "login:b@example.com")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMemoryStoreConcurrentIncrement(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Increment(ctx, "key", time.Minute)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	count, _, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, 50, count)
}

func TestThrottleErrorRounding(t *testing.T) {
	e := &ThrottleError{RetryAfter: 151 * time.Second}
	require.Equal(t, 151, e.RetryAfterSeconds())
	require.Equal(t, 3, e.RetryAfterMinutes())

	e = &ThrottleError{RetryAfter: 500 * time.Millisecond}
	require.Equal(t, 1, e.RetryAfterSeconds())
	require.Equal(t, 1, e.RetryAfterMinutes())
}

func TestOTPKeyNormalization(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		ip       string
		expected string
	}{
		{"plain digits", "46701234567", "", "otp:46701234567"},
		{"plus prefix stripped", "+46701234567", "", "otp:46701234567"},
		{"spaces stripped", "+46 70 123 45 67", "", "otp:46701234567"},
		{"equivalent formats collapse", "46 701 234 567", "", "otp:46701234567"},
		{"empty phone falls back to ip", "", "10.0.0.1", "otp:ip:10.0.0.1"},
		{"whitespace-only phone falls back to ip", "   ", "10.0.0.1", "otp:ip:10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, OTPKey(tt.phone, tt.ip))
		})
	}
}

func TestLoginKeyNormalization(t *testing.T) {
	require.Equal(t, "login:admin@example.com", LoginKey("Admin@Example.com"))
	require.Equal(t, "login:admin@example.com", LoginKey("  admin@example.com  "))
}
