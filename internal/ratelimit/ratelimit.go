// Package ratelimit implements fixed-window attempt counting behind an
// injectable store, used to throttle OTP requests and interactive logins.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// AttemptStore tracks attempt counts per key. Increment must be atomic and
// must (re)set the key's expiry to now+window on every hit.
type AttemptStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int, error)
	Get(ctx context.Context, key string) (int, time.Time, error)
	Reset(ctx context.Context, key string) error
}

// ThrottleError signals that the limit for a key has been exceeded. It is an
// expected, user-recoverable outcome, not an infrastructure failure.
type ThrottleError struct {
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("too many attempts, retry after %ds", e.RetryAfterSeconds())
}

// RetryAfterSeconds returns the remaining wait rounded up to whole seconds
func (e *ThrottleError) RetryAfterSeconds() int {
	return int(math.Ceil(e.RetryAfter.Seconds()))
}

// RetryAfterMinutes returns the remaining wait rounded up to whole minutes,
// for human-readable messages.
func (e *ThrottleError) RetryAfterMinutes() int {
	return int(math.Ceil(e.RetryAfter.Minutes()))
}

// Limiter enforces at most max attempts per key within a fixed window
type Limiter struct {
	store  AttemptStore
	max    int
	window time.Duration
}

// NewLimiter creates a limiter over the given store
func NewLimiter(store AttemptStore, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window}
}

// Allow reports whether another attempt is currently permitted for key
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, _, err := l.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return count < l.max, nil
}

// RecordAttempt counts an attempt against key and refreshes the window expiry
func (l *Limiter) RecordAttempt(ctx context.Context, key string) (int, error) {
	return l.store.Increment(ctx, key, l.window)
}

// TimeRemaining returns how long until the window for key expires. Zero when
// the key has no live counter.
func (l *Limiter) TimeRemaining(ctx context.Context, key string) (time.Duration, error) {
	count, expiresAt, err := l.store.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	remaining := time.Until(expiresAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Reset clears the counter for key
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

// Window returns the limiter's window length
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Max returns the limiter's attempt budget per window
func (l *Limiter) Max() int {
	return l.max
}

// OTPKey derives the throttle key for an OTP request. Phone numbers are
// normalized by stripping "+" and spaces; when no phone number is present the
// caller's network address is used instead.
func OTPKey(phone, fallbackIP string) string {
	normalized := strings.NewReplacer("+", "", " ", "").Replace(phone)
	if normalized == "" {
		return "otp:ip:" + fallbackIP
	}
	return "otp:" + normalized
}

// LoginKey derives the throttle key for an interactive login attempt
func LoginKey(identifier string) string {
	return "login:" + strings.ToLower(strings.TrimSpace(identifier))
}
