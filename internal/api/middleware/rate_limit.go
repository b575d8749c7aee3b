package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"shopadmin/internal/config"
)

// RateLimiter applies a per-client token bucket to every route. It is a coarse
// outer guard; the authentication flow carries its own fixed-window counters.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	window   int
}

// NewRateLimiter creates the global rate limit middleware
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	perSecond := rate.Every(time.Duration(cfg.RateLimit.GlobalWindow) * time.Second / time.Duration(cfg.RateLimit.GlobalRequests))

	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    cfg.RateLimit.GlobalRequests,
		window:   cfg.RateLimit.GlobalWindow,
	}
	go rl.cleanupRoutine(time.Hour)
	return rl
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// cleanupRoutine drops all buckets periodically so idle clients do not
// accumulate forever.
func (rl *RateLimiter) cleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		rl.limiters = make(map[string]*rate.Limiter)
		rl.mu.Unlock()
	}
}

// Middleware returns the gin handler enforcing the limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(c.ClientIP())

		if !limiter.Allow() {
			c.Header("Retry-After", fmt.Sprintf("%d", rl.window))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": fmt.Sprintf("%ds", rl.window),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
