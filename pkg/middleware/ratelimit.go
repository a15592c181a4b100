package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"contact-intake/pkg/logger"
	"contact-intake/pkg/models"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
	disabled  bool
}

// NewRateLimiter allows perMinute requests per client, with the given burst.
// A perMinute of zero or less turns limiting off.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		now:      time.Now,
		disabled: perMinute <= 0,
	}
}

// Enabled reports whether requests are limited at all.
func (rl *RateLimiter) Enabled() bool { return !rl.disabled }

// Allow reports whether key may make another request now.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.disabled {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > limiterIdleTTL {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects clients over their budget with 429. Preflights are not
// counted.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.disabled || isPreflight(c.Request) {
			c.Next()
			return
		}
		if !rl.Allow(c.ClientIP()) {
			logger.Warn(c.Request.Context(), "rate limit exceeded", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ContactResponse{
				OK:    false,
				Error: "Too many requests.",
			})
			return
		}
		c.Next()
	}
}
