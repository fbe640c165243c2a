package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const staleLimiter = 3 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	r         rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(perMinute float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		r:        rate.Limit(perMinute / 60),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > time.Minute {
		for key, v := range rl.visitors {
			if now.Sub(v.seen) > staleLimiter {
				delete(rl.visitors, key)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(rl.r, rl.burst)}
		rl.visitors[ip] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

// RateLimit answers 429 once a client IP runs out of tokens.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.String(http.StatusTooManyRequests, "Too many attempts. Please wait a minute and try again.")
			c.Abort()
			return
		}
		c.Next()
	}
}
