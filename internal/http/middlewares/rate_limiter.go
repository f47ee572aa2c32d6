package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Fixed-window limiter keyed per client. Only the register/login endpoints
// use it, to slow down credential stuffing.

type RateLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	hits     int
	resetsAt time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

// RateLimiterMiddleware enforces the limit for whatever key keyFn derives.
// A 429 carries Retry-After so well-behaved clients can back off.
func (rl *RateLimiter) RateLimiterMiddleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			key = clientIP(c)
		}

		allowed, retryAfter := rl.take(key)

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Please try again shortly.",
			})

			return
		}

		c.Next()
	}
}

// take consumes one slot for the key. When the answer is no it also reports
// how many whole seconds remain in the window.
func (rl *RateLimiter) take(key string) (bool, int) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]

	if !ok || now.After(b.resetsAt) {
		rl.buckets[key] = &bucket{hits: 1, resetsAt: now.Add(rl.window)}

		// opportunistic prune so long-gone clients don't pile up
		if len(rl.buckets) > 10_000 {
			for k, old := range rl.buckets {
				if now.After(old.resetsAt) {
					delete(rl.buckets, k)
				}
			}
		}

		return true, 0
	}

	if b.hits >= rl.limit {
		remaining := int(time.Until(b.resetsAt).Seconds())

		if remaining < 0 {
			remaining = 0
		}

		return false, remaining
	}

	b.hits++

	return true, 0
}

// KeyByIP rate limits unauthenticated endpoints by client address.
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
