package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimit is a per-client-IP token bucket. Stale buckets are pruned on the
// fly so the map does not grow without bound.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = map[string]*ipLimiter{}
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
				ip = host
			}
		}

		mu.Lock()
		entry, ok := limiters[ip]
		if !ok {
			entry = &ipLimiter{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
			limiters[ip] = entry
		}
		entry.seen = time.Now()
		for addr, other := range limiters {
			if time.Since(other.seen) > 10*time.Minute {
				delete(limiters, addr)
			}
		}
		mu.Unlock()

		if !entry.lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
			})
			return
		}
		c.Next()
	}
}
