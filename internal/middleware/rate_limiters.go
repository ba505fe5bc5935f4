package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter pairs a rate limiter with the last time its IP was seen,
// so idle limiters can be reaped. lastSeen is written by request goroutines
// and read by the reaper, so it is guarded by its own mutex.
type clientLimiter struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

func (cl *clientLimiter) touch() {
	cl.mu.Lock()
	cl.lastSeen = time.Now()
	cl.mu.Unlock()
}

func (cl *clientLimiter) expired(expiration time.Duration) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return time.Since(cl.lastSeen) > expiration
}

// RateLimitByIP applies per-IP rate limiting. Aggregated searches fan out
// to several metered upstream APIs, so one request is amplified several
// times over; the limit here is the cheap place to contain that.
func RateLimitByIP(rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	var limiters sync.Map

	// Reap limiters for IPs that have gone quiet.
	go func() {
		for range time.Tick(cleanupInterval) {
			limiters.Range(func(key, value interface{}) bool {
				if value.(*clientLimiter).expired(expiration) {
					limiters.Delete(key)
				}
				return true
			})
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		actual, _ := limiters.LoadOrStore(ip, &clientLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), rps),
			lastSeen: time.Now(),
		})

		cl := actual.(*clientLimiter)
		cl.touch()

		if !cl.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
