package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func rateLimitedRouter(rps int) *gin.Engine {
	r := gin.New()
	r.Use(RateLimitByIP(rps, time.Minute, time.Minute))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doPing(r *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitByIP_AllowsWithinLimit(t *testing.T) {
	r := rateLimitedRouter(5)
	for i := 0; i < 5; i++ {
		if code := doPing(r, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, code)
		}
	}
}

func TestRateLimitByIP_RejectsBurstOverLimit(t *testing.T) {
	r := rateLimitedRouter(2)

	doPing(r, "10.0.0.2")
	doPing(r, "10.0.0.2")
	if code := doPing(r, "10.0.0.2"); code != http.StatusTooManyRequests {
		t.Errorf("third burst request: status = %d, want 429", code)
	}
}

func TestRateLimitByIP_ConcurrentRequestsWhileReaping(t *testing.T) {
	r := gin.New()
	// Aggressive reap interval so the cleanup goroutine runs while
	// request goroutines are still touching the limiters.
	r.Use(RateLimitByIP(100, time.Millisecond, time.Millisecond))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ip := fmt.Sprintf("10.1.0.%d", i)
			for j := 0; j < 25; j++ {
				if code := doPing(r, ip); code != http.StatusOK && code != http.StatusTooManyRequests {
					t.Errorf("unexpected status %d", code)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestRateLimitByIP_LimitsPerIP(t *testing.T) {
	r := rateLimitedRouter(1)

	if code := doPing(r, "10.0.0.3"); code != http.StatusOK {
		t.Fatalf("first IP: status = %d, want 200", code)
	}
	if code := doPing(r, "10.0.0.3"); code != http.StatusTooManyRequests {
		t.Errorf("first IP second request: status = %d, want 429", code)
	}
	if code := doPing(r, "10.0.0.4"); code != http.StatusOK {
		t.Errorf("second IP: status = %d, want its own bucket", code)
	}
}
