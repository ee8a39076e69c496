package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)
		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("client1"), "request %d should be allowed", i+1)
		}
	})

	t.Run("blocks requests exceeding limit", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("client2"))
		}
		assert.False(t, limiter.Allow("client2"))
	})

	t.Run("separate limits per client", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute)

		assert.True(t, limiter.Allow("clientA"))
		assert.True(t, limiter.Allow("clientA"))
		assert.False(t, limiter.Allow("clientA"))

		assert.True(t, limiter.Allow("clientB"))
		assert.True(t, limiter.Allow("clientB"))
	})

	t.Run("refills over time", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(2, time.Minute)
		limiter.now = func() time.Time { return now }

		assert.True(t, limiter.Allow("client3"))
		assert.True(t, limiter.Allow("client3"))
		assert.False(t, limiter.Allow("client3"))

		now = now.Add(31 * time.Second)
		assert.True(t, limiter.Allow("client3"))
		assert.False(t, limiter.Allow("client3"))
	})

	t.Run("remaining returns correct count", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(5, time.Minute)
		limiter.now = func() time.Time { return now }

		assert.Equal(t, 5, limiter.Remaining("newclient"))
		limiter.Allow("newclient")
		limiter.Allow("newclient")
		assert.Equal(t, 3, limiter.Remaining("newclient"))
	})

	t.Run("evicts idle clients", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(1, time.Hour)
		limiter.now = func() time.Time { return now }

		limiter.Allow("idle")
		now = now.Add(11 * time.Minute)
		limiter.Allow("active")

		limiter.mu.Lock()
		_, ok := limiter.clients["idle"]
		limiter.mu.Unlock()
		assert.False(t, ok)
	})

	t.Run("zero limit disables limiting", func(t *testing.T) {
		limiter := NewRateLimiter(0, time.Minute)
		for i := 0; i < 50; i++ {
			assert.True(t, limiter.Allow("any"))
		}
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(100, time.Minute)
		limiter.now = func() time.Time { return now }

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("concurrent-client") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 100, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(2, time.Hour)
	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/api/v1/stores", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")

	other := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRateLimit(t *testing.T) {
	limiter := NewRateLimiter(3, time.Hour)
	router := gin.New()
	router.Use(AuthRateLimit(limiter))
	router.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	login := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "192.168.1.100:12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, login().Code, "attempt %d", i+1)
	}
	w := login()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many authentication attempts")
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}
