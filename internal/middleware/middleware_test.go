package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Every(time.Hour), 2)
	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/api/admin/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rl := NewRateLimiter(ctx, rate.Limit(1), 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getVisitor("10.0.0.1")
	now = now.Add(visitorIdleTimeout + time.Second)
	rl.getVisitor("10.0.0.2")

	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestPerMinute(t *testing.T) {
	assert.Equal(t, rate.Every(time.Second), PerMinute(60))
}

func TestBodySizeLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(BodySizeLimitMiddleware(8))
	router.POST("/echo", func(c *gin.Context) {
		buf := make([]byte, 64)
		_, err := c.Request.Body.Read(buf)
		for err == nil {
			_, err = c.Request.Body.Read(buf)
		}
		var maxErr *http.MaxBytesError
		if assert.ErrorAs(t, err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("0123456789abcdef"))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/api/mentors", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mentors", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestObservabilityMiddleware_PassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(ObservabilityMiddleware())
	router.GET("/api/mentors/:id", func(c *gin.Context) {
		_ = c.Error(assert.AnError) //nolint:errcheck
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mentors/7?token=abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
