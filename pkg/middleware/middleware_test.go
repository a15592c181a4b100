package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-intake/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingCollector struct {
	requests []int
}

func (r *recordingCollector) RecordSubmission(string)                          {}
func (r *recordingCollector) ObserveStorageWrite(string, time.Duration, error) {}
func (r *recordingCollector) RecordHTTPRequest(method string, status int) {
	r.requests = append(r.requests, status)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.Any("/api/contact", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "request_id": logger.RequestID(c.Request.Context())})
	})
	return r
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(CORS([]string{"https://example.com"}))

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORSUnknownOrigin(t *testing.T) {
	r := newRouter(CORS([]string{"https://example.com"}))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set("Origin", "https://evil.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcard(t *testing.T) {
	r := newRouter(CORS([]string{"*"}))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set("Origin", "https://any.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://any.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLoggerAssignsID(t *testing.T) {
	collector := &recordingCollector{}
	r := newRouter(RequestLogger(collector))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact", nil))

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Contains(t, w.Body.String(), id)
	assert.Equal(t, []int{http.StatusOK}, collector.requests)
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	r := newRouter(RequestLogger(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Internal server error."}`, w.Body.String())
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/echo", func(c *gin.Context) {
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
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 32))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(60, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "buckets are per client")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("1.2.3.4"), "one token refills per second at 60/min")
}

func TestRateLimiterPrunesIdleClients(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(60, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("1.2.3.4")
	now = now.Add(limiterIdleTTL + time.Minute)
	rl.Allow("5.6.7.8")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "1.2.3.4")
	assert.Contains(t, rl.visitors, "5.6.7.8")
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	r := newRouter(rl.Middleware())

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Too many requests."}`, second.Body.String())
}

func TestRateLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	rl := NewRateLimiter(20, 5)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(rl.Middleware())
	r.POST("/api/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			allowed++
		}
	}

	assert.Equal(t, 5, allowed)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "198.51.100.7")
}

func TestRateLimiterDisabled(t *testing.T) {
	for _, perMinute := range []int{0, -1} {
		rl := NewRateLimiter(perMinute, 1)
		assert.False(t, rl.Enabled())

		r := newRouter(rl.Middleware())
		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
		assert.Empty(t, rl.visitors)
	}
}

func TestRequestLoggerCountsRecoveredPanics(t *testing.T) {
	collector := &recordingCollector{}
	r := gin.New()
	r.Use(RequestLogger(collector), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, []int{http.StatusInternalServerError}, collector.requests)
}
