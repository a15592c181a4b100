// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contact-intake/pkg/logger"
	"contact-intake/pkg/metrics"
	"contact-intake/pkg/models"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// CORS allows cross-origin calls from the listed origins. With no origins it
// adds nothing, which suits a same-origin site. Only real preflights (OPTIONS
// with Access-Control-Request-Method) are answered here; any other OPTIONS
// request reaches the route.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := slices.Contains(allowedOrigins, "*")
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || len(allowedOrigins) == 0 || (!allowAll && !slices.Contains(allowedOrigins, origin)) {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLogger tags the request with an id, logs its completion and counts it.
// Register it ahead of Recovery so requests that panic are still counted.
func RequestLogger(collector metrics.Collector) gin.HandlerFunc {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		collector.RecordHTTPRequest(c.Request.Method, status)
		logger.Info(ctx, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"client_ip", c.ClientIP(),
			"duration", time.Since(start),
		)
	}
}

// Recovery turns a panic into the standard failure envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "http request panicked", "panic", err, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ContactResponse{
					OK:    false,
					Error: "Internal server error.",
				})
			}
		}()
		c.Next()
	}
}

// BodyLimit caps how many bytes a handler may read from the request body.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && strings.TrimSpace(r.Header.Get("Access-Control-Request-Method")) != ""
}
