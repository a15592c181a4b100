package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"contact-intake/pkg/api"
	"contact-intake/pkg/config"
	"contact-intake/pkg/metrics"
	"contact-intake/pkg/middleware"
	"contact-intake/pkg/services"
)

// newRouter builds the public router. Metrics are not served here: the
// submission outcomes would tell a bot whether it tripped the honeypot.
func newRouter(cfg *config.Config, submissionService services.ContactSubmissionService, m *metrics.Metrics) (*gin.Engine, error) {
	router := gin.New()

	// Only listed proxies may set X-Forwarded-For; otherwise the rate
	// limiter keys on the peer address.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	router.Use(
		middleware.RequestLogger(m),
		middleware.Recovery(),
		middleware.CORS(cfg.AllowedOrigins),
	)

	// Initialize handlers
	handlers := api.NewHandlers(submissionService)

	// Register routes
	router.Any("/api/contact",
		limiter.Middleware(),
		middleware.BodyLimit(cfg.MaxBodyBytes),
		handlers.HandleContactSubmission,
	)
	router.GET("/health", handlers.HealthCheck)

	return router, nil
}

// newMetricsServer serves /metrics on its own listener, meant for an
// internal address.
func newMetricsServer(addr string, m *metrics.Metrics) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(m.Handler()))
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
