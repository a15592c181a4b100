package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"contact-intake/pkg/config"
	"contact-intake/pkg/logger"
	"contact-intake/pkg/metrics"
	"contact-intake/pkg/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file loaded")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	if err := logger.Init(logger.Config{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Output:   cfg.LogOutput,
		FilePath: cfg.LogFile,
	}); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	m := metrics.New()

	// Storage is resolved per request so a misconfigured deployment still
	// serves health checks and reports the problem on submit.
	submissionService := services.NewContactSubmissionService(
		func() (*config.StorageConfig, error) { return config.ResolveStorage(os.Getenv) },
		m,
	)

	gin.SetMode(cfg.GinMode)
	router, err := newRouter(cfg, submissionService, m)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	servers := []*http.Server{{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.MetricsAddr != "" {
		servers = append(servers, newMetricsServer(cfg.MetricsAddr, m))
	}

	for _, srv := range servers {
		go func(srv *http.Server) {
			slog.Info("server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("error starting server", "addr", srv.Addr, "error", err)
				os.Exit(1)
			}
		}(srv)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "addr", srv.Addr, "error", err)
		}
	}
	slog.Info("server stopped")
}
