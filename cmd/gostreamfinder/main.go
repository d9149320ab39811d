package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gostreamfinder/internal/constants"
	"github.com/amaumene/gostreamfinder/internal/handlers"
	"github.com/amaumene/gostreamfinder/internal/middleware"
)

const cacheCleanupInterval = 10 * time.Minute

func main() {
	InitializeConfig()
	InitializeDatabase()
	InitializeServices()

	if Config.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip(handlers.MetricsPath))

	handler.RegisterRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if embeddingCache != nil {
		embeddingCache.StartCleanup(ctx, cacheCleanupInterval)
	}

	srv := &http.Server{
		Addr:    Config.ListenAddr(),
		Handler: r,
	}

	go func() {
		Logger.Infof("[App] starting HTTP server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Fatalf("[App] HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	Logger.Infof("[App] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		Logger.Errorf("[App] graceful shutdown failed: %v", err)
	}

	if DB != nil {
		if err := DB.Close(); err != nil {
			Logger.Errorf("[App] failed to close vector index: %v", err)
		}
	}
}
