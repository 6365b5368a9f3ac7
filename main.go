package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MenuImage_API/internal/config"
	"MenuImage_API/internal/fetcher"
	"MenuImage_API/internal/http"
	"MenuImage_API/internal/logger"
	"MenuImage_API/internal/menu"
	"MenuImage_API/internal/models"
	"MenuImage_API/internal/ratelimit"
	"MenuImage_API/internal/resolver"
	"MenuImage_API/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection for logging
	db, err := logger.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	// Initialize logger
	appLogger := logger.NewDatabaseLogger(db)
	defer appLogger.Close()

	// Create internal log event for startup
	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	appLogger.LogInfo(startupCtx, logger.OpServerStart, "Starting Menu Image API", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"port":       cfg.Port,
			"store_type": cfg.StoreType,
		},
	})

	// Initialize the image cache store
	cacheStore, err := initializeStore(cfg)
	if err != nil {
		appLogger.LogError(
			startupCtx,
			"store_init",
			"",
			"Failed to initialize image cache store",
			err,
			models.LogSeverityHigh,
			nil,
		)
		log.Fatalf("Failed to initialize image cache store: %v", err)
	}
	defer cacheStore.Close()

	// Initialize collaborators
	imageFetcher := fetcher.NewGoogleFetcher(
		cfg.GoogleAPIKey,
		cfg.GoogleCSEID,
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
	)
	menuAnalyzer := menu.NewVisionAnalyzer(
		cfg.AIBaseURL,
		cfg.AIAPIKey,
		cfg.AIModel,
		time.Duration(cfg.AITimeoutSeconds)*time.Second,
	)

	rateLimiter := ratelimit.NewTwoTierRateLimiter(
		int64(cfg.GlobalRateLimitPerSec),
		int64(cfg.GlobalRateLimitPerSec),
		int64(cfg.PerIPRateLimitPerSec),
		int64(cfg.PerIPRateLimitPerSec),
	)

	// Initialize service
	resolveService := resolver.NewService(
		cacheStore,
		imageFetcher,
		appLogger,
		cfg.MaxConcurrentResolves,
		time.Duration(cfg.ResolveTimeoutSeconds)*time.Second,
	)

	// Initialize HTTP handler
	handler := http.NewHandler(resolveService, menuAnalyzer, appLogger, cfg.MaxUploadBytes)

	// Initialize server
	addr := ":" + cfg.Port
	server := http.NewServer(
		addr,
		handler,
		appLogger,
		rateLimiter,
		cfg.ServerReadTimeout,
		cfg.ServerWriteTimeout,
	)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.LogError(
				context.Background(),
				logger.OpServerStart,
				"",
				"Server failed to start",
				err,
				models.LogSeverityHigh,
				map[string]interface{}{"addr": addr},
			)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("Menu Image API server started on %s\n", addr)
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /health               - Health check")
	fmt.Println("  GET    /api/image/{keyword}  - Resolve single keyword")
	fmt.Println("  POST   /api/batch-images     - Resolve multiple keywords")
	fmt.Println("  POST   /api/menu/analyze     - Analyze menu photo")
	fmt.Println("  DELETE /api/cache            - Clear image cache")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		appLogger.LogError(
			ctx,
			logger.OpServerShutdown,
			"",
			"Server shutdown error",
			err,
			models.LogSeverityMedium,
			nil,
		)
		log.Printf("Server shutdown error: %v", err)
	} else {
		appLogger.LogInfo(ctx, logger.OpServerShutdown, "Server shutdown completed successfully", nil)
		fmt.Println("Server shutdown completed")
	}
}

func initializeStore(cfg *config.Config) (store.Service, error) {
	switch cfg.StoreType {
	case "postgres":
		return store.NewPostgresStore(cfg.DatabaseURL)
	case "redis":
		return store.NewRedisStore(cfg.RedisURL)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
	}
}
