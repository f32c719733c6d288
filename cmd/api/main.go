// ABOUTME: Main entry point for the Shoplist API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"shoplist-api/api"
	"shoplist-api/api/middleware"
	"shoplist-api/core/interfaces"
	"shoplist-api/core/share"
	"shoplist-api/core/snapshot"
	"shoplist-api/core/workers"
	stdhttp "shoplist-api/infrastructure/http/standard"
	"shoplist-api/infrastructure/identity/supabase"
	"shoplist-api/infrastructure/logger/logrus"
	"shoplist-api/infrastructure/store"
	"shoplist-api/pkg/config"
	"shoplist-api/pkg/featureflags"
)

func main() {
	// A missing .env is fine; the environment may already be populated
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env: %v", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logrus.FromConfig(cfg.Log)
	defer logger.Close()

	logger.Info("Starting Shoplist API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"store_type": cfg.Store.Type,
		"share_ttl":  cfg.Share.TTL.String(),
	})

	kv, closer, err := store.New(cfg.Store, logger)
	if err != nil {
		logger.Error("Failed to open store", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer closer.Close()

	// Identity provider calls retry idempotent requests and log each attempt with the inbound request ID
	identityTransport := stdhttp.NewRetryTransport(&middleware.LoggingRoundTripper{
		Transport: http.DefaultTransport,
		Logger:    logger,
	})

	deps := interfaces.Dependencies{
		Store:  kv,
		Logger: logger,
	}

	identity := supabase.NewClient(cfg.Identity.URL, cfg.Identity.ServiceRoleKey, identityTransport, cfg.Identity.Timeout, logger)
	if !cfg.Identity.Configured() {
		logger.Warn("Identity provider not configured; signup and /me routes will fail", nil)
	}

	shareService := share.NewShareService(deps,
		share.WithTTL(cfg.Share.TTL),
		share.WithCodeLength(cfg.Share.CodeLength),
	)
	snapshotService := snapshot.NewService(deps, shareService)

	flags := featureflags.NewEnvManager("FEATURE_")

	var sweeper *workers.SweepWorker
	if cfg.Share.SweepInterval > 0 && flags.IsEnabled(context.Background(), featureflags.SweepEnabled) {
		sweeper = workers.NewSweepWorker(shareService, workers.SweepConfig{Interval: cfg.Share.SweepInterval}, logger)
		if err := sweeper.Start(); err != nil {
			logger.Error("Failed to start share sweeper", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			logger.Info("Share sweeper started", map[string]interface{}{
				"interval": cfg.Share.SweepInterval.String(),
			})
		}
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer limiter.Stop()

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:      logger,
		Flags:       flags,
		RateLimiter: limiter,
	})
	api.RegisterRoutes(humaAPI, api.Services{
		Shares:    shareService,
		Snapshots: snapshotService,
		Identity:  identity,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if sweeper != nil {
		if err := sweeper.Stop(); err != nil {
			logger.Warn("Share sweeper did not stop cleanly", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Info("Server stopped", nil)
}

func init() {
	fmt.Println(`
  ___ _                _ _     _
 / __| |_  ___ _ __ __| (_)___| |_
 \__ \ ' \/ _ \ '_ (_-< | (_-<  _|
 |___/_||_\___/ .__/__/_|_/__/\__|
              |_|            API
	`)
}
