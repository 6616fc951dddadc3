package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repair-tracker/internal/core/cache"
	"repair-tracker/internal/core/config"
	"repair-tracker/internal/core/logger"
	"repair-tracker/internal/core/phone"
	"repair-tracker/internal/core/ratelimit"
	"repair-tracker/internal/core/server"
	orderadapter "repair-tracker/internal/features/orders/adapters"
	"repair-tracker/internal/features/orders/domain"
	orderhandler "repair-tracker/internal/features/orders/handler"
	orderservice "repair-tracker/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const startupCheckTimeout = 10 * time.Second

// @title Repair Tracker API
// @version 1.0
// @description Public lookup of repair orders and their progress through the repair pipeline.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	aliases, err := cfg.Lookup.StatusAliasMap()
	if err != nil {
		l.Fatal("Invalid status aliases", zap.Error(err))
	}
	mapper, err := domain.NewProgressMapper(aliases)
	if err != nil {
		l.Fatal("Invalid status aliases", zap.Error(err))
	}

	// Initialize Order Store and run Health Check
	store := orderadapter.NewSupabaseAdapter(cfg.Store, phone.NewNormalizer(cfg.Lookup.PhoneRegion))

	ctx, cancel := context.WithTimeout(context.Background(), startupCheckTimeout)
	if err := store.HealthCheck(ctx); err != nil {
		// The store may come up later; /health keeps reporting until it does.
		l.Warn("Order store health check failed", zap.Error(err))
	} else {
		l.Info("Order store connection verified")
	}
	cancel()

	// Initialize Lookup Service & Handler
	lookupService := orderservice.NewLookupService(store, store, mapper)
	lookupHandler := orderhandler.NewLookupHandler(lookupService, store, cfg.Lookup.PublicTrackURL)

	limit, closeLimiter := newRateLimit(cfg.Lookup)
	defer closeLimiter()

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/lookup", limit, lookupHandler.Lookup)
	srv.App.Get("/track", limit, lookupHandler.Track)
	srv.App.Get("/track/qr", lookupHandler.TrackingQR)
	srv.App.Get("/progress", lookupHandler.Progress)
	srv.App.Get("/health", lookupHandler.Health)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}

// newRateLimit builds the lookup rate limiter: Redis-backed when REDIS_URL is
// set, in-process otherwise. A zero limit disables it.
func newRateLimit(cfg config.LookupConfig) (fiber.Handler, func()) {
	l := logger.Get()
	noop := func() {}

	if cfg.RateLimitPerMinute == 0 {
		l.Info("Lookup rate limiting disabled")
		return func(c *fiber.Ctx) error { return c.Next() }, noop
	}

	if cfg.RedisURL == "" {
		l.Info("Using in-process rate limiter", zap.Int("per_minute", cfg.RateLimitPerMinute))
		return ratelimit.New(ratelimit.NewLocalLimiter(cfg.RateLimitPerMinute)), noop
	}

	redis, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Invalid REDIS_URL", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupCheckTimeout)
	defer cancel()
	if err := redis.Ping(ctx); err != nil {
		l.Warn("Redis unreachable, requests pass unlimited until it recovers", zap.Error(err))
	}

	l.Info("Using Redis rate limiter", zap.Int("per_minute", cfg.RateLimitPerMinute))
	limiter := ratelimit.NewRedisLimiter(redis, cfg.RateLimitPerMinute, time.Minute)
	return ratelimit.New(limiter), func() { _ = redis.Close() }
}
