package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpHandlers "github.com/hourei/hourei-backend/internal/api/http"
	"github.com/hourei/hourei-backend/internal/cache"
	"github.com/hourei/hourei-backend/internal/config"
	"github.com/hourei/hourei-backend/internal/lawapi"
	"github.com/hourei/hourei-backend/internal/metrics"
	"github.com/hourei/hourei-backend/internal/platform/logger"
	"github.com/hourei/hourei-backend/internal/proxy"
	"github.com/hourei/hourei-backend/internal/quiz"
)

func main() {
	cachePath := flag.String("cache-path", "", "Override HOUREI_CACHE_PATH (sqlite file for the durable cache tier)")
	flag.Parse()

	log := logger.New("hourei-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *cachePath != "" {
		cfg.CachePath = *cachePath
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("upstream", cfg.UpstreamBaseURL).
		Bool("use_proxy", cfg.UseProxy).
		Msg("Law service starting…")

	// -------- Cache tiers -------------------
	cacheOpts := []cache.Option{}
	if cfg.CachePath != "" {
		durable, err := cache.OpenSqliteBackend(cfg.CachePath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.CachePath).Msg("Durable cache unavailable; continuing with memory tiers")
		} else {
			cacheOpts = append(cacheOpts, cache.WithDurable(durable))
		}
	}
	tieredCache := cache.New(log, cacheOpts...)

	// -------- Upstream client ---------------
	registry := prometheus.NewRegistry()
	collectors := metrics.New(registry)
	client := lawapi.New(lawapi.Config{
		BaseURL:        cfg.UpstreamBaseURL,
		UseProxy:       cfg.UseProxy,
		ProxyBaseURL:   cfg.ProxyBaseURL,
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
		SearchCacheTTL: cfg.SearchCacheTTL,
		DetailCacheTTL: cfg.DetailCacheTTL,
	},
		lawapi.WithCache(tieredCache),
		lawapi.WithMetrics(collectors),
		lawapi.WithLogger(log),
	)

	// -------- Health monitor ---------------
	ctx := context.Background()
	httpHandlers.StartHealthMonitor(ctx, cfg.UpstreamBaseURL, 30*time.Second)

	// -------- Router & Server --------------
	router := httpHandlers.NewRouter(httpHandlers.RouterDeps{
		Client:    client,
		Generator: quiz.NewGenerator(quiz.DefaultBank()),
		Proxy:     proxy.NewHandler(cfg.AllowedHosts(), log),
		Registry:  registry,
	})
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	tieredCache.EndSession()
	log.Info().Msg("Server exited")
}
