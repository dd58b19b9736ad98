package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/brevity/internal/api"
	"github.com/dgallion1/brevity/internal/cache"
	"github.com/dgallion1/brevity/internal/config"
	"github.com/dgallion1/brevity/internal/llm"
	"github.com/dgallion1/brevity/internal/ratelimit"
	"github.com/dgallion1/brevity/internal/summarize"
	"github.com/dgallion1/brevity/internal/telemetry"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.CompletionTimeout)

	var summaryCache cache.Cache
	var redisCache *cache.Redis
	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedis(cfg.RedisAddr, cfg.CacheTTL, log)
		if err := redisCache.Ping(ctx); err != nil {
			log.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		summaryCache = redisCache
	} else {
		memCache := cache.NewMemory(cfg.CacheTTL)
		go janitor(ctx, cfg.CacheTTL, memCache.Cleanup)
		summaryCache = memCache
	}

	store, err := telemetry.NewStore(cfg.TelemetryDB, cfg.StatsWindow, log)
	if err != nil {
		log.Error("opening telemetry store", "error", err)
		os.Exit(1)
	}
	store.Start(ctx)

	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go janitor(ctx, 5*time.Minute, limiter.Cleanup)

	// Initialize pipeline.
	pipeline := summarize.NewPipeline(client, summaryCache, log, summarize.Options{
		Model:         cfg.OpenAIModel,
		MaxChars:      cfg.MaxCharsPerChunk,
		Timeout:       cfg.PipelineTimeout,
		MaxConcurrent: cfg.MaxConcurrent,
		Temperature:   cfg.Temperature,
	})

	// Initialize HTTP server.
	srv := api.NewServer(pipeline, client.Stats, store, limiter, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		store.Close()
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	log.Info("starting brevity", "port", cfg.Port, "model", cfg.OpenAIModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// janitor runs fn on an interval until ctx is canceled.
func janitor(ctx context.Context, interval time.Duration, fn func()) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
