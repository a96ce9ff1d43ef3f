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

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pscheid92/commentpulse/internal/adapter/httpserver"
	"github.com/pscheid92/commentpulse/internal/adapter/metrics"
	"github.com/pscheid92/commentpulse/internal/adapter/oracle"
	"github.com/pscheid92/commentpulse/internal/adapter/redis"
	"github.com/pscheid92/commentpulse/internal/adapter/render"
	"github.com/pscheid92/commentpulse/internal/app"
	"github.com/pscheid92/commentpulse/internal/domain"
	"github.com/pscheid92/commentpulse/internal/normalize"
	"github.com/pscheid92/commentpulse/internal/platform/config"
	"github.com/pscheid92/commentpulse/internal/platform/logging"
	"github.com/pscheid92/commentpulse/internal/platform/version"
)

const shutdownTimeout = 10 * time.Second

func runGracefulShutdown(srv *httpserver.Server, redisClient *goredis.Client) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupNormalizer(classification *metrics.ClassificationMetrics) *normalize.Normalizer {
	lemmatizer, err := normalize.NewEnglishLemmatizer()
	if err != nil {
		slog.Error("Failed to load lemmatizer", "error", err)
		os.Exit(1)
	}
	return normalize.New(lemmatizer, normalize.WithObserver(classification))
}

func setupOracle(cfg *config.Config, breakers *metrics.BreakerMetrics) domain.ClassificationOracle {
	if cfg.OracleURL == "" {
		lexicon, err := oracle.NewLexicon()
		if err != nil {
			slog.Error("Failed to load lexicon", "error", err)
			os.Exit(1)
		}
		slog.Info("Using built-in lexicon oracle")
		return lexicon
	}

	slog.Info("Using remote classification oracle", "url", cfg.OracleURL, "timeout", cfg.OracleTimeout)
	return oracle.NewRemote(cfg.OracleURL, cfg.OracleTimeout, oracle.WithBreakerObserver(breakers))
}

// setupPredictionCache connects to Redis when configured. Without Redis the
// oracle is used uncached and the returned client is nil.
func setupPredictionCache(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, breakers *metrics.BreakerMetrics, inner domain.ClassificationOracle) (domain.ClassificationOracle, *goredis.Client) {
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, prediction cache disabled")
		return inner, nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL,
		redis.NewCircuitBreakerHook(breakers),
		redis.NewMetricsHook(metrics.NewRedisMetrics(reg)),
	)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	store := redis.NewPredictionStore(client, cfg.PredictionCacheTTL)
	slog.Info("Prediction cache enabled", "ttl", cfg.PredictionCacheTTL)
	return oracle.NewCached(inner, store, metrics.NewCacheMetrics(reg)), client
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	info := version.Get()
	slog.Info("Application starting", "service", info.Service, "version", info.Version, "env", cfg.AppEnv, "port", cfg.Port)

	reg := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)
	classificationMetrics := metrics.NewClassificationMetrics(reg)
	breakerMetrics := metrics.NewBreakerMetrics(reg)

	normalizer := setupNormalizer(classificationMetrics)
	classifier, redisClient := setupPredictionCache(context.Background(), cfg, reg, breakerMetrics, setupOracle(cfg, breakerMetrics))

	appSvc := app.NewService(normalizer, classifier, render.New(metrics.NewRenderMetrics(reg)), clock,
		app.WithObserver(classificationMetrics),
		app.WithMaxComments(cfg.MaxComments),
		app.WithMaxTrendMonths(cfg.MaxTrendMonths),
		app.WithTopTerms(cfg.TermChartTopN),
	)

	var healthChecks []httpserver.HealthCheck
	if redisClient != nil {
		healthChecks = append(healthChecks, httpserver.HealthCheck{
			Name:     "redis",
			Check:    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
			Optional: true,
		})
	}

	srv := httpserver.NewServer(cfg, appSvc,
		httpserver.WithMetrics(metrics.Handler(reg), httpMetrics.Middleware()),
		httpserver.WithHealthChecks(healthChecks...),
		httpserver.WithClock(clock),
	)

	done := runGracefulShutdown(srv, redisClient)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
