// Package httpserver exposes the sentiment service over HTTP with echo.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/pscheid92/commentpulse/internal/app"
	"github.com/pscheid92/commentpulse/internal/domain"
	"github.com/pscheid92/commentpulse/internal/platform/config"
	"github.com/pscheid92/commentpulse/internal/trend"
)

type appService interface {
	Predict(ctx context.Context, comments []string) ([]app.Prediction, error)
	PredictWithTimestamps(ctx context.Context, comments []domain.Comment) ([]app.TimedPrediction, error)
	DistributionChart(ctx context.Context, counts map[string]int) ([]byte, error)
	TermFrequencyChart(ctx context.Context, comments []string) ([]byte, error)
	Trend(ctx context.Context, raw []trend.RawRecord) ([]domain.MonthlyBucket, error)
	TrendChart(ctx context.Context, raw []trend.RawRecord) ([]byte, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	app    appService

	metricsHandler    http.Handler
	metricsMiddleware echo.MiddlewareFunc

	healthChecks []HealthCheck
	clock        clockwork.Clock
	startTime    time.Time
}

type Option func(*Server)

// WithMetrics exposes handler on /metrics and records every request through middleware.
func WithMetrics(handler http.Handler, middleware echo.MiddlewareFunc) Option {
	return func(s *Server) {
		s.metricsHandler = handler
		s.metricsMiddleware = middleware
	}
}

func WithHealthChecks(checks ...HealthCheck) Option {
	return func(s *Server) { s.healthChecks = append(s.healthChecks, checks...) }
}

func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

func NewServer(cfg *config.Config, app appService, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:   e,
		config: cfg,
		app:    app,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(srv)
	}
	srv.startTime = srv.clock.Now()

	srv.registerRoutes()

	return srv
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
