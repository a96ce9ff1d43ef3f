package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pscheid92/commentpulse/internal/platform/correlation"
)

func (s *Server) registerRoutes() {
	s.echo.Use(requestIDMiddleware())
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	if s.metricsMiddleware != nil {
		s.echo.Use(s.metricsMiddleware)
	}
	s.echo.Use(ErrorHandlingMiddleware())
	// The browser extension calls from its own origin.
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	s.echo.GET("/", s.handleWelcome)

	limiter := newRateLimiter(s.config.RateLimitPerSecond, s.config.RateLimitBurst)

	s.registerHealthRoutes()
	s.registerPredictionRoutes(limiter)
	s.registerChartRoutes(limiter)

	if s.metricsHandler != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metricsHandler))
	}
}

func (s *Server) registerPredictionRoutes(limiter echo.MiddlewareFunc) {
	s.echo.POST("/predict", s.handlePredict, limiter)
	s.echo.POST("/predict_with_timestamps", s.handlePredictWithTimestamps, limiter)
	s.echo.POST("/trend", s.handleTrend, limiter)
}

func (s *Server) registerChartRoutes(limiter echo.MiddlewareFunc) {
	s.echo.POST("/generate_chart", s.handleDistributionChart, limiter)
	s.echo.POST("/generate_wordcloud", s.handleTermChart, limiter)
	s.echo.POST("/generate_trend_graph", s.handleTrendChart, limiter)
}

// requestIDMiddleware takes X-Request-ID from the client or generates one,
// and stores it as the correlation id for every log line of the request.
func requestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    correlation.NewID,
		TargetHeader: correlation.HeaderName,
		RequestIDHandler: func(c echo.Context, id string) {
			ctx := correlation.WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}
