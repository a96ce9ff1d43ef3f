package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/commentpulse/internal/app"
	"github.com/pscheid92/commentpulse/internal/domain"
	"github.com/pscheid92/commentpulse/internal/platform/config"
	"github.com/pscheid92/commentpulse/internal/trend"
)

// --- Mock implementations ---

type mockAppService struct {
	predictFn               func(ctx context.Context, comments []string) ([]app.Prediction, error)
	predictWithTimestampsFn func(ctx context.Context, comments []domain.Comment) ([]app.TimedPrediction, error)
	distributionChartFn     func(ctx context.Context, counts map[string]int) ([]byte, error)
	termFrequencyChartFn    func(ctx context.Context, comments []string) ([]byte, error)
	trendFn                 func(ctx context.Context, raw []trend.RawRecord) ([]domain.MonthlyBucket, error)
	trendChartFn            func(ctx context.Context, raw []trend.RawRecord) ([]byte, error)
}

var errNotImplemented = errors.New("not implemented")

func (m *mockAppService) Predict(ctx context.Context, comments []string) ([]app.Prediction, error) {
	if m.predictFn != nil {
		return m.predictFn(ctx, comments)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) PredictWithTimestamps(ctx context.Context, comments []domain.Comment) ([]app.TimedPrediction, error) {
	if m.predictWithTimestampsFn != nil {
		return m.predictWithTimestampsFn(ctx, comments)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) DistributionChart(ctx context.Context, counts map[string]int) ([]byte, error) {
	if m.distributionChartFn != nil {
		return m.distributionChartFn(ctx, counts)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) TermFrequencyChart(ctx context.Context, comments []string) ([]byte, error) {
	if m.termFrequencyChartFn != nil {
		return m.termFrequencyChartFn(ctx, comments)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) Trend(ctx context.Context, raw []trend.RawRecord) ([]domain.MonthlyBucket, error) {
	if m.trendFn != nil {
		return m.trendFn(ctx, raw)
	}
	return nil, errNotImplemented
}

func (m *mockAppService) TrendChart(ctx context.Context, raw []trend.RawRecord) ([]byte, error) {
	if m.trendChartFn != nil {
		return m.trendChartFn(ctx, raw)
	}
	return nil, errNotImplemented
}

// --- Test helpers ---

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}
}

func newTestServer(t *testing.T, app appService, opts ...Option) *Server {
	t.Helper()
	return NewServer(testConfig(), app, opts...)
}

// callHandler runs a handler behind the error middleware, as the router would.
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware()(handler)(c)
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// serve sends a request through the full router, middleware included.
func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

const pngStub = "\x89PNG\r\n\x1a\nstub"
