package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthOK(_ context.Context) error { return nil }

func healthErr(msg string) func(context.Context) error {
	return func(_ context.Context) error { return errors.New(msg) }
}

func newGetContext(path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestHandleStartup(t *testing.T) {
	c, rec := newGetContext("/health/startup")

	srv := newTestServer(t, &mockAppService{},
		WithHealthChecks(HealthCheck{Name: "redis", Check: healthOK}),
	)

	err := srv.handleStartup(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleStartup_NoChecks(t *testing.T) {
	c, rec := newGetContext("/health/startup")

	err := newTestServer(t, &mockAppService{}).handleStartup(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleLiveness_ReportsUptime(t *testing.T) {
	c, rec := newGetContext("/health/live")
	clock := clockwork.NewFakeClock()

	srv := newTestServer(t, &mockAppService{}, WithClock(clock))
	clock.Advance(90 * time.Second)

	err := srv.handleLiveness(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string  `json:"status"`
		Uptime float64 `json:"uptime"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.InDelta(t, 90.0, body.Uptime, 1e-9)
}

func TestHandleReadiness_AllHealthy(t *testing.T) {
	c, rec := newGetContext("/health/ready")

	srv := newTestServer(t, &mockAppService{},
		WithHealthChecks(HealthCheck{Name: "redis", Check: healthOK}),
	)

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_RedisDown(t *testing.T) {
	c, rec := newGetContext("/health/ready")

	srv := newTestServer(t, &mockAppService{},
		WithHealthChecks(
			HealthCheck{Name: "redis", Check: healthErr("connection refused")},
			HealthCheck{Name: "never_reached", Check: healthOK},
		),
	)

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, rec.Body.String(), `"failed_check":"redis"`)
	assert.Contains(t, rec.Body.String(), `"error":"connection refused"`)
}

func TestHandleReadiness_ReportsFirstFailure(t *testing.T) {
	c, rec := newGetContext("/health/ready")

	srv := newTestServer(t, &mockAppService{},
		WithHealthChecks(
			HealthCheck{Name: "redis", Check: healthOK},
			HealthCheck{Name: "oracle", Check: healthErr("circuit breaker open")},
		),
	)

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"failed_check":"oracle"`)
}

func TestHandleReadiness_OptionalCheckDegrades(t *testing.T) {
	c, rec := newGetContext("/health/ready")

	srv := newTestServer(t, &mockAppService{},
		WithHealthChecks(
			HealthCheck{Name: "redis", Check: healthErr("connection refused"), Optional: true},
			HealthCheck{Name: "oracle", Check: healthOK},
		),
	)

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","degraded":{"redis":"connection refused"}}`, rec.Body.String())
}

func TestHandleReadiness_RequiredFailureWinsOverOptional(t *testing.T) {
	c, rec := newGetContext("/health/ready")

	srv := newTestServer(t, &mockAppService{},
		WithHealthChecks(
			HealthCheck{Name: "redis", Check: healthErr("connection refused"), Optional: true},
			HealthCheck{Name: "oracle", Check: healthErr("circuit breaker open")},
		),
	)

	err := srv.handleReadiness(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"failed_check":"oracle"`)
}

func TestHandleVersion(t *testing.T) {
	c, rec := newGetContext("/version")

	err := newTestServer(t, &mockAppService{}).handleVersion(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"service":"commentpulse"`)
	assert.Contains(t, body, `"version"`)
	assert.Contains(t, body, `"commit"`)
	assert.Contains(t, body, `"build_time"`)
	assert.Contains(t, body, `"go_version"`)
}
