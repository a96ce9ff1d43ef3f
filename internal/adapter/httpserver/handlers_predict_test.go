package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/commentpulse/internal/app"
	"github.com/pscheid92/commentpulse/internal/domain"
	apperrors "github.com/pscheid92/commentpulse/internal/platform/errors"
	"github.com/pscheid92/commentpulse/internal/trend"
)

func decodeError(t *testing.T, body []byte) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestHandleWelcome(t *testing.T) {
	c, rec := newGetContext("/")

	err := newTestServer(t, &mockAppService{}).handleWelcome(c)

	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Welcome to the commentpulse sentiment API"}`, rec.Body.String())
}

func TestHandlePredict(t *testing.T) {
	var received []string
	svc := &mockAppService{predictFn: func(_ context.Context, comments []string) ([]app.Prediction, error) {
		received = comments
		return []app.Prediction{
			{Comment: comments[0], Sentiment: domain.Positive},
			{Comment: comments[1], Sentiment: domain.Negative},
		}, nil
	}}
	srv := newTestServer(t, svc)
	c, rec := newJSONContext(http.MethodPost, "/predict", `{"comments":["Great video!","awful audio"]}`)

	err := callHandler(srv.handlePredict, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Great video!", "awful audio"}, received)
	assert.JSONEq(t, `[
		{"comment":"Great video!","sentiment":"1"},
		{"comment":"awful audio","sentiment":"-1"}
	]`, rec.Body.String())
}

func TestHandlePredict_EmptyList(t *testing.T) {
	svc := &mockAppService{predictFn: func(context.Context, []string) ([]app.Prediction, error) {
		return []app.Prediction{}, nil
	}}
	c, rec := newJSONContext(http.MethodPost, "/predict", `{"comments":[]}`)

	err := callHandler(newTestServer(t, svc).handlePredict, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandlePredict_MissingComments(t *testing.T) {
	c, rec := newJSONContext(http.MethodPost, "/predict", `{}`)

	err := callHandler(newTestServer(t, &mockAppService{}).handlePredict, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "comments is required", decodeError(t, rec.Body.Bytes()).Error)
}

func TestHandlePredict_InvalidJSON(t *testing.T) {
	c, rec := newJSONContext(http.MethodPost, "/predict", `{"comments":[`)

	err := callHandler(newTestServer(t, &mockAppService{}).handlePredict, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.TypeValidation, decodeError(t, rec.Body.Bytes()).Type)
}

func TestHandlePredict_WrongFieldType(t *testing.T) {
	c, rec := newJSONContext(http.MethodPost, "/predict", `{"comments":"just one"}`)

	err := callHandler(newTestServer(t, &mockAppService{}).handlePredict, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePredict_OracleUnavailable(t *testing.T) {
	svc := &mockAppService{predictFn: func(context.Context, []string) ([]app.Prediction, error) {
		return nil, fmt.Errorf("classify 1 comments: %w", domain.ErrOracleUnavailable)
	}}
	c, rec := newJSONContext(http.MethodPost, "/predict", `{"comments":["hi"]}`)

	err := callHandler(newTestServer(t, svc).handlePredict, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, apperrors.TypeExternal, decodeError(t, rec.Body.Bytes()).Type)
}

func TestHandlePredictWithTimestamps(t *testing.T) {
	var received []domain.Comment
	svc := &mockAppService{predictWithTimestampsFn: func(_ context.Context, comments []domain.Comment) ([]app.TimedPrediction, error) {
		received = comments
		return []app.TimedPrediction{{
			Prediction: app.Prediction{Comment: comments[0].Text, Sentiment: domain.Neutral},
			Timestamp:  comments[0].Timestamp,
		}}, nil
	}}
	c, rec := newJSONContext(http.MethodPost, "/predict_with_timestamps",
		`{"comments":[{"text":"first!","timestamp":"2024-02-03T04:05:06Z"}]}`)

	err := callHandler(newTestServer(t, svc).handlePredictWithTimestamps, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.Comment{{Text: "first!", Timestamp: "2024-02-03T04:05:06Z"}}, received)
	assert.JSONEq(t, `[{"comment":"first!","sentiment":"0","timestamp":"2024-02-03T04:05:06Z"}]`, rec.Body.String())
}

func TestHandlePredictWithTimestamps_MissingComments(t *testing.T) {
	c, rec := newJSONContext(http.MethodPost, "/predict_with_timestamps", `{"items":[]}`)

	err := callHandler(newTestServer(t, &mockAppService{}).handlePredictWithTimestamps, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTrend(t *testing.T) {
	var received []trend.RawRecord
	svc := &mockAppService{trendFn: func(_ context.Context, raw []trend.RawRecord) ([]domain.MonthlyBucket, error) {
		received = raw
		return []domain.MonthlyBucket{{
			Month:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			Percentages: map[domain.Label]float64{domain.Negative: 0, domain.Neutral: 50, domain.Positive: 50},
			Total:       2,
		}}, nil
	}}
	c, rec := newJSONContext(http.MethodPost, "/trend",
		`{"sentiment_data":[{"sentiment":1,"timestamp":"2024-01-02"},{"sentiment":"0","timestamp":"2024-01-09"}]}`)

	err := callHandler(newTestServer(t, svc).handleTrend, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, received, 2)
	assert.Equal(t, 1.0, received[0].Sentiment)
	assert.Equal(t, "0", received[1].Sentiment)
	assert.JSONEq(t, `[{
		"month":"2024-01-01T00:00:00Z",
		"percentages":{"-1":0,"0":50,"1":50},
		"total":2
	}]`, rec.Body.String())
}

func TestHandleTrend_MalformedRecord(t *testing.T) {
	svc := &mockAppService{trendFn: func(context.Context, []trend.RawRecord) ([]domain.MonthlyBucket, error) {
		return nil, fmt.Errorf("%w: unparseable timestamp %q", domain.ErrMalformedInput, "soon")
	}}
	c, rec := newJSONContext(http.MethodPost, "/trend", `{"sentiment_data":[{"sentiment":1,"timestamp":"soon"}]}`)

	err := callHandler(newTestServer(t, svc).handleTrend, c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec.Body.Bytes()).Error, `unparseable timestamp "soon"`)
}
