package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/commentpulse/internal/domain"
	apperrors "github.com/pscheid92/commentpulse/internal/platform/errors"
	"github.com/pscheid92/commentpulse/internal/trend"
)

type predictRequest struct {
	Comments []string `json:"comments"`
}

type timedPredictRequest struct {
	Comments []domain.Comment `json:"comments"`
}

type trendRequest struct {
	SentimentData []trend.RawRecord `json:"sentiment_data"`
}

func (s *Server) handleWelcome(c echo.Context) error {
	if err := c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the commentpulse sentiment API"}); err != nil {
		return fmt.Errorf("failed to write welcome response: %w", err)
	}
	return nil
}

func (s *Server) handlePredict(c echo.Context) error {
	var req predictRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Comments == nil {
		return apperrors.ValidationError("comments is required")
	}

	predictions, err := s.app.Predict(c.Request().Context(), req.Comments)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, predictions); err != nil {
		return fmt.Errorf("failed to write predictions: %w", err)
	}
	return nil
}

func (s *Server) handlePredictWithTimestamps(c echo.Context) error {
	var req timedPredictRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Comments == nil {
		return apperrors.ValidationError("comments is required")
	}

	predictions, err := s.app.PredictWithTimestamps(c.Request().Context(), req.Comments)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, predictions); err != nil {
		return fmt.Errorf("failed to write predictions: %w", err)
	}
	return nil
}

func (s *Server) handleTrend(c echo.Context) error {
	var req trendRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.SentimentData == nil {
		return apperrors.ValidationError("sentiment_data is required")
	}

	buckets, err := s.app.Trend(c.Request().Context(), req.SentimentData)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, buckets); err != nil {
		return fmt.Errorf("failed to write trend: %w", err)
	}
	return nil
}

// bindJSON decodes the request body, reporting undecodable input as a validation error.
func bindJSON(c echo.Context, v any) error {
	err := c.Bind(v)
	if err == nil {
		return nil
	}
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		return WrapHTTPError(httpErr)
	}
	return apperrors.ValidationError("invalid request body").WithField("detail", err.Error())
}
