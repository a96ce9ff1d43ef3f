package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/pscheid92/commentpulse/internal/platform/errors"
)

const contentTypePNG = "image/png"

type distributionRequest struct {
	SentimentCounts map[string]int `json:"sentiment_counts"`
}

func (s *Server) handleDistributionChart(c echo.Context) error {
	var req distributionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.SentimentCounts == nil {
		return apperrors.ValidationError("sentiment_counts is required")
	}

	img, err := s.app.DistributionChart(c.Request().Context(), req.SentimentCounts)
	if err != nil {
		return err
	}
	return writePNG(c, img)
}

func (s *Server) handleTermChart(c echo.Context) error {
	var req predictRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	img, err := s.app.TermFrequencyChart(c.Request().Context(), req.Comments)
	if err != nil {
		return err
	}
	return writePNG(c, img)
}

func (s *Server) handleTrendChart(c echo.Context) error {
	var req trendRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	img, err := s.app.TrendChart(c.Request().Context(), req.SentimentData)
	if err != nil {
		return err
	}
	return writePNG(c, img)
}

func writePNG(c echo.Context, img []byte) error {
	if err := c.Blob(http.StatusOK, contentTypePNG, img); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
