package chart

import (
	"fmt"

	"github.com/pscheid92/commentpulse/internal/domain"
)

const (
	trendTitle      = "Monthly Sentiment Percentage Over Time"
	trendDateFormat = "2006-01"
	trendMaxTicks   = 12
)

// Trend describes the line chart for monthly buckets. The series follow
// legend order Negative, Neutral, Positive.
func Trend(buckets []domain.MonthlyBucket) (domain.TrendChart, error) {
	if len(buckets) == 0 {
		return domain.TrendChart{}, fmt.Errorf("%w: no sentiment data to plot", domain.ErrMalformedInput)
	}

	series := make([]domain.TrendSeries, 0, len(domain.Labels))
	for _, l := range domain.Labels {
		points := make([]domain.TrendPoint, len(buckets))
		for i, b := range buckets {
			points[i] = domain.TrendPoint{Month: b.Month, Percentage: b.Percentage(l)}
		}
		series = append(series, domain.TrendSeries{
			Label:  l,
			Name:   l.String(),
			Color:  trendColors[l],
			Points: points,
		})
	}

	return domain.TrendChart{
		Size:       trendSize,
		Title:      trendTitle,
		XAxisLabel: "Month",
		YAxisLabel: "Percentage (%)",
		DateFormat: trendDateFormat,
		MaxTicks:   trendMaxTicks,
		Series:     series,
	}, nil
}
