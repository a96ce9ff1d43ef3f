// Package chart builds renderer-agnostic descriptions of the three analytics
// views: the sentiment distribution pie, the monthly trend and the term
// frequency chart.
package chart

import (
	"github.com/pscheid92/commentpulse/internal/domain"
)

// Semantic colors shared by all views.
const (
	ColorPositive = "#36A2EB"
	ColorNeutral  = "#C9CBCF"
	ColorNegative = "#FF6384"

	ColorTrendNegative = "#FF0000"
	ColorTrendNeutral  = "#808080"
	ColorTrendPositive = "#008000"
)

var (
	distributionSize = domain.Size{Width: 600, Height: 600}
	trendSize        = domain.Size{Width: 1200, Height: 600}
	termSize         = domain.Size{Width: 800, Height: 400}
)

// pieOrder is the slice order of the distribution chart.
var pieOrder = []struct {
	label domain.Label
	color string
}{
	{domain.Positive, ColorPositive},
	{domain.Neutral, ColorNeutral},
	{domain.Negative, ColorNegative},
}

var trendColors = map[domain.Label]string{
	domain.Negative: ColorTrendNegative,
	domain.Neutral:  ColorTrendNeutral,
	domain.Positive: ColorTrendPositive,
}
