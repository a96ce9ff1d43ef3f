package domain

import (
	"context"
	"time"
)

// ChartKind identifies a visualization for metrics and logging.
type ChartKind string

const (
	ChartKindDistribution  ChartKind = "distribution"
	ChartKindTermFrequency ChartKind = "term_frequency"
	ChartKindTrend         ChartKind = "trend"
)

// Size is an image size in pixels.
type Size struct {
	Width  int
	Height int
}

// PieSlice is one labeled wedge of a distribution chart.
type PieSlice struct {
	Label      string
	Count      int
	Percentage float64
	Color      string // hex, e.g. "#36A2EB"
}

// PieChart describes the sentiment distribution chart.
type PieChart struct {
	Size        Size
	Slices      []PieSlice
	LabelColor  string
	Transparent bool
}

// TrendSeries is one label's percentage line over time.
type TrendSeries struct {
	Label  Label
	Name   string
	Color  string
	Points []TrendPoint
}

// TrendPoint is a single (month, percentage) sample.
type TrendPoint struct {
	Month      time.Time
	Percentage float64
}

// TrendChart describes the monthly sentiment trend chart.
type TrendChart struct {
	Size       Size
	Title      string
	XAxisLabel string
	YAxisLabel string
	DateFormat string // Go time layout for x-axis ticks
	MaxTicks   int
	Series     []TrendSeries
}

// Term is a word and the number of times it occurred.
type Term struct {
	Word  string
	Count int
}

// TermChart describes the term-frequency visualization.
type TermChart struct {
	Size       Size
	Background string
	Palette    []string
	Terms      []Term
}

// ChartRenderer turns chart descriptions into PNG bytes.
type ChartRenderer interface {
	RenderPie(ctx context.Context, chart PieChart) ([]byte, error)
	RenderTrend(ctx context.Context, chart TrendChart) ([]byte, error)
	RenderTerms(ctx context.Context, chart TermChart) ([]byte, error)
}
