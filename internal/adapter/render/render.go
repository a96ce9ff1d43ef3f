// Package render draws chart descriptions as PNG images with go-chart.
package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pscheid92/commentpulse/internal/domain"
)

// Observer receives render timings.
type Observer interface {
	ObserveRender(kind domain.ChartKind, d time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveRender(domain.ChartKind, time.Duration, error) {}

// Renderer implements domain.ChartRenderer. It holds no state besides the
// observer and is safe for concurrent use.
type Renderer struct {
	observer Observer
}

var _ domain.ChartRenderer = (*Renderer)(nil)

func New(observer Observer) *Renderer {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Renderer{observer: observer}
}

func (r *Renderer) RenderPie(ctx context.Context, pie domain.PieChart) ([]byte, error) {
	return r.render(ctx, domain.ChartKindDistribution, func(buf *bytes.Buffer) error {
		return pieChart(pie).Render(chart.PNG, buf)
	})
}

func (r *Renderer) RenderTrend(ctx context.Context, tc domain.TrendChart) ([]byte, error) {
	return r.render(ctx, domain.ChartKindTrend, func(buf *bytes.Buffer) error {
		graph, err := trendChart(tc)
		if err != nil {
			return err
		}
		return graph.Render(chart.PNG, buf)
	})
}

func (r *Renderer) RenderTerms(ctx context.Context, tc domain.TermChart) ([]byte, error) {
	return r.render(ctx, domain.ChartKindTermFrequency, func(buf *bytes.Buffer) error {
		bars, err := termChart(tc)
		if err != nil {
			return err
		}
		return bars.Render(chart.PNG, buf)
	})
}

func (r *Renderer) render(ctx context.Context, kind domain.ChartKind, draw func(*bytes.Buffer) error) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var buf bytes.Buffer
	err := draw(&buf)
	r.observer.ObserveRender(kind, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", kind, err)
	}
	return buf.Bytes(), nil
}

func pieChart(pie domain.PieChart) chart.PieChart {
	background := chart.Style{FillColor: drawing.ColorWhite}
	if pie.Transparent {
		background = chart.Style{FillColor: drawing.ColorTransparent}
	}

	values := make([]chart.Value, 0, len(pie.Slices))
	for _, s := range pie.Slices {
		// A zero wedge has no area to draw.
		if s.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: float64(s.Count),
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Percentage),
			Style: chart.Style{
				FillColor:   color(s.Color),
				StrokeColor: color(s.Color),
				FontColor:   color(pie.LabelColor),
				FontSize:    14,
			},
		})
	}

	return chart.PieChart{
		Width:      pie.Size.Width,
		Height:     pie.Size.Height,
		Background: background,
		Canvas:     background,
		Values:     values,
	}
}

func trendChart(tc domain.TrendChart) (*chart.Chart, error) {
	if len(tc.Series) == 0 || len(tc.Series[0].Points) == 0 {
		return nil, fmt.Errorf("trend chart has no points")
	}

	months := make([]time.Time, len(tc.Series[0].Points))
	for i, p := range tc.Series[0].Points {
		months[i] = p.Month
	}

	series := make([]chart.Series, 0, len(tc.Series))
	for _, s := range tc.Series {
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = p.Month
			ys[i] = p.Percentage
		}
		series = append(series, chart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color(s.Color),
				StrokeWidth: 2,
				DotColor:    color(s.Color),
				DotWidth:    4,
			},
		})
	}

	// go-chart takes the x range from the outermost ticks, so unlabeled
	// ticks half a month outside the data keep a single month plottable.
	first, last := months[0], months[len(months)-1]
	lo := chart.TimeToFloat64(first.AddDate(0, 0, -15))
	hi := chart.TimeToFloat64(last.AddDate(0, 0, 15))
	ticks := append([]chart.Tick{{Value: lo}}, monthTicks(months, tc.MaxTicks, tc.DateFormat)...)
	ticks = append(ticks, chart.Tick{Value: hi})

	graph := &chart.Chart{
		Title:  tc.Title,
		Width:  tc.Size.Width,
		Height: tc.Size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           tc.XAxisLabel,
			ValueFormatter: chart.TimeValueFormatterWithFormat(tc.DateFormat),
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks:          ticks,
		},
		YAxis: chart.YAxis{
			Name:  tc.YAxisLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph, nil
}

// monthTicks places at most maxTicks evenly strided labels, always
// including the first month.
func monthTicks(months []time.Time, maxTicks int, layout string) []chart.Tick {
	if maxTicks <= 0 {
		maxTicks = len(months)
	}
	stride := int(math.Ceil(float64(len(months)) / float64(maxTicks)))

	ticks := make([]chart.Tick, 0, maxTicks)
	for i := 0; i < len(months); i += stride {
		ticks = append(ticks, chart.Tick{
			Value: chart.TimeToFloat64(months[i]),
			Label: months[i].Format(layout),
		})
	}
	return ticks
}

func termChart(tc domain.TermChart) (*chart.BarChart, error) {
	if len(tc.Terms) == 0 {
		return nil, fmt.Errorf("term chart has no terms")
	}

	textColor := drawing.ColorWhite
	background := chart.Style{FillColor: color(tc.Background)}

	maxCount := 0
	bars := make([]chart.Value, len(tc.Terms))
	for i, term := range tc.Terms {
		fill := drawing.ColorFromHex("4292C6")
		if len(tc.Palette) > 0 {
			fill = color(tc.Palette[len(tc.Palette)-1-i%len(tc.Palette)])
		}
		bars[i] = chart.Value{
			Value: float64(term.Count),
			Label: term.Word,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
		maxCount = max(maxCount, term.Count)
	}

	// Leave room for the y axis and split the rest 2:1 between bar and gap.
	slot := (tc.Size.Width - 120) / len(bars)
	barWidth := max(slot*2/3, 1)

	return &chart.BarChart{
		Width:      tc.Size.Width,
		Height:     tc.Size.Height,
		Background: background,
		Canvas:     background,
		BarWidth:   barWidth,
		BarSpacing: max(slot-barWidth, 1),
		XAxis: chart.Style{
			FontColor:           textColor,
			StrokeColor:         textColor,
			FontSize:            9,
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: textColor, StrokeColor: textColor},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) * 1.1},
		},
		Bars: bars,
	}, nil
}

// color parses "#RRGGBB"; an empty string is transparent.
func color(hex string) drawing.Color {
	if hex == "" {
		return drawing.ColorTransparent
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
