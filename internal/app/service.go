package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pscheid92/commentpulse/internal/chart"
	"github.com/pscheid92/commentpulse/internal/domain"
	"github.com/pscheid92/commentpulse/internal/trend"
)

const defaultMaxComments = 5000

// Normalizer turns raw comment texts into classification-ready strings, one per input.
type Normalizer interface {
	NormalizeAll(texts []string) []string
}

// ClassificationObserver receives the outcome of every oracle call.
type ClassificationObserver interface {
	ObserveClassification(d time.Duration, labels []domain.Label, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveClassification(time.Duration, []domain.Label, error) {}

// Prediction is one classified comment, carrying the original text.
type Prediction struct {
	Comment   string       `json:"comment"`
	Sentiment domain.Label `json:"sentiment"`
}

// TimedPrediction is a Prediction with the client's timestamp echoed back verbatim.
type TimedPrediction struct {
	Prediction
	Timestamp string `json:"timestamp"`
}

// Service is the application layer. It is stateless between requests and
// safe for concurrent use as long as its collaborators are.
type Service struct {
	normalizer  Normalizer
	oracle      domain.ClassificationOracle
	renderer    domain.ChartRenderer
	observer    ClassificationObserver
	clock       clockwork.Clock
	maxComments int
	maxMonths   int
	topTerms    int
}

type Option func(*Service)

func WithObserver(o ClassificationObserver) Option {
	return func(s *Service) { s.observer = o }
}

// WithMaxComments caps the number of comments accepted per request.
func WithMaxComments(n int) Option {
	return func(s *Service) { s.maxComments = n }
}

// WithMaxTrendMonths caps how many months a trend series may span.
func WithMaxTrendMonths(n int) Option {
	return func(s *Service) { s.maxMonths = n }
}

// WithTopTerms sets how many terms the term-frequency chart shows.
func WithTopTerms(n int) Option {
	return func(s *Service) { s.topTerms = n }
}

// NewService creates the application layer service.
func NewService(normalizer Normalizer, oracle domain.ClassificationOracle, renderer domain.ChartRenderer, clock clockwork.Clock, opts ...Option) *Service {
	s := &Service{
		normalizer:  normalizer,
		oracle:      oracle,
		renderer:    renderer,
		observer:    noopObserver{},
		clock:       clock,
		maxComments: defaultMaxComments,
		maxMonths:   trend.DefaultMaxMonths,
		topTerms:    chart.DefaultTopTerms,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict classifies each comment. The result pairs every label with the
// original, unnormalized text, in input order.
func (s *Service) Predict(ctx context.Context, comments []string) ([]Prediction, error) {
	labels, err := s.classify(ctx, comments)
	if err != nil {
		return nil, err
	}

	out := make([]Prediction, len(comments))
	for i, c := range comments {
		out[i] = Prediction{Comment: c, Sentiment: labels[i]}
	}
	return out, nil
}

// PredictWithTimestamps classifies each comment text and echoes its
// timestamp unparsed.
func (s *Service) PredictWithTimestamps(ctx context.Context, comments []domain.Comment) ([]TimedPrediction, error) {
	texts := make([]string, len(comments))
	for i, c := range comments {
		texts[i] = c.Text
	}

	labels, err := s.classify(ctx, texts)
	if err != nil {
		return nil, err
	}

	out := make([]TimedPrediction, len(comments))
	for i, c := range comments {
		out[i] = TimedPrediction{
			Prediction: Prediction{Comment: c.Text, Sentiment: labels[i]},
			Timestamp:  c.Timestamp,
		}
	}
	return out, nil
}

// DistributionChart renders the pie chart for counts keyed "1", "0", "-1".
func (s *Service) DistributionChart(ctx context.Context, counts map[string]int) ([]byte, error) {
	pie, err := chart.Distribution(counts)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderPie(ctx, pie)
}

// TermFrequencyChart normalizes comments and renders their most frequent words.
func (s *Service) TermFrequencyChart(ctx context.Context, comments []string) ([]byte, error) {
	if err := s.checkBatch(len(comments)); err != nil {
		return nil, err
	}

	tc, err := chart.TermFrequency(s.normalizer.NormalizeAll(comments), s.topTerms)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderTerms(ctx, tc)
}

// Trend aggregates already-classified records into monthly buckets.
// Empty input yields an empty, non-nil slice.
func (s *Service) Trend(ctx context.Context, raw []trend.RawRecord) ([]domain.MonthlyBucket, error) {
	if err := s.checkBatch(len(raw)); err != nil {
		return nil, err
	}

	records, err := trend.ParseRecords(raw)
	if err != nil {
		return nil, err
	}
	buckets, err := trend.Aggregate(records, s.maxMonths)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Aggregated sentiment trend", "records", len(records), "months", len(buckets))
	return buckets, nil
}

// TrendChart renders the monthly trend of already-classified records.
func (s *Service) TrendChart(ctx context.Context, raw []trend.RawRecord) ([]byte, error) {
	buckets, err := s.Trend(ctx, raw)
	if err != nil {
		return nil, err
	}

	tc, err := chart.Trend(buckets)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderTrend(ctx, tc)
}

// classify normalizes texts and asks the oracle for one label each.
// Anything other than exactly len(texts) labels aborts the request.
func (s *Service) classify(ctx context.Context, texts []string) ([]domain.Label, error) {
	if err := s.checkBatch(len(texts)); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return []domain.Label{}, nil
	}

	normalized := s.normalizer.NormalizeAll(texts)

	start := s.clock.Now()
	labels, err := s.oracle.Classify(ctx, normalized)
	if err == nil && len(labels) != len(texts) {
		err = fmt.Errorf("%w: got %d labels for %d comments", domain.ErrOracleContract, len(labels), len(texts))
	}
	s.observer.ObserveClassification(s.clock.Since(start), labels, err)
	if err != nil {
		return nil, fmt.Errorf("classify %d comments: %w", len(texts), err)
	}

	return labels, nil
}

func (s *Service) checkBatch(n int) error {
	if n > s.maxComments {
		return fmt.Errorf("%w: %d comments exceed the limit of %d", domain.ErrMalformedInput, n, s.maxComments)
	}
	return nil
}
