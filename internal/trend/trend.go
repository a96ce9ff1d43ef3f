// Package trend buckets classified comments by calendar month and computes
// the per-month sentiment percentages behind the trend chart.
//
// Buckets are aligned to the first instant of each month in UTC. The series
// is contiguous from the earliest to the latest observed month; months with
// no records are emitted with all percentages at 0.
package trend

import (
	"fmt"
	"strings"
	"time"

	"github.com/pscheid92/commentpulse/internal/domain"
)

// RawRecord is a trend input item as decoded from JSON. Sentiment may be a
// number or a numeric string.
type RawRecord struct {
	Sentiment any    `json:"sentiment"`
	Timestamp string `json:"timestamp"`
}

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006-01",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseTimestamp parses the date formats clients send, converting zoned
// instants to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing timestamp", domain.ErrMalformedInput)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable timestamp %q", domain.ErrMalformedInput, s)
}

// ParseRecords converts raw items into sentiment records. The first invalid
// item fails the whole batch.
func ParseRecords(raw []RawRecord) ([]domain.SentimentRecord, error) {
	records := make([]domain.SentimentRecord, 0, len(raw))
	for i, r := range raw {
		label, err := domain.ParseLabelValue(r.Sentiment)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		ts, err := ParseTimestamp(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, domain.SentimentRecord{Label: label, Timestamp: ts})
	}
	return records, nil
}

// MonthStart truncates t to the first instant of its calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

type labelCounts [3]int

func (c *labelCounts) add(l domain.Label) {
	c[int(l)+1]++
}

func (c labelCounts) total() int {
	return c[0] + c[1] + c[2]
}

// DefaultMaxMonths bounds the series length when no limit is configured.
const DefaultMaxMonths = 1200

// Aggregate buckets records by month. Empty input yields an empty series.
// A record with a label outside {-1, 0, 1}, or records spanning more than
// maxMonths months, fail the aggregation. A non-positive maxMonths means
// DefaultMaxMonths.
func Aggregate(records []domain.SentimentRecord, maxMonths int) ([]domain.MonthlyBucket, error) {
	if len(records) == 0 {
		return []domain.MonthlyBucket{}, nil
	}

	counts := make(map[time.Time]*labelCounts)
	var first, last time.Time
	for i, r := range records {
		if !r.Label.Valid() {
			return nil, fmt.Errorf("%w: record %d has invalid sentiment %d", domain.ErrMalformedInput, i, int(r.Label))
		}
		month := MonthStart(r.Timestamp)
		c, ok := counts[month]
		if !ok {
			c = &labelCounts{}
			counts[month] = c
		}
		c.add(r.Label)

		if i == 0 || month.Before(first) {
			first = month
		}
		if i == 0 || month.After(last) {
			last = month
		}
	}

	if maxMonths <= 0 {
		maxMonths = DefaultMaxMonths
	}
	span := monthsBetween(first, last) + 1
	if span > maxMonths {
		return nil, fmt.Errorf("%w: records span %d months, the limit is %d (%s to %s)",
			domain.ErrMalformedInput, span, maxMonths, first.Format("2006-01"), last.Format("2006-01"))
	}

	buckets := make([]domain.MonthlyBucket, 0, span)
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		var c labelCounts
		if found, ok := counts[month]; ok {
			c = *found
		}
		buckets = append(buckets, newBucket(month, c))
	}
	return buckets, nil
}

func newBucket(month time.Time, c labelCounts) domain.MonthlyBucket {
	total := c.total()
	pct := make(map[domain.Label]float64, len(domain.Labels))
	for _, l := range domain.Labels {
		if total == 0 {
			pct[l] = 0
			continue
		}
		pct[l] = float64(c[int(l)+1]) / float64(total) * 100
	}
	return domain.MonthlyBucket{Month: month, Percentages: pct, Total: total}
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
