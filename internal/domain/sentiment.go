package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Label is the sentiment class assigned to a comment.
type Label int

const (
	Negative Label = -1
	Neutral  Label = 0
	Positive Label = 1
)

// Labels lists every label in legend order.
var Labels = [...]Label{Negative, Neutral, Positive}

// Valid reports whether l is one of the three known labels.
func (l Label) Valid() bool {
	return l == Negative || l == Neutral || l == Positive
}

// Key returns the string encoding used on the wire and in count maps: "-1", "0" or "1".
func (l Label) Key() string {
	return strconv.Itoa(int(l))
}

func (l Label) String() string {
	switch l {
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	case Positive:
		return "Positive"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// MarshalText encodes the label as its key so that maps keyed by Label
// serialize as {"-1": ..., "0": ..., "1": ...}.
func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: invalid sentiment label %d", ErrMalformedInput, int(l))
	}
	return []byte(l.Key()), nil
}

func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabelKey(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLabelKey decodes the string encoding produced by Key.
// Surrounding whitespace is tolerated; anything else is rejected.
func ParseLabelKey(key string) (Label, error) {
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid sentiment %q", ErrMalformedInput, key)
	}
	l := Label(n)
	if !l.Valid() {
		return 0, fmt.Errorf("%w: invalid sentiment %q", ErrMalformedInput, key)
	}
	return l, nil
}

// ParseLabelValue coerces a decoded JSON value into a Label. Integral numbers
// (1, 1.0) and numeric strings ("1", " -1 ") are accepted.
func ParseLabelValue(v any) (Label, error) {
	switch val := v.(type) {
	case float64:
		return labelFromFloat(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: invalid sentiment %q", ErrMalformedInput, val.String())
		}
		return labelFromFloat(f)
	case int:
		return labelFromFloat(float64(val))
	case string:
		if l, err := ParseLabelKey(val); err == nil {
			return l, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid sentiment %q", ErrMalformedInput, val)
		}
		return labelFromFloat(f)
	case nil:
		return 0, fmt.Errorf("%w: missing sentiment", ErrMalformedInput)
	default:
		return 0, fmt.Errorf("%w: invalid sentiment %v", ErrMalformedInput, v)
	}
}

func labelFromFloat(f float64) (Label, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: invalid sentiment %v", ErrMalformedInput, f)
	}
	l := Label(int(f))
	if !l.Valid() {
		return 0, fmt.Errorf("%w: invalid sentiment %v", ErrMalformedInput, f)
	}
	return l, nil
}

// ClassificationOracle labels a batch of normalized comments.
// Implementations must return exactly one label per input, in input order.
type ClassificationOracle interface {
	Classify(ctx context.Context, normalized []string) ([]Label, error)
}
