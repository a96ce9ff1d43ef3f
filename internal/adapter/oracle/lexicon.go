// Package oracle provides the classification oracles: a built-in lexicon
// scorer, a client for a remote model server, and a Redis-cached decorator.
package oracle

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/pscheid92/commentpulse/internal/domain"
	"github.com/pscheid92/commentpulse/internal/normalize"
)

//go:embed lexicon.txt
var lexiconRaw string

const (
	// negationWindow is how many tokens after a negator it can still flip.
	negationWindow = 3
	// contrastDiscount scales the weight of everything before but/however/yet.
	contrastDiscount = 0.5
	// neutralBand is the half-width of the score range labelled Neutral.
	neutralBand = 0.05
)

var contrasts = map[string]struct{}{
	"but": {}, "however": {}, "yet": {},
}

// Lexicon labels normalized comments by averaging the polarity of the words
// it knows. A negator flips the next scored word within a short window;
// a contrast word discounts everything said before it.
// Lexicon is read-only after construction and safe for concurrent use.
type Lexicon struct {
	scores map[string]float64
}

var _ domain.ClassificationOracle = (*Lexicon)(nil)

// NewLexicon builds a Lexicon from the embedded English polarity list.
func NewLexicon() (*Lexicon, error) {
	return ParseLexicon(lexiconRaw)
}

// ParseLexicon parses tab-separated "lemma\tscore" lines. Blank lines and
// lines starting with '#' are skipped.
func ParseLexicon(raw string) (*Lexicon, error) {
	scores := make(map[string]float64, 256)
	for n, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		word, value, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("lexicon line %d: missing tab separator", n+1)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", n+1, err)
		}
		if score < -1 || score > 1 {
			return nil, fmt.Errorf("lexicon line %d: score %v out of range [-1, 1]", n+1, score)
		}
		scores[strings.TrimSpace(word)] = score
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	return &Lexicon{scores: scores}, nil
}

// Classify implements domain.ClassificationOracle. It never fails.
func (l *Lexicon) Classify(ctx context.Context, normalized []string) ([]domain.Label, error) {
	labels := make([]domain.Label, len(normalized))
	for i, text := range normalized {
		labels[i] = l.label(l.Score(text))
	}
	return labels, nil
}

// Score returns the weighted average polarity of text in [-1, 1], or 0 when
// no word is known.
func (l *Lexicon) Score(text string) float64 {
	var (
		sum, weight float64
		negateFor   int
	)

	for _, raw := range strings.Fields(text) {
		token := strings.Trim(raw, "!?.,")
		if token == "" {
			continue
		}

		if _, ok := contrasts[token]; ok {
			sum *= contrastDiscount
			weight *= contrastDiscount
			negateFor = 0
			continue
		}
		if normalize.IsNegation(token) {
			negateFor = negationWindow
			continue
		}

		score, known := l.scores[token]
		if known {
			if negateFor > 0 {
				score = -score
				negateFor = 0
			}
			sum += score
			weight++
		} else if negateFor > 0 {
			negateFor--
		}

		// Sentence punctuation ends a negation scope.
		if strings.ContainsAny(raw, "!?.") {
			negateFor = 0
		}
	}

	if weight == 0 {
		return 0
	}
	return sum / weight
}

func (l *Lexicon) label(score float64) domain.Label {
	switch {
	case score > neutralBand:
		return domain.Positive
	case score < -neutralBand:
		return domain.Negative
	default:
		return domain.Neutral
	}
}
