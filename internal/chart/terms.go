package chart

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pscheid92/commentpulse/internal/domain"
	"github.com/pscheid92/commentpulse/internal/normalize"
)

// DefaultTopTerms is the number of terms shown when the caller passes 0.
const DefaultTopTerms = 20

var termPalette = []string{"#08306B", "#08519C", "#2171B5", "#4292C6", "#6BAED6", "#9ECAE1", "#C6DBEF"}

// CountTerms counts every word of the space-joined normalized texts on its
// own (no phrase detection). Surrounding punctuation is trimmed and the full
// stop-word list is applied again, negations included.
func CountTerms(normalized []string) map[string]int {
	counts := make(map[string]int)
	for _, word := range strings.Fields(strings.Join(normalized, " ")) {
		word = strings.Trim(word, "!?.,")
		if word == "" || normalize.IsStopword(word) {
			continue
		}
		counts[word]++
	}
	return counts
}

// TermFrequency describes the term-frequency chart for the top N terms,
// ordered by count descending then alphabetically.
func TermFrequency(normalized []string, topN int) (domain.TermChart, error) {
	if topN <= 0 {
		topN = DefaultTopTerms
	}

	counts := CountTerms(normalized)
	if len(counts) == 0 {
		return domain.TermChart{}, fmt.Errorf("%w: no words to plot", domain.ErrMalformedInput)
	}

	terms := make([]domain.Term, 0, len(counts))
	for w, n := range counts {
		terms = append(terms, domain.Term{Word: w, Count: n})
	}
	slices.SortFunc(terms, func(a, b domain.Term) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if len(terms) > topN {
		terms = terms[:topN]
	}

	return domain.TermChart{
		Size:       termSize,
		Background: "#000000",
		Palette:    termPalette,
		Terms:      terms,
	}, nil
}
