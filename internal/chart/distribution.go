package chart

import (
	"fmt"

	"github.com/pscheid92/commentpulse/internal/domain"
)

// Distribution describes the pie chart for label counts keyed by "1", "0"
// and "-1". Missing keys count as 0; unknown keys are rejected so that a
// mismatched encoding cannot silently produce an empty slice.
func Distribution(counts map[string]int) (domain.PieChart, error) {
	byLabel := make(map[domain.Label]int, len(domain.Labels))
	for key, n := range counts {
		label, err := domain.ParseLabelKey(key)
		if err != nil {
			return domain.PieChart{}, err
		}
		if n < 0 {
			return domain.PieChart{}, fmt.Errorf("%w: negative count %d for sentiment %q", domain.ErrMalformedInput, n, key)
		}
		byLabel[label] += n
	}

	total := 0
	for _, n := range byLabel {
		total += n
	}
	if total == 0 {
		return domain.PieChart{}, fmt.Errorf("%w: sentiment counts sum to zero", domain.ErrMalformedInput)
	}

	slices := make([]domain.PieSlice, 0, len(pieOrder))
	for _, p := range pieOrder {
		n := byLabel[p.label]
		slices = append(slices, domain.PieSlice{
			Label:      p.label.String(),
			Count:      n,
			Percentage: float64(n) / float64(total) * 100,
			Color:      p.color,
		})
	}

	return domain.PieChart{
		Size:        distributionSize,
		Slices:      slices,
		LabelColor:  "#FFFFFF",
		Transparent: true,
	}, nil
}
