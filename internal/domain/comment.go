package domain

import (
	"strings"
	"time"
)

// Comment is a raw comment as received from the client.
type Comment struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NormalizedComment is the token sequence produced from a Comment's text.
type NormalizedComment struct {
	Tokens []string
}

// String joins the tokens with single spaces.
func (n NormalizedComment) String() string {
	return strings.Join(n.Tokens, " ")
}

// SentimentRecord pairs a classified label with the instant it was observed.
type SentimentRecord struct {
	Label     Label
	Timestamp time.Time
}

// MonthlyBucket holds the label percentages for one calendar month.
// Percentages always has an entry for every label; a month without
// records reports 0 for all three.
type MonthlyBucket struct {
	Month       time.Time         `json:"month"`
	Percentages map[Label]float64 `json:"percentages"`
	Total       int               `json:"total"`
}

// Percentage returns the share of label in the bucket, 0 if absent.
func (b MonthlyBucket) Percentage(label Label) float64 {
	return b.Percentages[label]
}
