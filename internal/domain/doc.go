// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (errors.go, sentiment.go, comment.go, chart.go, etc.)
// with shared types and the contracts of the external collaborators (classification oracle, chart renderer).
// No implementation code beyond value helpers. Prevents circular imports by keeping interfaces on the consumer side.
package domain
