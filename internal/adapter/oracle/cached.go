package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/pscheid92/commentpulse/internal/domain"
)

// PredictionCache stores labels by normalized text.
type PredictionCache interface {
	Lookup(ctx context.Context, normalized []string) ([]domain.Label, []bool, error)
	Store(ctx context.Context, normalized []string, labels []domain.Label) error
}

// CacheObserver receives prediction cache outcomes.
type CacheObserver interface {
	CacheHits(n int)
	CacheMisses(n int)
	CacheError(op string)
}

type noopCacheObserver struct{}

func (noopCacheObserver) CacheHits(int)     {}
func (noopCacheObserver) CacheMisses(int)   {}
func (noopCacheObserver) CacheError(string) {}

// Cached serves labels from a PredictionCache and forwards only the misses,
// in their original relative order, to the inner oracle. Identical miss
// batches in flight at the same time share one inner call.
//
// A failing cache never fails a request: a lookup error sends the whole
// batch to the inner oracle, a store error is logged and dropped.
type Cached struct {
	inner    domain.ClassificationOracle
	cache    PredictionCache
	observer CacheObserver
	group    singleflight.Group
}

var _ domain.ClassificationOracle = (*Cached)(nil)

func NewCached(inner domain.ClassificationOracle, cache PredictionCache, observer CacheObserver) *Cached {
	if observer == nil {
		observer = noopCacheObserver{}
	}
	return &Cached{inner: inner, cache: cache, observer: observer}
}

// Classify implements domain.ClassificationOracle.
func (c *Cached) Classify(ctx context.Context, normalized []string) ([]domain.Label, error) {
	if len(normalized) == 0 {
		return []domain.Label{}, nil
	}

	labels, found, err := c.cache.Lookup(ctx, normalized)
	if err != nil {
		slog.WarnContext(ctx, "Prediction cache lookup failed, classifying whole batch", "error", err)
		c.observer.CacheError("lookup")
		c.observer.CacheMisses(len(normalized))
		return c.inner.Classify(ctx, normalized)
	}

	var (
		missTexts   []string
		missIndices []int
	)
	for i, ok := range found {
		if !ok {
			missTexts = append(missTexts, normalized[i])
			missIndices = append(missIndices, i)
		}
	}
	c.observer.CacheHits(len(normalized) - len(missTexts))
	c.observer.CacheMisses(len(missTexts))

	if len(missTexts) == 0 {
		return labels, nil
	}

	fresh, err := c.classifyMisses(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("%w: got %d labels for %d comments", domain.ErrOracleContract, len(fresh), len(missTexts))
	}

	for j, i := range missIndices {
		labels[i] = fresh[j]
	}

	if err := c.cache.Store(ctx, missTexts, fresh); err != nil {
		slog.WarnContext(ctx, "Failed to store predictions", "error", err, "count", len(missTexts))
		c.observer.CacheError("store")
	}

	return labels, nil
}

// classifyMisses shares one inner call between identical concurrent batches.
// The flight runs detached from any single caller's cancellation; each caller
// stops waiting when its own ctx is done.
func (c *Cached) classifyMisses(ctx context.Context, texts []string) ([]domain.Label, error) {
	key := strings.Join(texts, "\x00")
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.inner.Classify(flightCtx, texts)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// The slice is shared between callers of one flight; copy before handing it out.
		shared := res.Val.([]domain.Label)
		return append([]domain.Label(nil), shared...), nil
	}
}
