package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pscheid92/commentpulse/internal/domain"
)

const predictionKeyPrefix = "prediction:"

// PredictionStore caches oracle labels keyed by the SHA-256 of the
// normalized comment text.
type PredictionStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewPredictionStore(rdb *goredis.Client, ttl time.Duration) *PredictionStore {
	return &PredictionStore{rdb: rdb, ttl: ttl}
}

// Lookup returns one label per input and whether it was found. Entries that
// cannot be decoded are reported as misses.
func (s *PredictionStore) Lookup(ctx context.Context, normalized []string) ([]domain.Label, []bool, error) {
	labels := make([]domain.Label, len(normalized))
	found := make([]bool, len(normalized))
	if len(normalized) == 0 {
		return labels, found, nil
	}

	keys := make([]string, len(normalized))
	for i, text := range normalized {
		keys[i] = predictionKey(text)
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read predictions: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		label, err := domain.ParseLabelKey(raw)
		if err != nil {
			slog.DebugContext(ctx, "Ignoring undecodable cached prediction", "key", keys[i], "value", raw)
			continue
		}
		labels[i] = label
		found[i] = true
	}
	return labels, found, nil
}

// Store writes every (text, label) pair with the store's TTL in one pipeline.
func (s *PredictionStore) Store(ctx context.Context, normalized []string, labels []domain.Label) error {
	if len(normalized) != len(labels) {
		return fmt.Errorf("store predictions: %d texts but %d labels", len(normalized), len(labels))
	}
	if len(normalized) == 0 {
		return nil
	}

	pipe := s.rdb.Pipeline()
	for i, text := range normalized {
		pipe.Set(ctx, predictionKey(text), labels[i].Key(), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store predictions: %w", err)
	}
	return nil
}

func predictionKey(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return predictionKeyPrefix + hex.EncodeToString(sum[:])
}
