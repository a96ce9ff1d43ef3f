package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pscheid92/commentpulse/internal/domain"
)

const (
	breakerComponent = "oracle"
	maxResponseBytes = 8 << 20
)

// BreakerObserver is notified of circuit breaker transitions.
// state is "closed", "half-open" or "open".
type BreakerObserver interface {
	BreakerStateChanged(component, state string)
}

type classifyRequest struct {
	Inputs []string `json:"inputs"`
}

type classifyResponse struct {
	Labels []any `json:"labels"`
}

// errClientSide marks failures caused by the request itself; they do not
// count against the breaker.
var errClientSide = errors.New("client side failure")

// Remote classifies comments by POSTing them to a model server.
//
// Request:  {"inputs": ["normalized text", ...]}
// Response: {"labels": [1, 0, -1, ...]}
//
// Labels may be JSON numbers or numeric strings. Calls are not retried.
type Remote struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

var _ domain.ClassificationOracle = (*Remote)(nil)

type RemoteOption func(*remoteSettings)

type remoteSettings struct {
	client   *http.Client
	observer BreakerObserver
	cooldown time.Duration
}

// WithHTTPClient replaces the default client. Its Timeout bounds each call.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(s *remoteSettings) { s.client = c }
}

func WithBreakerObserver(o BreakerObserver) RemoteOption {
	return func(s *remoteSettings) { s.observer = o }
}

// WithCooldown sets how long the breaker stays open before probing again.
func WithCooldown(d time.Duration) RemoteOption {
	return func(s *remoteSettings) { s.cooldown = d }
}

// NewRemote creates a Remote oracle posting to url with the given timeout.
func NewRemote(url string, timeout time.Duration, opts ...RemoteOption) *Remote {
	s := remoteSettings{
		client:   &http.Client{Timeout: timeout},
		cooldown: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&s)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerComponent,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     s.cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errClientSide) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				"component", name,
				"from", from.String(),
				"to", to.String(),
			)
			if s.observer != nil {
				s.observer.BreakerStateChanged(name, to.String())
			}
		},
	})

	return &Remote{url: url, client: s.client, breaker: breaker}
}

// Classify implements domain.ClassificationOracle.
func (r *Remote) Classify(ctx context.Context, normalized []string) ([]domain.Label, error) {
	if len(normalized) == 0 {
		return []domain.Label{}, nil
	}

	result, err := r.breaker.Execute(func() (any, error) {
		return r.call(ctx, normalized)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", domain.ErrOracleUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	raw := result.([]any)

	if len(raw) != len(normalized) {
		return nil, fmt.Errorf("%w: got %d labels for %d comments", domain.ErrOracleContract, len(raw), len(normalized))
	}
	labels := make([]domain.Label, len(raw))
	for i, v := range raw {
		l, err := domain.ParseLabelValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: label %d: %w", domain.ErrOracleContract, i, err)
		}
		labels[i] = l
	}
	return labels, nil
}

func (r *Remote) call(ctx context.Context, normalized []string) ([]any, error) {
	body, err := json.Marshal(classifyRequest{Inputs: normalized})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %w", errClientSide, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %w", errClientSide, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOracleUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status %d: %s", domain.ErrOracleUnavailable, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	dec.UseNumber()
	var out classifyResponse
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: undecodable response: %w", domain.ErrOracleContract, err)
	}
	if out.Labels == nil {
		return nil, fmt.Errorf("%w: response has no labels field", domain.ErrOracleContract)
	}
	return out.Labels, nil
}
