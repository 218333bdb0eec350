package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"market_backend/internal/platform/metrics"
)

// Strategy is one named way of producing a value for key K.
type Strategy[K, T any] struct {
	Name  string
	Fetch func(ctx context.Context, key K) (T, error)
}

// Fallback is the infallible last step of a chain.
type Fallback[K, T any] struct {
	Name    string
	Produce func(ctx context.Context, key K) T
}

// Attempt records the outcome of a single strategy.
type Attempt struct {
	Source string
	Err    error
}

// Outcome is the value a chain settled on plus the attempts that led there.
type Outcome[T any] struct {
	Value    T
	Source   string
	Attempts []Attempt
}

// Chain tries its live strategies in order and accepts the first well-formed result.
// Strategy errors never escape Resolve; they are logged and counted.
type Chain[K, T any] struct {
	kind     string
	valid    func(T) bool
	live     []Strategy[K, T]
	fallback Fallback[K, T]
}

// NewChain builds a chain. Strategies with a nil Fetch are dropped so callers can
// pass optional sources unconditionally.
func NewChain[K, T any](kind string, valid func(T) bool, fallback Fallback[K, T], live ...Strategy[K, T]) *Chain[K, T] {
	c := &Chain[K, T]{kind: kind, valid: valid, fallback: fallback}
	for _, s := range live {
		if s.Fetch != nil {
			c.live = append(c.live, s)
		}
	}
	return c
}

// Sources lists the strategy names in evaluation order, fallback last.
func (c *Chain[K, T]) Sources() []string {
	names := make([]string, 0, len(c.live)+1)
	for _, s := range c.live {
		names = append(names, s.Name)
	}
	return append(names, c.fallback.Name)
}

// Resolve always returns a value: the first well-formed live result or the fallback's.
func (c *Chain[K, T]) Resolve(ctx context.Context, key K) Outcome[T] {
	out, err := c.ResolveLive(ctx, key)
	if err == nil {
		return out
	}
	metrics.ResolveAttempts.WithLabelValues(c.kind, c.fallback.Name, "fallback").Inc()
	out.Value = c.fallback.Produce(ctx, key)
	out.Source = c.fallback.Name
	return out
}

// ResolveLive runs the live strategies only. It fails with ErrNoData when none of them
// produced a well-formed result.
func (c *Chain[K, T]) ResolveLive(ctx context.Context, key K) (Outcome[T], error) {
	var out Outcome[T]
	for _, s := range c.live {
		v, err := s.Fetch(ctx, key)
		if err == nil && !c.valid(v) {
			err = fmt.Errorf("%s returned malformed %s: %w", s.Name, c.kind, ErrNoData)
			metrics.ResolveAttempts.WithLabelValues(c.kind, s.Name, "invalid").Inc()
		} else if err != nil {
			metrics.ResolveAttempts.WithLabelValues(c.kind, s.Name, "error").Inc()
		}
		if err != nil {
			slog.Warn("market data source failed", "kind", c.kind, "source", s.Name, "key", key, "error", err)
			out.Attempts = append(out.Attempts, Attempt{Source: s.Name, Err: err})
			continue
		}
		metrics.ResolveAttempts.WithLabelValues(c.kind, s.Name, "ok").Inc()
		out.Value = v
		out.Source = s.Name
		out.Attempts = append(out.Attempts, Attempt{Source: s.Name})
		return out, nil
	}
	return out, fmt.Errorf("%s: all %d live sources failed: %w", c.kind, len(c.live), ErrNoData)
}
