package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// breakerProvider stops calling the provider after repeated transport
// failures and fails fast with ErrUnavailable until the cooldown passes.
type breakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[*CompletionResponse]
}

// NewBreakerProvider wraps next in a circuit breaker. Rate limits, auth
// failures and caller cancellations never count toward tripping it.
func NewBreakerProvider(next Provider, failures int, cooldown time.Duration, logger *slog.Logger) Provider {
	if failures <= 0 {
		return next
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &breakerProvider{
		next: next,
		cb: gobreaker.NewCircuitBreaker[*CompletionResponse](gobreaker.Settings{
			Name:        "llm",
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(failures)
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !countsAsOutage(err)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

func countsAsOutage(err error) bool {
	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, ErrRateLimited), errors.Is(err, ErrAuth), errors.Is(err, ErrInvalidOutput):
		return false
	default:
		return true
	}
}

func (b *breakerProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	resp, err := b.cb.Execute(func() (*CompletionResponse, error) {
		return b.next.Complete(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: provider circuit open after repeated failures", ErrUnavailable)
	}
	return resp, err
}
