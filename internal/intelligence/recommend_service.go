package intelligence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/llm"
)

// RetryPolicy bounds retries on rate limiting. The wait before retry n
// (1-based) is BaseDelay * 2^(n-1).
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy makes three attempts, waiting 2s then 4s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second}
}

// Delay returns the wait before the given retry (1-based).
func (p RetryPolicy) Delay(retry int) time.Duration {
	return p.BaseDelay << (retry - 1)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RecommendationService fetches recommendations from the provider.
type RecommendationService interface {
	// Fetch renders the prompt for params, calls the provider with
	// rate-limit retries and parses the reply. params.Availability must be
	// resolved; summary may be empty.
	Fetch(ctx context.Context, params domain.SearchParameters, summary string) ([]domain.ActivityRecord, error)
}

type recommendationService struct {
	provider      llm.Provider
	policy        RetryPolicy
	searchMaxUses int
	sleep         Sleeper
	now           func() time.Time
	logger        *slog.Logger
}

// RecommendOption configures a RecommendationService.
type RecommendOption func(*recommendationService)

func WithRetryPolicy(p RetryPolicy) RecommendOption {
	return func(s *recommendationService) { s.policy = p }
}

// WithSleeper replaces the backoff wait, mainly for tests.
func WithSleeper(sl Sleeper) RecommendOption {
	return func(s *recommendationService) { s.sleep = sl }
}

func WithClock(now func() time.Time) RecommendOption {
	return func(s *recommendationService) { s.now = now }
}

// WithWebSearchMaxUses caps provider-side searches per call. Zero omits the
// web search tool.
func WithWebSearchMaxUses(n int) RecommendOption {
	return func(s *recommendationService) { s.searchMaxUses = n }
}

func WithLogger(l *slog.Logger) RecommendOption {
	return func(s *recommendationService) { s.logger = l }
}

// NewRecommendationService creates a RecommendationService over provider.
func NewRecommendationService(provider llm.Provider, opts ...RecommendOption) RecommendationService {
	s := &recommendationService{
		provider:      provider,
		policy:        DefaultRetryPolicy(),
		searchMaxUses: 5,
		sleep:         sleepContext,
		now:           time.Now,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy.MaxAttempts < 1 {
		s.policy.MaxAttempts = 1
	}
	return s
}

func (s *recommendationService) Fetch(ctx context.Context, params domain.SearchParameters, summary string) ([]domain.ActivityRecord, error) {
	req := llm.CompletionRequest{
		Task:   llm.TaskActivities,
		Prompt: BuildPrompt(params, s.now(), summary),
	}
	if params.IsDining() {
		req.Task = llm.TaskDining
	}
	if s.searchMaxUses > 0 {
		req.Tools = []llm.Tool{llm.WebSearchTool(s.searchMaxUses)}
	}

	resp, err := s.completeWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: no text response", ErrMalformedResponse)
	}
	return ParseActivities(text)
}

func (s *recommendationService) completeWithRetry(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= s.policy.MaxAttempts; attempt++ {
		resp, err := s.provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, llm.ErrRateLimited) {
			return nil, err
		}
		lastErr = err
		if attempt == s.policy.MaxAttempts {
			break
		}

		wait := s.policy.Delay(attempt)
		s.logger.WarnContext(ctx, "provider rate limited, backing off",
			"task", req.Task, "attempt", attempt, "max_attempts", s.policy.MaxAttempts, "wait", wait)
		if err := s.sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("waiting to retry: %w", err)
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", s.policy.MaxAttempts, lastErr)
}
