package intelligence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/llm"
	"github.com/alexanderramin/outings/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func newTestService(p llm.Provider, sl *recordingSleeper, opts ...RecommendOption) RecommendationService {
	opts = append([]RecommendOption{
		WithSleeper(sl.sleep),
		WithClock(testutil.FixedClock(promptToday)),
	}, opts...)
	return NewRecommendationService(p, opts...)
}

func rateLimited() testutil.ProviderReply {
	return testutil.ProviderReply{Err: llm.ErrRateLimited}
}

func TestFetch_Success(t *testing.T) {
	provider := testutil.NewFakeProvider(testutil.ProviderReply{Text: testutil.FiveActivitiesJSON})
	sl := &recordingSleeper{}
	svc := newTestService(provider, sl)

	got, err := svc.Fetch(context.Background(), activityParams(), "")
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, 1, provider.Calls())
	assert.Empty(t, sl.waits)

	req := provider.Requests[0]
	assert.Equal(t, llm.TaskActivities, req.Task)
	assert.Equal(t, []llm.Tool{llm.WebSearchTool(5)}, req.Tools)
	assert.Equal(t, BuildPrompt(activityParams(), promptToday, ""), req.Prompt)
}

func TestFetch_DiningTaskAndSummary(t *testing.T) {
	provider := testutil.NewFakeProvider(testutil.ProviderReply{Text: "[]"})
	svc := newTestService(provider, &recordingSleeper{})

	params := activityParams()
	params.EventType = domain.EventDining
	_, err := svc.Fetch(context.Background(), params, "SUMMARY")
	require.NoError(t, err)

	assert.Equal(t, llm.TaskDining, provider.Requests[0].Task)
	assert.Contains(t, provider.LastPrompt(), "\n\nSUMMARY")
}

func TestFetch_RateLimitedExhaustsThreeAttempts(t *testing.T) {
	provider := testutil.NewFakeProvider(rateLimited())
	sl := &recordingSleeper{}
	svc := newTestService(provider, sl)

	_, err := svc.Fetch(context.Background(), activityParams(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrRateLimited)
	assert.Equal(t, 3, provider.Calls())
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, sl.waits)
}

func TestFetch_RecoversAfterRateLimit(t *testing.T) {
	provider := testutil.NewFakeProvider(rateLimited(), testutil.ProviderReply{Text: testutil.FiveActivitiesJSON})
	sl := &recordingSleeper{}
	svc := newTestService(provider, sl)

	got, err := svc.Fetch(context.Background(), activityParams(), "")
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, 2, provider.Calls())
	assert.Equal(t, []time.Duration{2 * time.Second}, sl.waits)
}

func TestFetch_OtherErrorsNotRetried(t *testing.T) {
	for _, sentinel := range []error{llm.ErrAuth, llm.ErrUpstream, llm.ErrTimeout, llm.ErrUnavailable} {
		provider := testutil.NewFakeProvider(testutil.ProviderReply{Err: sentinel})
		svc := newTestService(provider, &recordingSleeper{})

		_, err := svc.Fetch(context.Background(), activityParams(), "")
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, provider.Calls(), sentinel.Error())
	}
}

func TestFetch_CustomPolicy(t *testing.T) {
	provider := testutil.NewFakeProvider(rateLimited())
	sl := &recordingSleeper{}
	svc := newTestService(provider, sl, WithRetryPolicy(RetryPolicy{MaxAttempts: 4, BaseDelay: 10 * time.Millisecond}))

	_, err := svc.Fetch(context.Background(), activityParams(), "")
	assert.ErrorIs(t, err, llm.ErrRateLimited)
	assert.Equal(t, 4, provider.Calls())
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}, sl.waits)
}

func TestFetch_CancelDuringBackoff(t *testing.T) {
	provider := testutil.NewFakeProvider(rateLimited())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewRecommendationService(provider, WithRetryPolicy(RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour}))

	start := time.Now()
	_, err := svc.Fetch(ctx, activityParams(), "")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, provider.Calls())
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetch_EmptyTextIsMalformed(t *testing.T) {
	provider := testutil.NewFakeProvider()
	svc := newTestService(provider, &recordingSleeper{})

	_, err := svc.Fetch(context.Background(), activityParams(), "")
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "no text response")
}

func TestFetch_ParseErrorsPropagate(t *testing.T) {
	provider := testutil.NewFakeProvider(testutil.ProviderReply{Text: "I was unable to find anything."})
	svc := newTestService(provider, &recordingSleeper{})

	_, err := svc.Fetch(context.Background(), activityParams(), "")
	assert.True(t, errors.Is(err, ErrNoResults))
}

func TestFetch_WebSearchDisabled(t *testing.T) {
	provider := testutil.NewFakeProvider(testutil.ProviderReply{Text: "[]"})
	svc := newTestService(provider, &recordingSleeper{}, WithWebSearchMaxUses(0))

	_, err := svc.Fetch(context.Background(), activityParams(), "")
	require.NoError(t, err)
	assert.Empty(t, provider.Requests[0].Tools)
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 2*time.Second, p.Delay(1))
	assert.Equal(t, 4*time.Second, p.Delay(2))
	assert.Equal(t, 8*time.Second, p.Delay(3))
}
