package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/outings/internal/intelligence"
	"github.com/alexanderramin/outings/internal/llm"
	"github.com/alexanderramin/outings/internal/preference"
	"github.com/alexanderramin/outings/internal/repository"
	"github.com/alexanderramin/outings/internal/taxonomy"
	"github.com/alexanderramin/outings/internal/testutil"
)

var testToday = testutil.Date(2025, 6, 10)

type captureUseCaseObserver struct {
	events []UseCaseEvent
}

func (o *captureUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func newTestEngine(t *testing.T) *preference.Engine {
	t.Helper()
	return preference.NewEngine(context.Background(), taxonomy.MustDefaultVocabulary(),
		preference.NewStore(repository.NewMemoryPreferenceRepo(), nil),
		preference.WithClock(testutil.FixedClock(testToday)))
}

func newTestFetcher(p llm.Provider) intelligence.RecommendationService {
	return intelligence.NewRecommendationService(p,
		intelligence.WithClock(testutil.FixedClock(testToday)),
		intelligence.WithSleeper(func(context.Context, time.Duration) error { return nil }),
	)
}
