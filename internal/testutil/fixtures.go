package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/outings/internal/domain"
)

var testActivityCounter atomic.Int64

// ActivityOption customizes a test activity.
type ActivityOption func(*domain.ActivityRecord)

func WithDescription(d string) ActivityOption {
	return func(a *domain.ActivityRecord) { a.Description = d }
}

func WithLocation(l string) ActivityOption {
	return func(a *domain.ActivityRecord) { a.Location = l }
}

func WithDistance(d float64) ActivityOption {
	return func(a *domain.ActivityRecord) { a.Distance = d }
}

// NewTestActivity builds a record with a neutral description that extracts
// to {general} unless overridden.
func NewTestActivity(title string, opts ...ActivityOption) domain.ActivityRecord {
	n := testActivityCounter.Add(1)
	a := domain.ActivityRecord{
		Emoji:       "📍",
		Title:       title,
		Description: "A place to spend a few hours.",
		Location:    fmt.Sprintf("%d Main St", n),
		Distance:    1.5,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Date builds a UTC midnight time for y-m-d.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
