package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/intelligence"
	"github.com/alexanderramin/outings/internal/llm"
	"github.com/alexanderramin/outings/internal/preference"
)

type recommendService struct {
	fetcher  intelligence.RecommendationService
	engine   *preference.Engine
	observer UseCaseObserver
	now      func() time.Time
}

// NewRecommendService wires the provider pipeline to the preference engine.
func NewRecommendService(
	fetcher intelligence.RecommendationService,
	engine *preference.Engine,
	observers ...UseCaseObserver,
) app.RecommendUseCase {
	return &recommendService{
		fetcher:  fetcher,
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *recommendService) Recommend(ctx context.Context, req app.RecommendRequest) (resp *app.RecommendResponse, err error) {
	start := time.Now()
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	fields := map[string]any{
		"request_id": req.RequestID,
		"event_type": string(domain.ParseEventType(req.EventType)),
		"city":       req.City,
	}
	defer func() {
		if resp != nil {
			fields["results"] = len(resp.Activities)
			fields["summary_used"] = resp.SummaryUsed
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "recommend",
			StartedAt: start,
			Duration:  time.Since(start),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	params, summary, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	availability := params.Availability

	records, err := s.fetcher.Fetch(ctx, params, summary)
	if err != nil {
		return nil, mapFetchError(err)
	}

	var exclude []string
	if params.IsDining() {
		exclude = strings.Split(params.Preferences, ",")
	}
	out := make([]app.RecommendedActivity, 0, len(records))
	for _, rec := range records {
		matching := s.engine.MatchingCategories(rec, exclude...)
		out = append(out, app.RecommendedActivity{
			ActivityRecord:     rec,
			Match:              len(matching) > 0,
			MatchingCategories: matching,
			Reaction:           s.engine.ReactionFor(rec.Title),
		})
	}

	return &app.RecommendResponse{
		RequestID:    req.RequestID,
		GeneratedAt:  time.Now().UTC(),
		EventType:    params.EventType,
		Availability: availability,
		SummaryUsed:  summary != "",
		Activities:   out,
	}, nil
}

func (s *recommendService) PreviewPrompt(_ context.Context, req app.RecommendRequest) (string, error) {
	params, summary, err := s.prepare(req)
	if err != nil {
		return "", err
	}
	return intelligence.BuildPrompt(params, s.now(), summary), nil
}

// prepare validates req and resolves the parameters and preference summary
// that go into the prompt.
func (s *recommendService) prepare(req app.RecommendRequest) (domain.SearchParameters, string, error) {
	req = normalizeRequest(req)
	if err := validateRequest(req, "Missing required fields"); err != nil {
		return domain.SearchParameters{}, "", err
	}

	params := req.Params()
	availability, err := params.ResolveAvailability()
	if err != nil {
		return domain.SearchParameters{}, "", &app.RecommendError{Code: app.ErrValidation, Message: "Invalid date", Hint: err.Error(), Err: err}
	}
	params.Availability = availability

	var summary string
	if req.PreferenceContext != nil {
		summary = *req.PreferenceContext
	} else {
		summary, _ = s.engine.BuildSummary()
	}
	return params, summary, nil
}

func normalizeRequest(req app.RecommendRequest) app.RecommendRequest {
	req.EventType = strings.ToLower(strings.TrimSpace(req.EventType))
	req.City = strings.TrimSpace(req.City)
	req.KidAges = strings.TrimSpace(req.KidAges)
	req.Availability = strings.TrimSpace(req.Availability)
	req.Date = strings.TrimSpace(req.Date)
	req.TimeOfDay = strings.TrimSpace(req.TimeOfDay)
	req.Preferences = strings.TrimSpace(req.Preferences)
	return req
}

// mapFetchError converts pipeline failures into the user-facing taxonomy.
func mapFetchError(err error) error {
	switch {
	case errors.Is(err, intelligence.ErrNoResults):
		return &app.RecommendError{
			Code:    app.ErrNoResults,
			Message: "No events found for this date",
			Hint:    "Try a date closer to today, or a larger city.",
			Err:     err,
		}
	case errors.Is(err, llm.ErrRateLimited):
		return &app.RecommendError{
			Code:    app.ErrRateLimited,
			Message: "Rate limited",
			Hint:    "The API is busy. Please wait 30 seconds and try again.",
			Err:     err,
		}
	case errors.Is(err, llm.ErrAuth):
		return &app.RecommendError{
			Code:    app.ErrAuth,
			Message: "API authentication failed",
			Hint:    "Please check your ANTHROPIC_API_KEY",
			Err:     err,
		}
	case errors.Is(err, intelligence.ErrMalformedResponse):
		return &app.RecommendError{
			Code:    app.ErrMalformedResponse,
			Message: "Failed to get activity recommendations",
			Hint:    err.Error(),
			Err:     err,
		}
	default:
		return &app.RecommendError{
			Code:    app.ErrUpstream,
			Message: "Failed to get activity recommendations",
			Hint:    err.Error(),
			Err:     err,
		}
	}
}
