package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/outings/internal/app"
	"github.com/alexanderramin/outings/internal/preference"
)

type feedbackService struct {
	engine   *preference.Engine
	observer UseCaseObserver
}

// NewFeedbackService exposes the preference engine as use cases.
func NewFeedbackService(engine *preference.Engine, observers ...UseCaseObserver) app.FeedbackUseCase {
	return &feedbackService{engine: engine, observer: useCaseObserverOrNoop(observers)}
}

func (s *feedbackService) React(ctx context.Context, req app.ReactRequest) (resp *app.ReactResponse, err error) {
	start := time.Now()
	fields := map[string]any{"title": req.Activity.Title, "reaction": req.Reaction.String()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "react",
			StartedAt: start,
			Duration:  time.Since(start),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	req.Activity.Title = strings.TrimSpace(req.Activity.Title)
	if req.Activity.Title == "" {
		return nil, &app.RecommendError{Code: app.ErrValidation, Message: "Missing required fields", Hint: "activity.title is required"}
	}
	if err := validateRequest(req, "Invalid reaction"); err != nil {
		return nil, err
	}

	reaction, err := s.engine.AddReaction(ctx, req.Activity, req.Reaction, req.Reasons...)
	if err != nil {
		if errors.Is(err, preference.ErrInvalidReaction) {
			return nil, &app.RecommendError{Code: app.ErrValidation, Message: "Invalid reaction", Hint: err.Error(), Err: err}
		}
		return nil, &app.RecommendError{Code: app.ErrValidation, Message: "Invalid reasons", Hint: err.Error(), Err: err}
	}
	fields["categories"] = strings.Join(reaction.Categories, ",")

	summary, _ := s.engine.BuildSummary()
	return &app.ReactResponse{
		Reaction:    reaction,
		Summary:     summary,
		Matching:    s.engine.MatchingCategories(req.Activity),
		TotalStored: len(s.engine.Reactions()),
	}, nil
}

func (s *feedbackService) Preferences(_ context.Context) app.PreferencesView {
	summary, ok := s.engine.BuildSummary()
	return app.PreferencesView{
		Summary:    summary,
		HasSummary: ok,
		Stats:      s.engine.Stats(),
		Reactions:  s.engine.Reactions(),
	}
}

func (s *feedbackService) Clear(ctx context.Context) error {
	start := time.Now()
	before := len(s.engine.Reactions())
	s.engine.Clear(ctx)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "clear_preferences",
		StartedAt: start,
		Duration:  time.Since(start),
		Success:   true,
		Fields:    map[string]any{"removed": before},
	})
	return nil
}
