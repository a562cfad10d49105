package app

import (
	"net/http"
	"time"

	"github.com/alexanderramin/outings/internal/domain"
)

// RecommendRequest is one search, as submitted by the CLI or HTTP clients.
// Availability wins over Date+TimeOfDay when both are given.
type RecommendRequest struct {
	EventType    string  `json:"eventType"`
	City         string  `json:"city" validate:"required"`
	KidAges      string  `json:"kidAges" validate:"required"`
	Availability string  `json:"availability" validate:"required_without=Date"`
	Date         string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TimeOfDay    string  `json:"timeOfDay"`
	MaxDistance  float64 `json:"maxDistance" validate:"gte=0"`
	Preferences  string  `json:"preferences"`

	// PreferenceContext overrides the locally learned summary when set. An
	// empty string sends no summary at all.
	PreferenceContext *string `json:"preferenceContext,omitempty"`

	RequestID string `json:"-"`
}

func NewRecommendRequest(city, kidAges string) RecommendRequest {
	return RecommendRequest{
		EventType:   string(domain.EventActivity),
		City:        city,
		KidAges:     kidAges,
		TimeOfDay:   domain.DefaultTimeOfDay,
		MaxDistance: domain.DefaultMaxDistance,
	}
}

// Params converts the request into search parameters. Availability is left
// unresolved.
func (r RecommendRequest) Params() domain.SearchParameters {
	maxDist := r.MaxDistance
	if maxDist == 0 {
		maxDist = domain.DefaultMaxDistance
	}
	return domain.SearchParameters{
		EventType:    domain.ParseEventType(r.EventType),
		City:         r.City,
		KidAges:      r.KidAges,
		Date:         r.Date,
		TimeOfDay:    r.TimeOfDay,
		Availability: r.Availability,
		MaxDistance:  maxDist,
		Preferences:  r.Preferences,
	}
}

// RecommendedActivity is a result annotated against the preference model.
type RecommendedActivity struct {
	domain.ActivityRecord
	Match              bool                 `json:"match"`
	MatchingCategories []string             `json:"matchingCategories,omitempty"`
	Reaction           domain.ReactionValue `json:"reaction"`
}

type RecommendResponse struct {
	RequestID    string                `json:"requestId"`
	GeneratedAt  time.Time             `json:"generatedAt"`
	EventType    domain.EventType      `json:"eventType"`
	Availability string                `json:"availability"`
	SummaryUsed  bool                  `json:"summaryUsed"`
	Activities   []RecommendedActivity `json:"activities"`
}

type RecommendErrorCode string

const (
	ErrValidation        RecommendErrorCode = "VALIDATION"
	ErrNoResults         RecommendErrorCode = "NO_RESULTS"
	ErrMalformedResponse RecommendErrorCode = "MALFORMED_RESPONSE"
	ErrRateLimited       RecommendErrorCode = "RATE_LIMITED"
	ErrAuth              RecommendErrorCode = "AUTH"
	ErrUpstream          RecommendErrorCode = "UPSTREAM"
)

// RecommendError is the only error a recommend or feedback use case returns.
// Message is a short headline; Hint tells the user what to do next.
type RecommendError struct {
	Code    RecommendErrorCode
	Message string
	Hint    string
	Err     error
}

func (e *RecommendError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *RecommendError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the code onto the status the HTTP endpoint replies with.
func (e *RecommendError) HTTPStatus() int {
	switch e.Code {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrNoResults:
		return http.StatusBadGateway
	case ErrRateLimited:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
