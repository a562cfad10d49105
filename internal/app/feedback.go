package app

import (
	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/preference"
)

// ReactRequest records a thumbs-up or thumbs-down on one result. Reasons are
// only honored on thumbs-up.
type ReactRequest struct {
	Activity domain.ActivityRecord `json:"activity"`
	Reaction domain.ReactionValue  `json:"reaction" validate:"oneof=-1 1"`
	Reasons  []string              `json:"reasons,omitempty"`
}

type ReactResponse struct {
	Reaction    domain.Reaction `json:"reaction"`
	Summary     string          `json:"summary,omitempty"`
	Matching    []string        `json:"matching,omitempty"`
	TotalStored int             `json:"totalStored"`
}

// PreferencesView is a read-only snapshot of the preference model.
type PreferencesView struct {
	Summary    string                     `json:"summary,omitempty"`
	HasSummary bool                       `json:"hasSummary"`
	Stats      preference.PreferenceStats `json:"stats"`
	Reactions  []domain.Reaction          `json:"reactions"`
}
