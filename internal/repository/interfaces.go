package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/outings/internal/domain"
)

// ErrNotFound is returned when no store has been persisted under the key yet.
var ErrNotFound = errors.New("not found")

// DefaultStorageKey is the key the single local preference store lives under.
const DefaultStorageKey = "familyActivityPreferences"

// PreferenceRepo persists the whole preference store as one unit. Load
// returns the store exactly as persisted, including a stale version; callers
// decide what to do with it.
type PreferenceRepo interface {
	Load(ctx context.Context) (domain.PreferenceStore, error)
	Save(ctx context.Context, store domain.PreferenceStore) error
	Clear(ctx context.Context) error
}
