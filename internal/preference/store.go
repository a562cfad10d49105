package preference

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexanderramin/outings/internal/domain"
	"github.com/alexanderramin/outings/internal/repository"
)

// Store wraps a PreferenceRepo so loading and saving never fail at the
// boundary. Missing, unreadable or version-mismatched data loads as an
// empty store; save failures are logged and dropped.
type Store struct {
	repo   repository.PreferenceRepo
	logger *slog.Logger
}

// NewStore creates a Store. A nil logger discards warnings.
func NewStore(repo repository.PreferenceRepo, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{repo: repo, logger: logger}
}

// Load returns the persisted store or a fresh empty one.
func (s *Store) Load(ctx context.Context) domain.PreferenceStore {
	store, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "preference store unreadable, starting empty", "error", err)
		}
		return domain.NewPreferenceStore()
	}
	if store.Version != domain.PreferenceVersion {
		s.logger.WarnContext(ctx, "preference store version mismatch, starting empty",
			"found", store.Version, "want", domain.PreferenceVersion)
		return domain.NewPreferenceStore()
	}
	if store.Reactions == nil {
		store.Reactions = []domain.Reaction{}
	}
	return store
}

// Save persists store. It reports whether the write succeeded so callers
// can surface a warning, but never returns an error.
func (s *Store) Save(ctx context.Context, store domain.PreferenceStore) bool {
	if err := s.repo.Save(ctx, store); err != nil {
		s.logger.WarnContext(ctx, "saving preference store failed", "error", err,
			"reactions", len(store.Reactions))
		return false
	}
	return true
}
