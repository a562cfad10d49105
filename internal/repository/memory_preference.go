package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/outings/internal/domain"
)

// MemoryPreferenceRepo keeps the store in process memory. Used in tests and
// when persistence is disabled.
type MemoryPreferenceRepo struct {
	mu    sync.Mutex
	store *domain.PreferenceStore
}

func NewMemoryPreferenceRepo() *MemoryPreferenceRepo {
	return &MemoryPreferenceRepo{}
}

func (r *MemoryPreferenceRepo) Load(_ context.Context) (domain.PreferenceStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.store == nil {
		return domain.PreferenceStore{}, fmt.Errorf("preference store: %w", ErrNotFound)
	}
	return r.store.Clone(), nil
}

func (r *MemoryPreferenceRepo) Save(_ context.Context, store domain.PreferenceStore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := store.Clone()
	r.store = &c
	return nil
}

func (r *MemoryPreferenceRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store = nil
	return nil
}
