package testutil

import (
	"context"

	"github.com/alexanderramin/outings/internal/domain"
)

// FailingPreferenceRepo fails every call with Err, or returns Store from Load
// when Err is nil. Saves are counted.
type FailingPreferenceRepo struct {
	Store domain.PreferenceStore
	Err   error
	Saves int
}

func (r *FailingPreferenceRepo) Load(context.Context) (domain.PreferenceStore, error) {
	if r.Err != nil {
		return domain.PreferenceStore{}, r.Err
	}
	return r.Store.Clone(), nil
}

func (r *FailingPreferenceRepo) Save(context.Context, domain.PreferenceStore) error {
	r.Saves++
	return r.Err
}

func (r *FailingPreferenceRepo) Clear(context.Context) error {
	return r.Err
}
