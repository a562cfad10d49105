package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/outings/internal/db"
	"github.com/alexanderramin/outings/internal/domain"
)

// SQLitePreferenceRepo implements PreferenceRepo over the preference_store
// and preference_reactions tables.
type SQLitePreferenceRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
	key string
	now func() time.Time
}

// NewSQLitePreferenceRepo creates a repo for the store under key. An empty
// key selects DefaultStorageKey.
func NewSQLitePreferenceRepo(conn db.DBTX, uow db.UnitOfWork, key string) *SQLitePreferenceRepo {
	if key == "" {
		key = DefaultStorageKey
	}
	return &SQLitePreferenceRepo{db: conn, uow: uow, key: key, now: time.Now}
}

func (r *SQLitePreferenceRepo) Load(ctx context.Context) (domain.PreferenceStore, error) {
	var version int
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM preference_store WHERE storage_key = ?`, r.key).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PreferenceStore{}, fmt.Errorf("preference store %q: %w", r.key, ErrNotFound)
		}
		return domain.PreferenceStore{}, fmt.Errorf("scanning preference store: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT title, categories, reaction, reacted_on FROM preference_reactions
		WHERE storage_key = ? ORDER BY position`, r.key)
	if err != nil {
		return domain.PreferenceStore{}, fmt.Errorf("querying reactions: %w", err)
	}
	defer rows.Close()

	store := domain.PreferenceStore{Version: version, Reactions: []domain.Reaction{}}
	for rows.Next() {
		var (
			rec        domain.Reaction
			categories string
			value      int
		)
		if err := rows.Scan(&rec.Title, &categories, &value, &rec.Date); err != nil {
			return domain.PreferenceStore{}, fmt.Errorf("scanning reaction: %w", err)
		}
		rec.Value = domain.ReactionValue(value)
		if rec.Categories, err = decodeCategories(categories); err != nil {
			return domain.PreferenceStore{}, fmt.Errorf("reaction %q: %w", rec.Title, err)
		}
		store.Reactions = append(store.Reactions, rec)
	}
	if err := rows.Err(); err != nil {
		return domain.PreferenceStore{}, fmt.Errorf("iterating reactions: %w", err)
	}
	return store, nil
}

// Save replaces every persisted reaction for the key in one transaction.
func (r *SQLitePreferenceRepo) Save(ctx context.Context, store domain.PreferenceStore) error {
	updatedAt := r.now().UTC().Format(time.RFC3339)
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO preference_store (storage_key, version, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(storage_key) DO UPDATE SET version = excluded.version, updated_at = excluded.updated_at`,
			r.key, store.Version, updatedAt); err != nil {
			return fmt.Errorf("upserting preference store: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM preference_reactions WHERE storage_key = ?`, r.key); err != nil {
			return fmt.Errorf("clearing reactions: %w", err)
		}
		for i, rec := range store.Reactions {
			categories, err := encodeCategories(rec.Categories)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO preference_reactions (storage_key, position, title, categories, reaction, reacted_on)
				VALUES (?, ?, ?, ?, ?, ?)`,
				r.key, i, rec.Title, categories, int(rec.Value), rec.Date); err != nil {
				return fmt.Errorf("inserting reaction %q: %w", rec.Title, err)
			}
		}
		return nil
	})
}

// Clear removes the store and its reactions. Clearing an absent store is not
// an error.
func (r *SQLitePreferenceRepo) Clear(ctx context.Context) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM preference_reactions WHERE storage_key = ?`, r.key); err != nil {
			return fmt.Errorf("deleting reactions: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM preference_store WHERE storage_key = ?`, r.key); err != nil {
			return fmt.Errorf("deleting preference store: %w", err)
		}
		return nil
	})
}
