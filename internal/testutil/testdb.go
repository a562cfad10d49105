package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/outings/internal/db"
)

// NewTestDB returns a migrated in-memory preference database that is closed
// with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test preference db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
