package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/outings/internal/db"
)

// FailingWriteUoW injects Err into the Nth write whose SQL contains Match.
// An empty Match counts every write. Reads always pass through, and the
// transaction is rolled back as a real failure would be.
type FailingWriteUoW struct {
	DB    *sql.DB
	Match string
	Nth   int
	Err   error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, uow: u})
	})
}

type failingWrites struct {
	db.DBTX
	uow  *FailingWriteUoW
	seen int
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Match) {
		f.seen++
		if f.seen == f.uow.Nth {
			return nil, fmt.Errorf("write %d: %w", f.seen, f.uow.Err)
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
