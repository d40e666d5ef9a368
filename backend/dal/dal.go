// Package dal provides a generic data access layer over database/sql with
// scoped write transactions.
//
// A concrete DAL embeds *Handle[T] and is constructed against either a *sql.DB
// or an in-flight transaction. Begin returns a new DAL instance scoped to a
// transaction; CommitOrRollback commits it, or rolls it back if the caller is
// returning an error, so partial writes are never observable.
package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alecthomas/atomic"
)

// ErrNotFound is a sentinel error for missing rows. Compare with IsNotFound.
var ErrNotFound = errors.New("not found")

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Connection is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Connection interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Connection = (*sql.DB)(nil)
	_ Connection = (*sql.Tx)(nil)
)

// Instrumentation for the package's own tests.
var (
	testCommitCounter   = atomic.NewInt64(0)
	testRollbackCounter = atomic.NewInt64(0)
)

// Handle is the generic core of a DAL.
type Handle[T any] struct {
	Connection Connection
	make       func(*Handle[T]) *T
}

// New creates a Handle from a connection and a constructor for the concrete
// DAL type.
func New[T any](conn Connection, make func(*Handle[T]) *T) *Handle[T] {
	return &Handle[T]{Connection: conn, make: make}
}

// Begin starts a write transaction and returns a DAL scoped to it.
func (h *Handle[T]) Begin(ctx context.Context) (*T, error) {
	db, ok := h.Connection.(*sql.DB)
	if !ok {
		return nil, fmt.Errorf("cannot nest transactions")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return h.make(&Handle[T]{Connection: tx, make: h.make}), nil
}

// CommitOrRollback should be deferred with the caller's named error return.
// It commits the transaction if *err is nil, and rolls it back otherwise.
func (h *Handle[T]) CommitOrRollback(ctx context.Context, err *error) {
	tx, ok := h.Connection.(*sql.Tx)
	if !ok {
		*err = errors.Join(*err, errors.New("CommitOrRollback called outside a transaction"))
		return
	}
	if *err != nil {
		testRollbackCounter.Add(1)
		if rerr := tx.Rollback(); rerr != nil {
			*err = errors.Join(*err, fmt.Errorf("failed to rollback transaction: %w", rerr))
		}
		return
	}
	testCommitCounter.Add(1)
	if cerr := tx.Commit(); cerr != nil {
		*err = fmt.Errorf("failed to commit transaction: %w", cerr)
	}
}
