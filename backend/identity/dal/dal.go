// Package dal persists identity records.
//
// One row per account. Key rotation is an UPDATE of every column except the
// primary key, performed inside the caller's transaction; the identity_key
// column of a live row is never updated on its own.
package dal

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/silkmsg/silk/backend/dal"
	"github.com/silkmsg/silk/internal/model"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Re-exported from the generic handle so callers of this package can match
// missing records without importing it.
var (
	ErrNotFound = dal.ErrNotFound
	IsNotFound  = dal.IsNotFound
)

// Migrate creates or upgrades the identity tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	files, err := fs.Sub(schemaFS, "schema")
	if err != nil {
		return fmt.Errorf("failed to open schema: %w", err)
	}
	return dal.Migrate(ctx, db, files)
}

type DAL struct {
	*dal.Handle[DAL]
}

func New(conn dal.Connection) *DAL {
	return NewWithConn(dal.New(conn, NewWithConn))
}

func NewWithConn(conn *dal.Handle[DAL]) *DAL {
	return &DAL{conn}
}

// GetIdentity returns the active record for an account, or dal.ErrNotFound.
func (d *DAL) GetIdentity(ctx context.Context, accountID model.AccountID) (model.IdentityRecord, error) {
	row := d.Connection.QueryRowContext(ctx, `
		SELECT account_id, identity_key, created_at_ms, is_first_known_key, verification_state, was_identity_verified
		FROM identity_records
		WHERE account_id = $1
		`, accountID)
	record, err := scanIdentity(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.IdentityRecord{}, dal.ErrNotFound
	}
	if err != nil {
		return model.IdentityRecord{}, fmt.Errorf("identity for %s: %w", accountID, err)
	}
	return record, nil
}

// CreateIdentity inserts the first record for an account.
func (d *DAL) CreateIdentity(ctx context.Context, record model.IdentityRecord) error {
	_, err := d.Connection.ExecContext(ctx, `
		INSERT INTO identity_records (account_id, identity_key, created_at_ms, is_first_known_key, verification_state, was_identity_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		`, record.AccountID, record.IdentityKey, record.CreatedAt.UnixMilli(),
		record.IsFirstKnownKey, record.VerificationState, record.WasIdentityVerified)
	if err != nil {
		return fmt.Errorf("create identity for %s: %w", record.AccountID, err)
	}
	return nil
}

// ReplaceIdentity overwrites the row for an account with a rotated record.
func (d *DAL) ReplaceIdentity(ctx context.Context, record model.IdentityRecord) error {
	result, err := d.Connection.ExecContext(ctx, `
		UPDATE identity_records
		SET identity_key = $2, created_at_ms = $3, is_first_known_key = $4, verification_state = $5, was_identity_verified = $6
		WHERE account_id = $1
		`, record.AccountID, record.IdentityKey, record.CreatedAt.UnixMilli(),
		record.IsFirstKnownKey, record.VerificationState, record.WasIdentityVerified)
	if err != nil {
		return fmt.Errorf("replace identity for %s: %w", record.AccountID, err)
	}
	return expectOneRow(result, record.AccountID)
}

// UpdateVerificationState mutates the verification columns of an existing row
// in place. The key and creation time are untouched.
func (d *DAL) UpdateVerificationState(ctx context.Context, accountID model.AccountID, state model.VerificationState, wasVerified bool) error {
	result, err := d.Connection.ExecContext(ctx, `
		UPDATE identity_records
		SET verification_state = $2, was_identity_verified = $3
		WHERE account_id = $1
		`, accountID, state, wasVerified)
	if err != nil {
		return fmt.Errorf("update verification state for %s: %w", accountID, err)
	}
	return expectOneRow(result, accountID)
}

// DeleteIdentity removes an account's record as part of whole-account
// deletion.
func (d *DAL) DeleteIdentity(ctx context.Context, accountID model.AccountID) error {
	result, err := d.Connection.ExecContext(ctx, `
		DELETE FROM identity_records WHERE account_id = $1
		`, accountID)
	if err != nil {
		return fmt.Errorf("delete identity for %s: %w", accountID, err)
	}
	return expectOneRow(result, accountID)
}

// ListIdentities returns every stored record, ordered by account id.
func (d *DAL) ListIdentities(ctx context.Context) ([]model.IdentityRecord, error) {
	rows, err := d.Connection.QueryContext(ctx, `
		SELECT account_id, identity_key, created_at_ms, is_first_known_key, verification_state, was_identity_verified
		FROM identity_records
		ORDER BY account_id
		`)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()
	var records []model.IdentityRecord
	for rows.Next() {
		record, err := scanIdentity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list identities: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	return records, nil
}

func scanIdentity(scan func(dest ...any) error) (model.IdentityRecord, error) {
	var record model.IdentityRecord
	var createdAtMillis int64
	err := scan(&record.AccountID, &record.IdentityKey, &createdAtMillis,
		&record.IsFirstKnownKey, &record.VerificationState, &record.WasIdentityVerified)
	if err != nil {
		return model.IdentityRecord{}, err
	}
	record.CreatedAt = time.UnixMilli(createdAtMillis).UTC()
	return record, nil
}

func expectOneRow(result sql.Result, accountID model.AccountID) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", accountID, err)
	}
	if affected == 0 {
		return dal.ErrNotFound
	}
	return nil
}
