package dal

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/silkmsg/silk/internal/log"
)

var migrationFileNameRe = regexp.MustCompile(`^.*?(\d{14})_(.*)\.sql$`)

// Migrate applies all .sql migrations in the provided fs.FS to the database.
//
// Migration files must be named "<YYYYMMDDHHMMSS>_<detail>.sql" and are
// applied in version order, each in its own transaction. The version table is
// dbmate-compatible.
func Migrate(ctx context.Context, db *sql.DB, migrationFiles fs.FS) error {
	logger := log.FromContext(ctx).Scope("migrate")

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied := map[string]bool{}
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	sqlFiles, err := fs.Glob(migrationFiles, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}
	sort.Strings(sqlFiles)

	for _, sqlFile := range sqlFiles {
		name := filepath.Base(sqlFile)
		groups := migrationFileNameRe.FindStringSubmatch(name)
		if groups == nil {
			return fmt.Errorf("invalid migration file name %q, must be in the form <date>_<detail>.sql", sqlFile)
		}
		version := groups[1]
		if applied[version] {
			continue
		}
		migration, err := fs.ReadFile(migrationFiles, sqlFile)
		if err != nil {
			return fmt.Errorf("failed to read migration file %q: %w", sqlFile, err)
		}
		if err := applyMigration(ctx, db, version, migration); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		logger.Debugf("Applied migration %s", name)
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, version string, migration []byte) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	if _, err = tx.ExecContext(ctx, string(migration)); err != nil {
		return fmt.Errorf("failed to apply: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return fmt.Errorf("failed to record version: %w", err)
	}
	return nil
}
