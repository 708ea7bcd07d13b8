// Package pgledger reads and writes the Supabase migration ledger
// (supabase_migrations.schema_migrations) so local files can be compared
// with, and pushed to, a remote database.
package pgledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

// UndefinedTableCode is the Postgres error code for a missing relation.
const UndefinedTableCode = "42P01"

const (
	ensureLedgerSQL = `
		CREATE SCHEMA IF NOT EXISTS supabase_migrations;
		CREATE TABLE IF NOT EXISTS supabase_migrations.schema_migrations (
			version text NOT NULL PRIMARY KEY,
			statements text[],
			name text
		)`

	selectAppliedSQL = `SELECT version, COALESCE(name, '') AS name
		FROM supabase_migrations.schema_migrations
		ORDER BY version`

	insertAppliedSQL = `INSERT INTO supabase_migrations.schema_migrations (version, name, statements)
		VALUES ($1, $2, $3)`
)

type Ledger struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

var _ ports.MigrationLedger = (*Ledger)(nil)

// Open connects to the database at url using lib/pq and verifies the
// connection.
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &domain.OpError{
			Op:   "pgledger.open",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("database url is empty"),
		}
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "pgledger.open",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("connect %s: %w", RedactURL(url), err),
		}
	}
	return db, nil
}

// AppliedMigrations returns the ledger rows ordered by version. A database
// that has never been migrated has no ledger table; that is an empty list.
func (l *Ledger) AppliedMigrations(ctx context.Context) ([]domain.AppliedMigration, error) {
	var rows []domain.AppliedMigration
	if err := l.db.SelectContext(ctx, &rows, selectAppliedSQL); err != nil {
		if IsUndefinedTable(err) {
			return []domain.AppliedMigration{}, nil
		}
		return nil, &domain.OpError{
			Op:   "pgledger.applied",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	if rows == nil {
		rows = []domain.AppliedMigration{}
	}
	return rows, nil
}

// ApplyMigration runs the file's SQL and records it in the ledger inside a
// single transaction.
func (l *Ledger) ApplyMigration(ctx context.Context, file domain.MigrationFile, sql []byte) (err error) {
	version := file.Version()
	if version == "" {
		return &domain.OpError{
			Op:   "pgledger.apply",
			Kind: domain.KindInvalidConfig,
			Path: file.Path,
			Err:  fmt.Errorf("migration %q has no version prefix", file.Name),
		}
	}

	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return applyErr(file, "begin", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, ensureLedgerSQL); err != nil {
		return applyErr(file, "ensure ledger", err)
	}
	if _, err = tx.ExecContext(ctx, string(sql)); err != nil {
		return applyErr(file, "exec", err)
	}
	if _, err = tx.ExecContext(ctx, insertAppliedSQL, version, file.Description(), pq.Array([]string{string(sql)})); err != nil {
		return applyErr(file, "record", err)
	}
	if err = tx.Commit(); err != nil {
		return applyErr(file, "commit", err)
	}
	return nil
}

func applyErr(file domain.MigrationFile, step string, err error) error {
	return &domain.OpError{
		Op:   "pgledger.apply",
		Kind: domain.KindExecution,
		Path: file.Path,
		Err:  fmt.Errorf("%s %s: %w", step, file.Name, err),
	}
}

// IsUndefinedTable reports whether err is a Postgres "relation does not
// exist" error.
func IsUndefinedTable(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) {
		return string(pe.Code) == UndefinedTableCode
	}
	return false
}

// RedactURL hides the password of a postgres URL for logs and errors.
func RedactURL(url string) string {
	schemeEnd := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return url
	}
	userinfo := url[schemeEnd+3 : at]
	colon := strings.Index(userinfo, ":")
	if colon < 0 {
		return url
	}
	return url[:schemeEnd+3] + userinfo[:colon] + ":********" + url[at:]
}
