package ports

import (
	"context"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

// MigrationSource lists local migration files with their checksums, in
// apply order.
type MigrationSource interface {
	ListMigrations(ctx context.Context) ([]domain.MigrationFile, error)
	ReadMigration(file domain.MigrationFile) ([]byte, error)
}

// ChecksumLockStore persists recorded migration checksums.
type ChecksumLockStore interface {
	ReadLock() (domain.ChecksumLock, error)
	WriteLock(lock domain.ChecksumLock) error
}

// MigrationLedger is the remote record of applied migrations.
type MigrationLedger interface {
	AppliedMigrations(ctx context.Context) ([]domain.AppliedMigration, error)
	ApplyMigration(ctx context.Context, file domain.MigrationFile, sql []byte) error
}
