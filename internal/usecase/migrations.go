package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

type ListMigrations struct {
	source ports.MigrationSource
}

func NewListMigrations(source ports.MigrationSource) *ListMigrations {
	return &ListMigrations{source: source}
}

func (uc *ListMigrations) Execute(ctx context.Context) ([]domain.MigrationFile, error) {
	return uc.source.ListMigrations(ctx)
}

type LockMigrations struct {
	source ports.MigrationSource
	store  ports.ChecksumLockStore
	log    *zap.Logger
}

func NewLockMigrations(source ports.MigrationSource, store ports.ChecksumLockStore, opts ...Option) *LockMigrations {
	o := applyOptions(opts)
	return &LockMigrations{source: source, store: store, log: o.log}
}

// Execute records the checksum of every local migration, replacing the
// previous lock.
func (uc *LockMigrations) Execute(ctx context.Context) (domain.ChecksumLock, error) {
	files, err := uc.source.ListMigrations(ctx)
	if err != nil {
		return nil, err
	}

	lock := make(domain.ChecksumLock, len(files))
	for _, f := range files {
		if !f.HasChecksum() {
			return nil, &domain.OpError{
				Op:   "migrations.lock",
				Kind: domain.KindInvalidConfig,
				Path: f.Path,
				Err:  fmt.Errorf("migration %q has no checksum", f.Name),
			}
		}
		lock[f.Name] = f.Checksum
	}
	if err := uc.store.WriteLock(lock); err != nil {
		return nil, err
	}

	uc.log.Info("migrations.locked", zap.Int("count", len(lock)))
	return lock, nil
}

type VerifyMigrations struct {
	source ports.MigrationSource
	store  ports.ChecksumLockStore
}

func NewVerifyMigrations(source ports.MigrationSource, store ports.ChecksumLockStore) *VerifyMigrations {
	return &VerifyMigrations{source: source, store: store}
}

// Execute compares local checksums with the lock. Results are sorted by
// name. A KindChecksumMismatch error is returned alongside the results when
// any locked file drifted or disappeared.
func (uc *VerifyMigrations) Execute(ctx context.Context) ([]domain.ChecksumResult, error) {
	files, err := uc.source.ListMigrations(ctx)
	if err != nil {
		return nil, err
	}
	lock, err := uc.store.ReadLock()
	if err != nil {
		return nil, err
	}

	results := make([]domain.ChecksumResult, 0, len(files)+len(lock))
	local := make(map[string]struct{}, len(files))

	for _, f := range files {
		local[f.Name] = struct{}{}
		locked, ok := lock[f.Name]
		r := domain.ChecksumResult{Name: f.Name, Locked: locked, Actual: f.Checksum}
		switch {
		case !ok:
			r.Status = domain.ChecksumUnlocked
		case locked != f.Checksum:
			r.Status = domain.ChecksumDrifted
		default:
			r.Status = domain.ChecksumOK
		}
		results = append(results, r)
	}
	for name, sum := range lock {
		if _, ok := local[name]; !ok {
			results = append(results, domain.ChecksumResult{
				Name:   name,
				Status: domain.ChecksumMissing,
				Locked: sum,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return results, &domain.OpError{
			Op:   "migrations.verify",
			Kind: domain.KindChecksumMismatch,
			Err:  fmt.Errorf("%d migration(s) do not match the lock: %w", failed, domain.ErrChecksumMismatch),
		}
	}
	return results, nil
}

type MigrationStatus struct {
	source ports.MigrationSource
	ledger ports.MigrationLedger
}

func NewMigrationStatus(source ports.MigrationSource, ledger ports.MigrationLedger) *MigrationStatus {
	return &MigrationStatus{source: source, ledger: ledger}
}

// Execute merges local files with the remote ledger, ordered by version.
func (uc *MigrationStatus) Execute(ctx context.Context) ([]domain.MigrationState, error) {
	files, err := uc.source.ListMigrations(ctx)
	if err != nil {
		return nil, err
	}
	applied, err := uc.ledger.AppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	return mergeStates(files, applied)
}

func mergeStates(files []domain.MigrationFile, applied []domain.AppliedMigration) ([]domain.MigrationState, error) {
	remote := make(map[string]domain.AppliedMigration, len(applied))
	for _, a := range applied {
		remote[a.Version] = a
	}

	states := make([]domain.MigrationState, 0, len(files)+len(applied))
	local := make(map[string]struct{}, len(files))

	for i := range files {
		f := files[i]
		v := f.Version()
		if v == "" {
			return nil, &domain.OpError{
				Op:   "migrations.status",
				Kind: domain.KindInvalidConfig,
				Path: f.Path,
				Err:  fmt.Errorf("migration %q has no version prefix: %w", f.Name, domain.ErrInvalidConfig),
			}
		}
		if _, dup := local[v]; dup {
			return nil, &domain.OpError{
				Op:   "migrations.status",
				Kind: domain.KindConflict,
				Path: f.Path,
				Err:  fmt.Errorf("duplicate migration version %s", v),
			}
		}
		local[v] = struct{}{}

		st := domain.StatePending
		if _, ok := remote[v]; ok {
			st = domain.StateApplied
		}
		states = append(states, domain.MigrationState{Version: v, Name: f.Description(), State: st, File: &f})
	}

	for _, a := range applied {
		if _, ok := local[a.Version]; !ok {
			states = append(states, domain.MigrationState{Version: a.Version, Name: a.Name, State: domain.StateRemoteOnly})
		}
	}

	sort.SliceStable(states, func(i, j int) bool {
		return domain.CompareVersions(states[i].Version, states[j].Version) < 0
	})
	return states, nil
}

// PushOptions controls PushMigrations.
type PushOptions struct {
	DryRun bool

	// IncludeAll applies pending migrations older than the newest applied
	// version instead of refusing.
	IncludeAll bool
}

type PushMigrations struct {
	source ports.MigrationSource
	ledger ports.MigrationLedger
	verify *VerifyMigrations
	log    *zap.Logger
}

// NewPushMigrations builds the use case. When verify is non-nil, checksum
// drift blocks the push.
func NewPushMigrations(source ports.MigrationSource, ledger ports.MigrationLedger, verify *VerifyMigrations, opts ...Option) *PushMigrations {
	o := applyOptions(opts)
	return &PushMigrations{source: source, ledger: ledger, verify: verify, log: o.log}
}

// Execute applies pending migrations in version order, stopping at the first
// failure. It returns the migrations that were (or, on dry run, would be)
// applied.
func (uc *PushMigrations) Execute(ctx context.Context, opts PushOptions) ([]domain.MigrationFile, error) {
	if uc.verify != nil {
		if _, err := uc.verify.Execute(ctx); err != nil {
			return nil, err
		}
	}

	files, err := uc.source.ListMigrations(ctx)
	if err != nil {
		return nil, err
	}
	applied, err := uc.ledger.AppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	states, err := mergeStates(files, applied)
	if err != nil {
		return nil, err
	}

	var (
		pending []domain.MigrationFile
		latest  string
	)
	for _, s := range states {
		switch s.State {
		case domain.StateRemoteOnly:
			return nil, &domain.OpError{
				Op:   "migrations.push",
				Kind: domain.KindConflict,
				Err:  fmt.Errorf("remote migration %s has no local file; pull or restore it first", s.Version),
			}
		case domain.StateApplied:
			latest = s.Version
		case domain.StatePending:
			pending = append(pending, *s.File)
		}
	}

	if !opts.IncludeAll {
		for _, f := range pending {
			if domain.CompareVersions(f.Version(), latest) < 0 {
				return nil, &domain.OpError{
					Op:   "migrations.push",
					Kind: domain.KindConflict,
					Path: f.Path,
					Err:  fmt.Errorf("pending migration %s is older than last applied %s", f.Version(), latest),
				}
			}
		}
	}

	if opts.DryRun {
		return pending, nil
	}

	done := make([]domain.MigrationFile, 0, len(pending))
	for _, f := range pending {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		sql, err := uc.source.ReadMigration(f)
		if err != nil {
			return done, err
		}
		if err := uc.ledger.ApplyMigration(ctx, f, sql); err != nil {
			uc.log.Error("migration.failed", zap.String("name", f.Name), zap.Error(err))
			return done, err
		}
		uc.log.Info("migration.applied", zap.String("name", f.Name), zap.String("version", f.Version()))
		done = append(done, f)
	}
	return done, nil
}
