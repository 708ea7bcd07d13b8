package usecase

import (
	"context"
	"io"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

type fakeCatalog struct {
	refs   []domain.SkillRef
	skills map[string]domain.Skill
	errs   map[string]error
}

func (f fakeCatalog) ListSkills(string) ([]domain.SkillRef, error) { return f.refs, nil }

func (f fakeCatalog) LoadSkill(_, path string) (domain.Skill, error) {
	if err, ok := f.errs[path]; ok {
		return domain.Skill{}, err
	}
	return f.skills[path], nil
}

type fakeSource struct {
	files []domain.MigrationFile
	sql   map[string][]byte
}

func (f fakeSource) ListMigrations(ctx context.Context) ([]domain.MigrationFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.files, nil
}

func (f fakeSource) ReadMigration(file domain.MigrationFile) ([]byte, error) {
	return f.sql[file.Name], nil
}

type fakeLockStore struct {
	lock    domain.ChecksumLock
	written domain.ChecksumLock
}

func (f *fakeLockStore) ReadLock() (domain.ChecksumLock, error) { return f.lock, nil }

func (f *fakeLockStore) WriteLock(lock domain.ChecksumLock) error {
	f.written = lock
	return nil
}

type fakeLedger struct {
	applied []domain.AppliedMigration
	calls   []string
	failOn  string
	err     error
}

func (f *fakeLedger) AppliedMigrations(context.Context) ([]domain.AppliedMigration, error) {
	return f.applied, nil
}

func (f *fakeLedger) ApplyMigration(_ context.Context, file domain.MigrationFile, _ []byte) error {
	if file.Name == f.failOn {
		return f.err
	}
	f.calls = append(f.calls, file.Name)
	return nil
}

type fakeRunner struct {
	script domain.DBScript
	env    domain.Vars
	err    error
}

func (f *fakeRunner) RunScript(_ context.Context, s domain.DBScript, env domain.Vars, _, _ io.Writer) error {
	f.script = s
	f.env = env
	return f.err
}

type fakePublisher struct {
	got       domain.PublishedPayload
	calls     int
	receivers int64
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, msg domain.PublishedPayload) (int64, error) {
	f.calls++
	f.got = msg
	return f.receivers, f.err
}

type fakeSchemaReader map[string]int64

func (f fakeSchemaReader) SchemaSize(path string) (int64, error) {
	n, ok := f[path]
	if !ok {
		return 0, &domain.OpError{Op: "fake.stat", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return n, nil
}

type fakeInitializer struct {
	root    string
	project domain.ProjectConfig
	force   bool
}

func (f *fakeInitializer) Init(root string, project domain.ProjectConfig, force bool) error {
	f.root, f.project, f.force = root, project, force
	return nil
}
