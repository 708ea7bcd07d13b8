package fsmigrations

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

const lockHeader = "# Generated by `skill-manager migrations lock`. Do not edit.\n"

// LockStore keeps the checksum lock as a YAML document:
//
//	version: 1
//	migrations:
//	  - name: 20240101000000_init.sql
//	    sha256: ...
type LockStore struct {
	path string
}

func NewLockStore(path string) *LockStore {
	return &LockStore{path: path}
}

var _ ports.ChecksumLockStore = (*LockStore)(nil)

type lockFile struct {
	Version    int         `yaml:"version"`
	Migrations []lockEntry `yaml:"migrations"`
}

type lockEntry struct {
	Name   string `yaml:"name"`
	SHA256 string `yaml:"sha256"`
}

// ReadLock returns an empty lock when the file does not exist yet.
func (s *LockStore) ReadLock() (domain.ChecksumLock, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ChecksumLock{}, nil
		}
		return nil, &domain.OpError{
			Op:   "fsmigrations.lock.read",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	var lf lockFile
	if err := yaml.Unmarshal(b, &lf); err != nil {
		return nil, &domain.OpError{
			Op:   "fsmigrations.lock.read",
			Kind: domain.KindInvalidConfig,
			Path: s.path,
			Err:  err,
		}
	}

	lock := make(domain.ChecksumLock, len(lf.Migrations))
	for _, m := range lf.Migrations {
		lock[m.Name] = m.SHA256
	}
	return lock, nil
}

// WriteLock replaces the lock file. It writes a temp file and renames it so
// a crash never leaves a truncated lock behind.
func (s *LockStore) WriteLock(lock domain.ChecksumLock) error {
	names := make([]string, 0, len(lock))
	for n := range lock {
		names = append(names, n)
	}
	sort.Strings(names)

	lf := lockFile{Version: 1, Migrations: make([]lockEntry, 0, len(names))}
	for _, n := range names {
		lf.Migrations = append(lf.Migrations, lockEntry{Name: n, SHA256: lock[n]})
	}

	b, err := yaml.Marshal(lf)
	if err != nil {
		return &domain.OpError{
			Op:   "fsmigrations.lock.marshal",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &domain.OpError{
			Op:   "fsmigrations.lock.mkdir",
			Kind: domain.KindExecution,
			Path: filepath.Dir(s.path),
			Err:  err,
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append([]byte(lockHeader), b...), 0o644); err != nil {
		return &domain.OpError{
			Op:   "fsmigrations.lock.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "fsmigrations.lock.rename",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	return nil
}
