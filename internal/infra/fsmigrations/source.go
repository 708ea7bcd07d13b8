// Package fsmigrations reads Supabase migration files from disk and keeps
// their recorded checksums in a lock file next to them.
package fsmigrations

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

type Source struct {
	dir string
}

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

var _ ports.MigrationSource = (*Source)(nil)

// ListMigrations returns every *.sql file in the migrations directory,
// in version order (ties by name), each with the sha256 of its contents.
// A missing directory yields an empty list.
func (s *Source) ListMigrations(ctx context.Context) ([]domain.MigrationFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.MigrationFile{}, nil
		}
		return nil, &domain.OpError{
			Op:   "fsmigrations.list",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	files := make([]domain.MigrationFile, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".sql") {
			continue
		}

		p := filepath.Join(s.dir, e.Name())
		sum, err := Checksum(p)
		if err != nil {
			return nil, err
		}
		files = append(files, domain.MigrationFile{
			Name:     e.Name(),
			Path:     p,
			Checksum: sum,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if c := domain.CompareVersions(files[i].Version(), files[j].Version()); c != 0 {
			return c < 0
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func (s *Source) ReadMigration(file domain.MigrationFile) ([]byte, error) {
	b, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "fsmigrations.read",
			Kind: domain.KindNotFound,
			Path: file.Path,
			Err:  err,
		}
	}
	return b, nil
}

// Checksum returns the hex sha256 of the file at path.
func Checksum(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.OpError{
			Op:   "fsmigrations.checksum",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
