// Package fsschema reads declarative schema files from the workspace.
package fsschema

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

type Reader struct {
	root string
}

// NewReader resolves relative schema paths against root.
func NewReader(root string) *Reader {
	return &Reader{root: root}
}

var _ ports.SchemaReader = (*Reader)(nil)

func (r *Reader) SchemaSize(path string) (int64, error) {
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.root, p)
	}
	info, err := os.Stat(p)
	if err != nil {
		kind := domain.KindExecution
		if os.IsNotExist(err) {
			kind = domain.KindNotFound
		}
		return 0, &domain.OpError{Op: "fsschema.stat", Kind: kind, Path: p, Err: err}
	}
	if info.IsDir() {
		return 0, &domain.OpError{
			Op:   "fsschema.stat",
			Kind: domain.KindInvalidConfig,
			Path: p,
			Err:  errors.New("schema path is a directory"),
		}
	}
	return info.Size(), nil
}
