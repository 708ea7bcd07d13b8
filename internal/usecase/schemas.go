package usecase

import (
	"context"
	"fmt"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

// SchemaCheck is the outcome for one declared schema file.
type SchemaCheck struct {
	Role    string `json:"role"`
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Problem string `json:"problem,omitempty"`
}

func (c SchemaCheck) OK() bool { return c.Problem == "" }

type CheckSchemas struct {
	reader ports.SchemaReader
}

func NewCheckSchemas(reader ports.SchemaReader) *CheckSchemas {
	return &CheckSchemas{reader: reader}
}

// Execute checks the core schema then the catalog schema. Missing, empty or
// undeclared files are reported and yield a KindInvalidConfig error.
func (uc *CheckSchemas) Execute(ctx context.Context, set domain.SchemaSet) ([]SchemaCheck, error) {
	paths := set.Paths()
	checks := make([]SchemaCheck, 0, len(paths))
	bad := 0

	for _, role := range []string{"core", "catalog"} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c := SchemaCheck{Role: role, Path: paths[role]}
		if c.Path == "" {
			c.Problem = "not configured"
		} else {
			size, err := uc.reader.SchemaSize(c.Path)
			switch {
			case domain.IsKind(err, domain.KindNotFound):
				c.Problem = "file not found"
			case domain.IsKind(err, domain.KindInvalidConfig):
				c.Problem = "not a regular file"
			case err != nil:
				return nil, err
			case size == 0:
				c.Problem = "file is empty"
			}
			c.Size = size
		}
		if !c.OK() {
			bad++
		}
		checks = append(checks, c)
	}

	if bad > 0 {
		return checks, &domain.OpError{
			Op:   "schemas.check",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%d schema file(s) failed the check: %w", bad, domain.ErrInvalidConfig),
		}
	}
	return checks, nil
}
