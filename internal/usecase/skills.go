package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

type ListSkills struct {
	catalog ports.SkillCatalog
}

func NewListSkills(catalog ports.SkillCatalog) *ListSkills {
	return &ListSkills{catalog: catalog}
}

func (uc *ListSkills) Execute(ctx context.Context, root string) ([]domain.SkillRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return uc.catalog.ListSkills(root)
}

type ValidateSkills struct {
	catalog ports.SkillCatalog
	log     *zap.Logger
}

func NewValidateSkills(catalog ports.SkillCatalog, opts ...Option) *ValidateSkills {
	o := applyOptions(opts)
	return &ValidateSkills{catalog: catalog, log: o.log}
}

// Execute loads every manifest under root and reports problems as issues.
// Only discovery and I/O failures are returned as errors.
func (uc *ValidateSkills) Execute(ctx context.Context, root string) ([]domain.SkillIssue, error) {
	refs, err := uc.catalog.ListSkills(root)
	if err != nil {
		return nil, err
	}

	var issues []domain.SkillIssue
	seen := make(map[string]string, len(refs))

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		skill, err := uc.catalog.LoadSkill(root, ref.Path)
		if err != nil {
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				return nil, err
			}
			issues = append(issues, domain.SkillIssue{
				Skill:   ref.Name,
				Path:    ref.Path,
				Field:   domain.FieldOf(err),
				Message: err.Error(),
			})
			continue
		}

		key := skill.Agent + "/" + strings.ToLower(skill.Name)
		if prev, ok := seen[key]; ok {
			issues = append(issues, domain.SkillIssue{
				Skill:   skill.Name,
				Path:    skill.Path,
				Field:   "name",
				Message: "duplicate skill name (also defined in " + prev + ")",
			})
		} else {
			seen[key] = skill.Path
		}

		entry := filepath.Join(filepath.Dir(skill.Path), skill.Entry)
		if _, err := os.Stat(entry); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, &domain.OpError{Op: "skills.validate", Kind: domain.KindExecution, Path: entry, Err: err}
			}
			issues = append(issues, domain.SkillIssue{
				Skill:   skill.Name,
				Path:    skill.Path,
				Field:   "entry",
				Message: "entry file not found: " + skill.Entry,
			})
		}
	}

	uc.log.Debug("skills.validated",
		zap.Int("skills", len(refs)),
		zap.Int("issues", len(issues)),
	)
	return issues, nil
}
