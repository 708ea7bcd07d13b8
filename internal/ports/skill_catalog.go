package ports

import "github.com/artificial-intelligence-first/aao-skeleton/internal/domain"

// SkillCatalog discovers and loads skill manifests.
type SkillCatalog interface {
	ListSkills(root string) ([]domain.SkillRef, error)
	LoadSkill(root, path string) (domain.Skill, error)
}
