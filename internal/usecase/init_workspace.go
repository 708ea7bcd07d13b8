package usecase

import (
	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute validates the project reference, when given, and the default
// schema, then scaffolds root.
func (uc *InitWorkspace) Execute(root string, project domain.ProjectConfig, force bool) error {
	validate := project.ValidateSchema
	if project.ProjectRef != "" {
		validate = project.Validate
	}
	if err := validate(); err != nil {
		return err
	}
	return uc.initializer.Init(root, project, force)
}
