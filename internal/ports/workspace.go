package ports

import "github.com/artificial-intelligence-first/aao-skeleton/internal/domain"

// WorkspaceLocator finds a workspace root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

// WorkspaceInitializer scaffolds a new workspace.
type WorkspaceInitializer interface {
	Init(root string, project domain.ProjectConfig, force bool) error
}
