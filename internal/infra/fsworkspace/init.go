package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/infra/logger"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

type Initializer struct {
	resolver *domain.VarResolver
}

func NewInitializer() *Initializer {
	return &Initializer{resolver: domain.NewVarResolver()}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init writes the workspace skeleton under root. Existing files are kept
// unless force is set.
func (i *Initializer) Init(root string, project domain.ProjectConfig, force bool) error {
	root = filepath.Clean(root)

	dirs := []string{
		filepath.Join(root, "agents"),
		filepath.Join(root, "supabase", "migrations"),
		filepath.Join(root, "supabase", "schemas"),
		filepath.Join(root, logger.Dir, "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return initErr(d, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return initErr(filepath.Join(root, ".gitignore"), err)
	}

	cfg := domain.DefaultConfig()
	cfg.Project = project
	session := i.resolver.NewSession(domain.ProjectVars(root, cfg))

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := targetName(strings.TrimPrefix(p, "templates/"))
		dst := filepath.Join(root, filepath.FromSlash(rel))

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return initErr(dst, err)
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return initErr(p, err)
		}
		if strings.HasSuffix(p, ".tmpl") {
			rendered, err := session.ResolveString(string(b))
			if err != nil {
				return err
			}
			b = []byte(rendered)
		}

		mode := fs.FileMode(0o644)
		if strings.HasSuffix(rel, ".sh") {
			mode = 0o755
		}
		if err := os.WriteFile(dst, b, mode); err != nil {
			return initErr(dst, err)
		}
		return nil
	})
}

func targetName(rel string) string {
	rel = strings.TrimSuffix(rel, ".tmpl")
	if rel == "env.example" {
		return ".env.example"
	}
	return rel
}

func initErr(path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

func ensureGitignore(root string) error {
	const header = "# skill-manager"
	entries := []string{
		logger.Dir + "/",
		".env",
		".env.local",
		"supabase/.temp/",
		"*.lock.tmp",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
