package yamlskills

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
	"github.com/artificial-intelligence-first/aao-skeleton/internal/ports"
)

// ManifestFile is the file name that marks a skill directory.
const ManifestFile = "skill.yaml"

type Loader struct {
	skillsDir string
}

type Option func(*Loader)

func WithSkillsDir(dir string) Option {
	return func(l *Loader) { l.skillsDir = dir }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{skillsDir: "agents"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.SkillCatalog = (*Loader)(nil)

// ListSkills walks <root>/<skillsDir> for skill.yaml manifests. Hidden
// directories and node_modules are skipped.
func (l *Loader) ListSkills(root string) ([]domain.SkillRef, error) {
	dir := filepath.Join(root, l.skillsDir)
	if _, err := os.Stat(dir); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlskills.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.SkillRef
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if p != dir && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ManifestFile {
			return nil
		}

		// A broken manifest is still listed; LoadSkill reports its error.
		m, _ := readManifest(p)
		name := strings.TrimSpace(m.Name)
		if name == "" {
			name = filepath.Base(filepath.Dir(p))
		}
		agent := strings.TrimSpace(m.Agent)
		if agent == "" {
			agent = agentFromPath(root, p)
		}
		refs = append(refs, domain.SkillRef{Name: name, Agent: agent, Path: p})
		return nil
	})
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlskills.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Agent != refs[j].Agent {
			return refs[i].Agent < refs[j].Agent
		}
		return refs[i].Name < refs[j].Name
	})
	return refs, nil
}

// LoadSkill parses and validates one manifest. The agent is inferred from
// the path relative to root, as ListSkills does.
func (l *Loader) LoadSkill(root, path string) (domain.Skill, error) {
	m, err := readManifest(path)
	if err != nil {
		return domain.Skill{}, err
	}

	if strings.TrimSpace(m.Name) == "" {
		return domain.Skill{}, invalidField(path, "name", "skill name is required")
	}
	if strings.TrimSpace(m.Entry) == "" {
		return domain.Skill{}, invalidField(path, "entry", "entry is required")
	}
	if filepath.IsAbs(m.Entry) {
		return domain.Skill{}, invalidField(path, "entry", "entry must be relative to the manifest")
	}

	agent := strings.TrimSpace(m.Agent)
	if agent == "" {
		agent = agentFromPath(root, path)
	}

	return domain.Skill{
		Name:        strings.TrimSpace(m.Name),
		Description: strings.TrimSpace(m.Description),
		Version:     strings.TrimSpace(m.Version),
		Agent:       agent,
		Entry:       filepath.Clean(m.Entry),
		Path:        path,
	}, nil
}

type manifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Agent       string `yaml:"agent"`
	Entry       string `yaml:"entry"`
}

func readManifest(path string) (manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return manifest{}, &domain.OpError{
			Op:   "yamlskills.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return manifest{}, &domain.OpError{
			Op:   "yamlskills.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return m, nil
}

// agentFromPath returns the segment after "agents" in path, if any.
func agentFromPath(root, path string) string {
	rel := path
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil {
			rel = r
		}
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "agents" {
			return parts[i+1]
		}
	}
	return ""
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlskills.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  &domain.FieldError{Field: field, Msg: msg},
	}
}
