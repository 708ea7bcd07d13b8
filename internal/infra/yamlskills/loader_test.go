package yamlskills

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestListSkills_WalksAgentsTree(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "agents", "note-agent", "tools", "skills", "content-publishing", ManifestFile),
		"name: content-publishing\nentry: src/types.ts\n")
	writeManifest(t, filepath.Join(root, "agents", "supabase-agent", "tools", "skills", "db-admin", ManifestFile),
		"entry: main.ts\n")
	writeManifest(t, filepath.Join(root, "agents", "note-agent", "node_modules", "x", ManifestFile),
		"name: vendored\nentry: x.ts\n")
	writeManifest(t, filepath.Join(root, "agents", ".cache", ManifestFile),
		"name: hidden\nentry: x.ts\n")

	refs, err := NewLoader().ListSkills(root)
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 skills, got %d: %+v", len(refs), refs)
	}
	if refs[0].Name != "content-publishing" || refs[0].Agent != "note-agent" {
		t.Fatalf("unexpected first ref: %+v", refs[0])
	}
	// name falls back to the directory name
	if refs[1].Name != "db-admin" || refs[1].Agent != "supabase-agent" {
		t.Fatalf("unexpected second ref: %+v", refs[1])
	}
}

func TestListSkills_MissingDir(t *testing.T) {
	_, err := NewLoader(WithSkillsDir("skills")).ListSkills(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLoadSkill_Valid(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "agents", "note-agent", "tools", "skills", "content-publishing", ManifestFile)
	writeManifest(t, p, `
name: content-publishing
description: Publish notes
version: 0.1.0
entry: ./src/types.ts
`)

	s, err := NewLoader().LoadSkill(root, p)
	if err != nil {
		t.Fatalf("LoadSkill: %v", err)
	}
	if s.Name != "content-publishing" || s.Agent != "note-agent" || s.Entry != "src/types.ts" || s.Version != "0.1.0" {
		t.Fatalf("unexpected skill: %+v", s)
	}
}

func TestLoadSkill_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		field   string
	}{
		{"no name", "entry: a.ts\n", "name"},
		{"no entry", "name: x\n", "entry"},
		{"absolute entry", "name: x\nentry: /etc/passwd\n", "entry"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), ManifestFile)
			writeManifest(t, p, c.content)
			_, err := NewLoader().LoadSkill("", p)
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("expected invalid config, got %v", err)
			}
			if got := domain.FieldOf(err); got != c.field {
				t.Fatalf("expected field %s, got %q (%v)", c.field, got, err)
			}
		})
	}
}

func TestLoadSkill_MalformedYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), ManifestFile)
	writeManifest(t, p, "name: [\n")
	_, err := NewLoader().LoadSkill("", p)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestAgentFromPath(t *testing.T) {
	cases := map[string]string{
		"agents/note-agent/tools/skills/x/skill.yaml": "note-agent",
		"skills/x/skill.yaml":                         "",
		"agents":                                      "",
	}
	for in, want := range cases {
		if got := agentFromPath("", filepath.FromSlash(in)); got != want {
			t.Errorf("agentFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadSkill_AgentIgnoresAncestorsOfRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "agents", "proj")
	p := filepath.Join(root, "agents", "note-agent", "tools", "skills", "content-publishing", ManifestFile)
	writeManifest(t, p, "name: content-publishing\nentry: src/types.ts\n")

	l := NewLoader()
	refs, err := l.ListSkills(root)
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	s, err := l.LoadSkill(root, p)
	if err != nil {
		t.Fatalf("LoadSkill: %v", err)
	}
	if len(refs) != 1 || refs[0].Agent != "note-agent" || s.Agent != "note-agent" {
		t.Fatalf("expected note-agent from both, got list=%+v load=%q", refs, s.Agent)
	}
}
