package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureGitignore_CreatesFile(t *testing.T) {
	tmp := t.TempDir()

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}

	s := string(b)
	for _, w := range []string{"# skill-manager", ".skill-manager/", ".env", ".env.local", "supabase/.temp/"} {
		if !strings.Contains(s, w) {
			t.Fatalf("expected .gitignore to contain %q, got:\n%s", w, s)
		}
	}
}

func TestEnsureGitignore_AppendsMissingEntries(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".gitignore")

	existing := "node_modules/\n# skill-manager\n.env"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	s := string(b)

	if !strings.HasPrefix(s, "node_modules/\n") {
		t.Fatalf("expected existing content preserved, got:\n%s", s)
	}
	if strings.Count(s, "# skill-manager") != 1 {
		t.Fatalf("expected 1 header, got:\n%s", s)
	}
	if strings.Count(s, "\n.env\n") != 1 {
		t.Fatalf("expected .env not duplicated, got:\n%s", s)
	}
	if !strings.Contains(s, ".skill-manager/") {
		t.Fatalf("expected missing entry appended, got:\n%s", s)
	}
}

func TestEnsureGitignore_NoopWhenComplete(t *testing.T) {
	tmp := t.TempDir()
	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("first call: %v", err)
	}
	before, _ := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("second call: %v", err)
	}
	after, _ := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if string(before) != string(after) {
		t.Fatalf("expected no change, got:\n%s", after)
	}
}
