package usecase

import (
	"context"
	"testing"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

func scriptConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Project = domain.ProjectConfig{ProjectRef: "abcdefghijklmnopqrst"}
	cfg.Scripts = []domain.DBScript{
		{Name: "schemas", EntryPoint: "sh scripts/apply.sh {{core_schema}}"},
		{Name: "seed", EntryPoint: "psql -c 'select 1' --set=run={{$uuid}}"},
		{Name: "bad", EntryPoint: "sh {{missing}}"},
	}
	return cfg
}

func TestRunScript_ResolvesEntryAndEnv(t *testing.T) {
	runner := &fakeRunner{}
	uc := NewRunScript(runner)

	err := uc.Execute(context.Background(), ScriptRequest{
		Root:   "/ws",
		Config: scriptConfig(),
		Name:   "SCHEMAS",
		Args:   []string{"--schema", "{{default_schema}}", "it's"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `sh scripts/apply.sh supabase/schemas/core.sql --schema public 'it'\''s'`
	if runner.script.EntryPoint != want {
		t.Fatalf("expected entry %q, got %q", want, runner.script.EntryPoint)
	}
	if runner.env["PROJECT_REF"] != "abcdefghijklmnopqrst" || runner.env["WORKSPACE"] != "/ws" {
		t.Fatalf("unexpected env: %#v", runner.env)
	}
	if runner.env["CATALOG_SCHEMA"] != "supabase/schemas/catalog.sql" {
		t.Fatalf("unexpected env: %#v", runner.env)
	}
}

func TestRunScript_UsesInjectedUUID(t *testing.T) {
	runner := &fakeRunner{}
	uc := NewRunScript(runner, WithIDGenerator(func() (string, error) { return "fixed-id", nil }))

	if err := uc.Execute(context.Background(), ScriptRequest{Root: "/ws", Config: scriptConfig(), Name: "seed"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.script.EntryPoint != "psql -c 'select 1' --set=run=fixed-id" {
		t.Fatalf("unexpected entry: %q", runner.script.EntryPoint)
	}
}

func TestRunScript_Errors(t *testing.T) {
	uc := NewRunScript(&fakeRunner{})

	err := uc.Execute(context.Background(), ScriptRequest{Config: scriptConfig(), Name: "nope"})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}

	err = uc.Execute(context.Background(), ScriptRequest{Config: scriptConfig(), Name: "bad"})
	if !domain.IsKind(err, domain.KindMissingVar) {
		t.Fatalf("expected KindMissingVar, got %v", err)
	}
}

func TestShellQuote(t *testing.T) {
	tests := map[string]string{
		"plain":     "plain",
		"a/b.sql":   "a/b.sql",
		"":          "''",
		"two words": "'two words'",
		"$HOME":     "'$HOME'",
		"it's":      `'it'\''s'`,
	}
	for in, want := range tests {
		if got := shellQuote(in); got != want {
			t.Fatalf("shellQuote(%q) = %q, want %q", in, got, want)
		}
	}
}
