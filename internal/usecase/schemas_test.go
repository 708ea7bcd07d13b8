package usecase

import (
	"context"
	"testing"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

func TestCheckSchemas(t *testing.T) {
	set := domain.SchemaSet{CoreSchemaPath: "core.sql", CatalogSchemaPath: "catalog.sql"}

	checks, err := NewCheckSchemas(fakeSchemaReader{"core.sql": 120, "catalog.sql": 64}).Execute(context.Background(), set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(checks) != 2 || checks[0].Role != "core" || checks[1].Size != 64 {
		t.Fatalf("unexpected checks: %#v", checks)
	}

	checks, err = NewCheckSchemas(fakeSchemaReader{"core.sql": 0}).Execute(context.Background(), set)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
	if checks[0].Problem != "file is empty" || checks[1].Problem != "file not found" {
		t.Fatalf("unexpected problems: %#v", checks)
	}

	checks, err = NewCheckSchemas(fakeSchemaReader{"core.sql": 1}).Execute(context.Background(), domain.SchemaSet{CoreSchemaPath: "core.sql"})
	if err == nil || checks[1].Problem != "not configured" {
		t.Fatalf("expected unconfigured catalog to fail, got %#v (%v)", checks, err)
	}
}
