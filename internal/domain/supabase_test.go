package domain

import (
	"strings"
	"testing"
)

func TestProjectConfig_SchemaDefaultsToPublic(t *testing.T) {
	if got := (ProjectConfig{ProjectRef: "abc"}).Schema(); got != "public" {
		t.Fatalf("expected public, got %q", got)
	}
	if got := (ProjectConfig{ProjectRef: "abc", DefaultSchema: " catalog "}).Schema(); got != "catalog" {
		t.Fatalf("expected catalog, got %q", got)
	}
}

func TestProjectConfig_Validate(t *testing.T) {
	cases := []struct {
		ref     string
		wantErr bool
	}{
		{"abcdefghij0123456789", false},
		{"local", false},
		{"", true},
		{"   ", true},
		{"Has-Upper", true},
		{"with space", true},
	}
	for _, c := range cases {
		err := ProjectConfig{ProjectRef: c.ref}.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("Validate(%q) err=%v, wantErr=%v", c.ref, err, c.wantErr)
		}
		if err != nil && !IsKind(err, KindInvalidConfig) {
			t.Errorf("Validate(%q) expected KindInvalidConfig, got %v", c.ref, err)
		}
	}
}

func TestMigrationFile_VersionAndDescription(t *testing.T) {
	cases := []struct {
		name    string
		version string
		desc    string
	}{
		{"20240101120000_create_skills.sql", "20240101120000", "create_skills"},
		{"0001_init.sql", "0001", "init"},
		{"seed.sql", "", "seed"},
		{"", "", ""},
	}
	for _, c := range cases {
		m := MigrationFile{Name: c.name}
		if got := m.Version(); got != c.version {
			t.Errorf("Version(%q) = %q, want %q", c.name, got, c.version)
		}
		if got := m.Description(); got != c.desc {
			t.Errorf("Description(%q) = %q, want %q", c.name, got, c.desc)
		}
	}
}

func TestMigrationFile_HasChecksum(t *testing.T) {
	if (MigrationFile{Name: "x.sql"}).HasChecksum() {
		t.Fatal("expected no checksum")
	}
	if !(MigrationFile{Name: "x.sql", Checksum: "ab"}).HasChecksum() {
		t.Fatal("expected checksum")
	}
}

func TestFindScript(t *testing.T) {
	scripts := []DBScript{
		{Name: "seed", EntryPoint: "psql -f seed.sql"},
		{Name: "Reset", EntryPoint: "supabase db reset"},
	}

	s, err := FindScript(scripts, "reset")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.EntryPoint != "supabase db reset" {
		t.Fatalf("unexpected script: %+v", s)
	}

	_, err = FindScript(scripts, "nope")
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestSchemaSet_Paths(t *testing.T) {
	p := DefaultConfig().Schemas.Paths()
	if p["core"] != "supabase/schemas/core.sql" || p["catalog"] != "supabase/schemas/catalog.sql" {
		t.Fatalf("unexpected paths: %v", p)
	}
}

func TestProjectConfig_ValidateSchema(t *testing.T) {
	cases := []struct {
		schema  string
		wantErr bool
	}{
		{"", false},
		{"public", false},
		{"_catalog$v2", false},
		{"My_Schema", false},
		{`my"schema`, true},
		{"2fast", true},
		{"with space", true},
		{"$dollar", true},
		{strings.Repeat("a", 64), true},
	}
	for _, c := range cases {
		err := ProjectConfig{ProjectRef: "abc", DefaultSchema: c.schema}.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("Validate(schema=%q) err=%v, wantErr=%v", c.schema, err, c.wantErr)
		}
		if err != nil && FieldOf(err) != "default_schema" {
			t.Errorf("Validate(schema=%q) expected default_schema field, got %v", c.schema, err)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"20240101000000", "20240102000000", -1},
		{"0002", "2", 0},
		{"9", "9", 0},
	}
	for _, c := range cases {
		if got := CompareVersions(c.a, c.b); got != c.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
