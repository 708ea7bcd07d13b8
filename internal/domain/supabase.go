package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSchema is used when a project does not name one.
const DefaultSchema = "public"

// ProjectConfig identifies the Supabase project a workspace targets.
type ProjectConfig struct {
	ProjectRef    string
	DefaultSchema string // optional
}

// Schema returns the configured default schema, or "public".
func (p ProjectConfig) Schema() string {
	if s := strings.TrimSpace(p.DefaultSchema); s != "" {
		return s
	}
	return DefaultSchema
}

// maxIdentifierLen is Postgres' NAMEDATALEN - 1.
const maxIdentifierLen = 63

// ValidateSchema checks the default schema, when set, is a plain Postgres
// identifier: a letter or underscore followed by letters, digits, _ or $.
func (p ProjectConfig) ValidateSchema() error {
	s := strings.TrimSpace(p.DefaultSchema)
	if s == "" {
		return nil
	}
	if len(s) > maxIdentifierLen {
		return &OpError{
			Op:   "project.validate",
			Kind: KindInvalidConfig,
			Err:  &FieldError{Field: "default_schema", Msg: fmt.Sprintf("schema %q is longer than %d bytes", s, maxIdentifierLen)},
		}
	}
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if letter || (i > 0 && (r == '$' || (r >= '0' && r <= '9'))) {
			continue
		}
		return &OpError{
			Op:   "project.validate",
			Kind: KindInvalidConfig,
			Err:  &FieldError{Field: "default_schema", Msg: fmt.Sprintf("schema %q: unexpected character %q", s, r)},
		}
	}
	return nil
}

// Validate requires a project ref made of lowercase letters and digits and
// a valid default schema.
func (p ProjectConfig) Validate() error {
	ref := strings.TrimSpace(p.ProjectRef)
	if ref == "" {
		return &OpError{
			Op:   "project.validate",
			Kind: KindInvalidConfig,
			Err:  errors.New("project ref is required"),
		}
	}
	for _, r := range ref {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return &OpError{
				Op:   "project.validate",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("project ref %q: unexpected character %q", ref, r),
			}
		}
	}
	return p.ValidateSchema()
}

// MigrationFile describes one SQL migration on disk.
type MigrationFile struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Checksum string `json:"checksum,omitempty"`
}

// Version is the leading run of digits in the file name, which is how
// Supabase names migrations (<timestamp>_<description>.sql).
// It returns "" when the name does not start with a digit.
func (m MigrationFile) Version() string {
	i := 0
	for i < len(m.Name) && m.Name[i] >= '0' && m.Name[i] <= '9' {
		i++
	}
	return m.Name[:i]
}

// CompareVersions orders migration versions numerically: a shorter digit run
// sorts first, equal lengths compare lexically. Leading zeros are ignored.
func CompareVersions(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return strings.Compare(a, b)
}

// Description is the part of the name after the version, without extension.
func (m MigrationFile) Description() string {
	rest := strings.TrimPrefix(m.Name, m.Version())
	rest = strings.TrimPrefix(rest, "_")
	return strings.TrimSuffix(rest, ".sql")
}

func (m MigrationFile) HasChecksum() bool {
	return m.Checksum != ""
}

// SchemaSet points at the declarative schema files of the project.
type SchemaSet struct {
	CoreSchemaPath    string
	CatalogSchemaPath string
}

// Paths returns the schema paths keyed by their role.
func (s SchemaSet) Paths() map[string]string {
	return map[string]string{
		"core":    s.CoreSchemaPath,
		"catalog": s.CatalogSchemaPath,
	}
}

// DBScript is a named database task with a shell entry point.
type DBScript struct {
	Name        string `json:"name"`
	EntryPoint  string `json:"entry_point"`
	Description string `json:"description,omitempty"`
}

// FindScript looks a script up by name (case-insensitive).
func FindScript(scripts []DBScript, name string) (DBScript, error) {
	for _, s := range scripts {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return DBScript{}, &OpError{
		Op:   "scripts.find",
		Kind: KindNotFound,
		Err:  fmt.Errorf("script %q: %w", name, ErrNotFound),
	}
}
