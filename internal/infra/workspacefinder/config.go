package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/domain"
)

// LoadConfig loads skill-manager.yaml from the workspace root, applies it on
// top of the defaults, then applies environment overrides. Before reading the
// environment it loads <root>/.env.local and <root>/.env; variables already
// set in the process are never overwritten.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := y.applyTo(&cfg, path); err != nil {
		return cfg, err
	}

	if err := LoadEnvFiles(root); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadenv",
			Kind: domain.KindInvalidConfig,
			Path: root,
			Err:  err,
		}
	}
	applyEnv(&cfg)

	return cfg, nil
}

// LoadEnvFiles loads .env.local then .env from root. godotenv.Load keeps the
// first value it sees, so .env.local wins over .env and the process
// environment wins over both.
func LoadEnvFiles(root string) error {
	for _, name := range []string{".env.local", ".env"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func applyEnv(cfg *domain.Config) {
	if v := strings.TrimSpace(os.Getenv("REDIS_ADDR")); v != "" {
		cfg.Publishing.RedisAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("SUPABASE_PROJECT_REF")); v != "" && cfg.Project.ProjectRef == "" {
		cfg.Project.ProjectRef = v
	}
}

type yamlConfig struct {
	Project struct {
		Ref           string `yaml:"ref"`
		DefaultSchema string `yaml:"default_schema"`
	} `yaml:"project"`

	Schemas struct {
		Core    string `yaml:"core"`
		Catalog string `yaml:"catalog"`
	} `yaml:"schemas"`

	Scripts []struct {
		Name        string `yaml:"name"`
		EntryPoint  string `yaml:"entry_point"`
		Description string `yaml:"description"`
	} `yaml:"scripts"`

	Paths struct {
		SkillsDir     string `yaml:"skills_dir"`
		MigrationsDir string `yaml:"migrations_dir"`
		LockFile      string `yaml:"lock_file"`
	} `yaml:"paths"`

	Database struct {
		URLEnv string `yaml:"url_env"`
	} `yaml:"database"`

	Publishing struct {
		RedisAddr string `yaml:"redis_addr"`
		Channel   string `yaml:"channel"`
	} `yaml:"publishing"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func (y yamlConfig) applyTo(cfg *domain.Config, path string) error {
	cfg.Project.ProjectRef = strings.TrimSpace(y.Project.Ref)
	cfg.Project.DefaultSchema = strings.TrimSpace(y.Project.DefaultSchema)

	setIf(&cfg.Schemas.CoreSchemaPath, y.Schemas.Core)
	setIf(&cfg.Schemas.CatalogSchemaPath, y.Schemas.Catalog)
	setIf(&cfg.Paths.SkillsDir, y.Paths.SkillsDir)
	setIf(&cfg.Paths.MigrationsDir, y.Paths.MigrationsDir)
	setIf(&cfg.Paths.LockFile, y.Paths.LockFile)
	setIf(&cfg.Database.URLEnv, y.Database.URLEnv)
	setIf(&cfg.Publishing.RedisAddr, y.Publishing.RedisAddr)
	setIf(&cfg.Publishing.Channel, y.Publishing.Channel)
	setIf(&cfg.Logging.Level, y.Logging.Level)

	seen := map[string]bool{}
	for i, s := range y.Scripts {
		field := fmt.Sprintf("scripts[%d]", i)
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return invalidField(path, field+".name", "script name is required")
		}
		if strings.TrimSpace(s.EntryPoint) == "" {
			return invalidField(path, field+".entry_point", "entry point is required")
		}
		key := strings.ToLower(name)
		if seen[key] {
			return invalidField(path, field+".name", fmt.Sprintf("duplicate script %q", name))
		}
		seen[key] = true

		cfg.Scripts = append(cfg.Scripts, domain.DBScript{
			Name:        name,
			EntryPoint:  s.EntryPoint,
			Description: strings.TrimSpace(s.Description),
		})
	}
	return nil
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  &domain.FieldError{Field: field, Msg: msg},
	}
}
