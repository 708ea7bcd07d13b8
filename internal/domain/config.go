package domain

// Config is the workspace configuration loaded from skill-manager.yaml.
type Config struct {
	Project    ProjectConfig
	Schemas    SchemaSet
	Scripts    []DBScript
	Paths      PathsConfig
	Database   DatabaseConfig
	Publishing PublishingConfig
	Logging    LoggingConfig
}

type PathsConfig struct {
	SkillsDir     string
	MigrationsDir string
	LockFile      string
}

type DatabaseConfig struct {
	// URLEnv names the environment variable holding the Postgres URL.
	URLEnv string
}

type PublishingConfig struct {
	RedisAddr string
	Channel   string
}

type LoggingConfig struct {
	Level string
}

// DefaultConfig mirrors the layout produced by `skill-manager init`.
func DefaultConfig() Config {
	return Config{
		Schemas: SchemaSet{
			CoreSchemaPath:    "supabase/schemas/core.sql",
			CatalogSchemaPath: "supabase/schemas/catalog.sql",
		},
		Paths: PathsConfig{
			SkillsDir:     "agents",
			MigrationsDir: "supabase/migrations",
			LockFile:      "supabase/migrations.lock",
		},
		Database: DatabaseConfig{
			URLEnv: "SUPABASE_DB_URL",
		},
		Publishing: PublishingConfig{
			RedisAddr: "localhost:6379",
			Channel:   "skills:content-publishing",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
