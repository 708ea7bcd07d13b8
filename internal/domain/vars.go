package domain

// Vars is a key/value store used for templating script entry points.
type Vars map[string]string

// Merge merges base and override vars (override wins) and returns a new map.
func Merge(base Vars, override Vars) Vars {
	out := make(Vars, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// ProjectVars exposes the workspace configuration to templates.
func ProjectVars(root string, cfg Config) Vars {
	return Vars{
		"workspace":      root,
		"project_ref":    cfg.Project.ProjectRef,
		"default_schema": cfg.Project.Schema(),
		"migrations_dir": cfg.Paths.MigrationsDir,
		"core_schema":    cfg.Schemas.CoreSchemaPath,
		"catalog_schema": cfg.Schemas.CatalogSchemaPath,
	}
}
