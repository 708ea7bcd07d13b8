// Package domain contains the core model for skill-manager: skills, the
// content-publishing payload, and the Supabase project shapes (project
// reference, migration files, schema sets, DB scripts).
//
// The domain does not depend on YAML parsing, database drivers, Redis or the
// filesystem. Infra adapters map into/from these types.
package domain
