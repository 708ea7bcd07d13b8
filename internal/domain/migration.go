package domain

// ChecksumLock maps a migration file name to its recorded sha256 checksum.
type ChecksumLock map[string]string

// ChecksumStatus classifies a migration against the lock file.
type ChecksumStatus string

const (
	ChecksumOK       ChecksumStatus = "ok"
	ChecksumDrifted  ChecksumStatus = "drifted"
	ChecksumMissing  ChecksumStatus = "missing"
	ChecksumUnlocked ChecksumStatus = "unlocked"
)

// ChecksumResult is the verification outcome for one migration name.
type ChecksumResult struct {
	Name   string         `json:"name"`
	Status ChecksumStatus `json:"status"`
	Locked string         `json:"locked,omitempty"`
	Actual string         `json:"actual,omitempty"`
}

// Failed reports whether the result should fail verification.
// Unlocked files are new work, not drift.
func (r ChecksumResult) Failed() bool {
	return r.Status == ChecksumDrifted || r.Status == ChecksumMissing
}

// AppliedMigration is a row of supabase_migrations.schema_migrations.
type AppliedMigration struct {
	Version string `db:"version" json:"version"`
	Name    string `db:"name" json:"name"`
}

// MigrationStateKind classifies a migration against the remote ledger.
type MigrationStateKind string

const (
	StateApplied MigrationStateKind = "applied"
	StatePending MigrationStateKind = "pending"
	// StateRemoteOnly is a version applied remotely with no local file.
	StateRemoteOnly MigrationStateKind = "remote_only"
)

// MigrationState pairs a version with its local file (if any) and state.
type MigrationState struct {
	Version string             `json:"version"`
	Name    string             `json:"name"`
	State   MigrationStateKind `json:"state"`
	File    *MigrationFile     `json:"file,omitempty"`
}
