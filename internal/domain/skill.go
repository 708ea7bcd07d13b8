package domain

// Skill is a unit of agent tooling described by a skill.yaml manifest.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`

	// Agent is the owning agent, inferred from agents/<agent>/... when the
	// manifest does not set it.
	Agent string `json:"agent,omitempty"`

	// Entry is the skill's source entry point, relative to the manifest.
	Entry string `json:"entry"`

	// Path is the manifest path on disk.
	Path string `json:"path"`
}

// SkillRef is a lightweight reference to a manifest on disk.
type SkillRef struct {
	Name  string `json:"name"`
	Agent string `json:"agent,omitempty"`
	Path  string `json:"path"`
}

// SkillIssue is one problem found while validating a skill.
type SkillIssue struct {
	Skill   string `json:"skill"`
	Path    string `json:"path"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}
