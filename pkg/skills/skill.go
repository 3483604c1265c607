// Package skills provides the skill catalog model: each skill is a directory
// containing a SKILL.md file whose YAML frontmatter describes a developer
// workflow an AI coding agent can follow. The package handles discovery of
// skills from configured directories and installed bundles.
package skills

// Skill represents a discovered skill with its metadata
type Skill struct {
	Name          string            // Unique name from frontmatter
	Description   string            // Brief description for agent decision-making
	License       string            // Optional license identifier
	Compatibility string            // Optional free-form compatibility note
	Metadata      map[string]string // Optional arbitrary frontmatter metadata, never interpreted
	Directory     string            // Full path to the skill directory
	Path          string            // Full path to the SKILL.md file
	Content       string            // Full content of SKILL.md (body, not frontmatter)
	CharCount     int               // Length of the whole document, frontmatter included
}

// Frontmatter represents the YAML frontmatter schema of SKILL.md files.
// name and description are required; everything else is optional.
type Frontmatter struct {
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	License       string            `yaml:"license,omitempty"`
	Compatibility string            `yaml:"compatibility,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}
