// Package builtin ships the default skill bundle embedded in the binary,
// described by a manifest, and installs it into a repository's skill tree.
package builtin

import (
	"embed"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

//go:embed manifest.yaml
var manifestRaw []byte

//go:embed skills
var skillFS embed.FS

// ManifestEntry describes one bundled skill
type ManifestEntry struct {
	Name     string   `yaml:"name"`
	Dir      string   `yaml:"dir"`
	Priority int      `yaml:"priority"`
	Tags     []string `yaml:"tags,omitempty"`
}

// Manifest lists the bundled skills
type Manifest struct {
	Skills []ManifestEntry `yaml:"skills"`
}

// Skill is a bundled skill with its manifest entry and raw document
type Skill struct {
	Entry   ManifestEntry
	Content string
}

// LoadManifest parses the embedded manifest
func LoadManifest() (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(manifestRaw, &manifest); err != nil {
		return nil, errors.Wrap(err, "failed to parse builtin skills manifest")
	}
	return &manifest, nil
}

// LoadSkills loads all bundled skill documents, sorted by priority
func LoadSkills(manifest *Manifest) ([]Skill, error) {
	bundled := make([]Skill, 0, len(manifest.Skills))

	for _, entry := range manifest.Skills {
		content, err := skillFS.ReadFile(filepath.ToSlash(filepath.Join("skills", entry.Dir, skills.SkillFileName)))
		if err != nil {
			return nil, errors.Wrapf(err, "skill document not embedded for '%s'", entry.Name)
		}
		bundled = append(bundled, Skill{
			Entry:   entry,
			Content: string(content),
		})
	}

	sort.Slice(bundled, func(i, j int) bool {
		return bundled[i].Entry.Priority < bundled[j].Entry.Priority
	})

	return bundled, nil
}

// Install writes the bundled skills into rootDir/skills. Existing skill
// directories are skipped unless force is set. The number of installed
// skills is returned.
func Install(rootDir string, force bool) (int, error) {
	manifest, err := LoadManifest()
	if err != nil {
		return 0, err
	}

	bundled, err := LoadSkills(manifest)
	if err != nil {
		return 0, err
	}

	installed := 0
	for _, skill := range bundled {
		skillDir := filepath.Join(rootDir, "skills", skill.Entry.Dir)
		skillPath := filepath.Join(skillDir, skills.SkillFileName)

		if _, err := os.Stat(skillPath); err == nil && !force {
			continue
		}

		if err := os.MkdirAll(skillDir, 0o755); err != nil {
			return installed, errors.Wrapf(err, "failed to create %s", skillDir)
		}
		if err := os.WriteFile(skillPath, []byte(skill.Content), 0o644); err != nil {
			return installed, errors.Wrapf(err, "failed to write %s", skillPath)
		}

		installed++
	}

	return installed, nil
}
