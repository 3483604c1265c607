package skills

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// SkillFileName is the canonical document name inside a skill directory.
const SkillFileName = "SKILL.md"

// Discovery handles skill discovery from configured directories
type Discovery struct {
	skillDirs      []string
	bundleDirs     []bundleDirConfig
	ignorePatterns []string
}

// bundleDirConfig represents an installed bundle directory with its prefix
type bundleDirConfig struct {
	dir    string
	prefix string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSkillDirs sets custom skill directories
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.skillDirs = dirs
		return nil
	}
}

// WithIgnorePatterns sets doublestar glob patterns matched against skill
// directory names relative to their search root. Matching directories are
// skipped during discovery.
func WithIgnorePatterns(patterns ...string) Option {
	return func(d *Discovery) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return errors.Errorf("invalid ignore pattern %q", p)
			}
		}
		d.ignorePatterns = patterns
		return nil
	}
}

// WithDefaultDirs initializes with default skill directories
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.skillDirs = []string{
			"./skills",                                    // Repo catalog (highest precedence)
			"./.skillctl/skills",                          // Repo-local additions
			filepath.Join(homeDir, ".skillctl", "skills"), // User-global
		}

		d.bundleDirs = []bundleDirConfig{}
		d.addBundleDirs("./.skillctl/bundles")
		d.addBundleDirs(filepath.Join(homeDir, ".skillctl", "bundles"))

		return nil
	}
}

// addBundleDirs scans a bundles directory and adds all bundle skill directories.
// Supports nested org/repo directory structure.
func (d *Discovery) addBundleDirs(bundlesDir string) {
	_ = filepath.Walk(bundlesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}

		skillsDir := filepath.Join(path, "skills")
		if _, err := os.Stat(skillsDir); err != nil {
			return nil
		}

		relPath, err := filepath.Rel(bundlesDir, path)
		if err != nil {
			return nil
		}

		bundleName := filepath.ToSlash(relPath)
		d.bundleDirs = append(d.bundleDirs, bundleDirConfig{
			dir:    skillsDir,
			prefix: bundleName + "/",
		})

		return filepath.SkipDir
	})
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		if err := WithDefaultDirs()(d); err != nil {
			return nil, err
		}
		return d, nil
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if len(d.skillDirs) == 0 && len(d.bundleDirs) == 0 {
		if err := WithDefaultDirs()(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// DiscoverSkills finds all available skills from configured directories.
// Earlier directories win on name collision.
func (d *Discovery) DiscoverSkills() (map[string]*Skill, error) {
	skills := make(map[string]*Skill)

	for _, dir := range d.skillDirs {
		d.discoverSkillsFromDir(dir, "", skills)
	}

	for _, bundleDir := range d.bundleDirs {
		d.discoverSkillsFromDir(bundleDir.dir, bundleDir.prefix, skills)
	}

	return skills, nil
}

// discoverSkillsFromDir discovers skills from a directory with optional name prefix
func (d *Discovery) discoverSkillsFromDir(dir, prefix string, skills map[string]*Skill) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if d.ignored(entry.Name()) {
			continue
		}

		entryPath := filepath.Join(dir, entry.Name())

		// Stat rather than entry.IsDir so symlinked skill dirs work
		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		skillPath := filepath.Join(entryPath, SkillFileName)
		skill, err := LoadSkill(skillPath)
		if err != nil {
			continue
		}

		skillName := skill.Name
		if prefix != "" {
			skillName = prefix + skill.Name
		}

		if _, exists := skills[skillName]; !exists {
			skill.Name = skillName
			skill.Directory = entryPath
			skills[skillName] = skill
		}
	}
}

func (d *Discovery) ignored(name string) bool {
	for _, pattern := range d.ignorePatterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// GetSkill returns a specific skill by name
func (d *Discovery) GetSkill(name string) (*Skill, error) {
	skills, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	skill, exists := skills[name]
	if !exists {
		return nil, errors.Errorf("skill '%s' not found", name)
	}

	return skill, nil
}

// ListSkillNames returns the names of all available skills
func (d *Discovery) ListSkillNames() ([]string, error) {
	skills, err := d.DiscoverSkills()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}

	return names, nil
}

// LoadSkill loads a single skill from its SKILL.md file
func LoadSkill(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	fm, err := ParseFrontmatter(content)
	if err != nil {
		return nil, err
	}

	if fm.Name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if fm.Description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	return &Skill{
		Name:          fm.Name,
		Description:   fm.Description,
		License:       fm.License,
		Compatibility: fm.Compatibility,
		Metadata:      fm.Metadata,
		Path:          path,
		Content:       ExtractBody(string(content)),
		CharCount:     len(content),
	}, nil
}

// ParseFrontmatter parses the YAML frontmatter of a SKILL.md document
func ParseFrontmatter(content []byte) (*Frontmatter, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	fm := &Frontmatter{}
	fm.Name, _ = metaData["name"].(string)
	fm.Description, _ = metaData["description"].(string)
	fm.License, _ = metaData["license"].(string)
	fm.Compatibility, _ = metaData["compatibility"].(string)

	if raw, ok := metaData["metadata"].(map[interface{}]interface{}); ok {
		fm.Metadata = make(map[string]string, len(raw))
		for k, v := range raw {
			key, kok := k.(string)
			value, vok := v.(string)
			if kok && vok {
				fm.Metadata[key] = value
			}
		}
	}

	return fm, nil
}

// ExtractBody removes YAML frontmatter and returns the body
func ExtractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}

// FilterByAllowlist filters skills by an allowlist of names.
// If the allowlist is empty, all skills are returned.
func FilterByAllowlist(skills map[string]*Skill, allowed []string) map[string]*Skill {
	if len(allowed) == 0 {
		return skills
	}

	filtered := make(map[string]*Skill)
	for _, name := range allowed {
		if skill, exists := skills[name]; exists {
			filtered[name] = skill
		}
	}
	return filtered
}
