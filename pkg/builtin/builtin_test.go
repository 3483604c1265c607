package builtin

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestLoadManifest(t *testing.T) {
	manifest, err := LoadManifest()
	require.NoError(t, err)
	require.NotEmpty(t, manifest.Skills)

	names := make(map[string]bool)
	for _, entry := range manifest.Skills {
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Dir)
		assert.False(t, names[entry.Name], "duplicate manifest entry %s", entry.Name)
		names[entry.Name] = true
	}

	// The bundle covers the documented default workflows
	for _, want := range []string{
		"python-docstring-generator",
		"coverage-badge",
		"github-issue-workflow",
		"jira-issue-workflow",
		"javascript-eslint-linter",
		"skills-catalog",
	} {
		assert.True(t, names[want], "manifest missing %s", want)
	}
}

func TestLoadSkills(t *testing.T) {
	manifest, err := LoadManifest()
	require.NoError(t, err)

	bundled, err := LoadSkills(manifest)
	require.NoError(t, err)
	require.Len(t, bundled, len(manifest.Skills))

	assert.True(t, sort.SliceIsSorted(bundled, func(i, j int) bool {
		return bundled[i].Entry.Priority < bundled[j].Entry.Priority
	}))

	for _, skill := range bundled {
		fm, err := skills.ParseFrontmatter([]byte(skill.Content))
		require.NoError(t, err, skill.Entry.Name)

		// Manifest, frontmatter, and directory agree on the name
		assert.Equal(t, skill.Entry.Name, fm.Name)
		assert.Equal(t, skill.Entry.Name, skill.Entry.Dir)
		assert.Regexp(t, namePattern, fm.Name)
		assert.NotEmpty(t, fm.Description)
		assert.NotEmpty(t, skills.ExtractBody(skill.Content))
	}
}

func TestLoadSkillsMissingDocument(t *testing.T) {
	manifest := &Manifest{Skills: []ManifestEntry{{Name: "ghost", Dir: "ghost"}}}
	_, err := LoadSkills(manifest)
	assert.ErrorContains(t, err, "ghost")
}

func TestInstall(t *testing.T) {
	tmpDir := t.TempDir()

	installed, err := Install(tmpDir, false)
	require.NoError(t, err)
	assert.Positive(t, installed)

	manifest, err := LoadManifest()
	require.NoError(t, err)

	for _, entry := range manifest.Skills {
		path := filepath.Join(tmpDir, "skills", entry.Dir, skills.SkillFileName)
		_, err := os.Stat(path)
		assert.NoError(t, err, entry.Name)
	}

	// Second install is a no-op without force
	installed, err = Install(tmpDir, false)
	require.NoError(t, err)
	assert.Zero(t, installed)

	// A locally modified skill is preserved unless forced
	modified := filepath.Join(tmpDir, "skills", "coverage-badge", skills.SkillFileName)
	require.NoError(t, os.WriteFile(modified, []byte("local edits\n"), 0o644))

	_, err = Install(tmpDir, false)
	require.NoError(t, err)
	content, err := os.ReadFile(modified)
	require.NoError(t, err)
	assert.Equal(t, "local edits\n", string(content))

	installed, err = Install(tmpDir, true)
	require.NoError(t, err)
	assert.Equal(t, len(manifest.Skills), installed)

	content, err = os.ReadFile(modified)
	require.NoError(t, err)
	assert.Contains(t, string(content), "name: coverage-badge")
}
