package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

func testCatalog() map[string]*skills.Skill {
	return map[string]*skills.Skill{
		"github-issue-workflow": {
			Name:        "github-issue-workflow",
			Description: "Create issues and branches",
			CharCount:   2000,
		},
		"jira-issue-workflow": {
			Name:        "jira-issue-workflow",
			Description: "Create JIRA issues",
			CharCount:   1800,
		},
		"coverage-badge": {
			Name:        "coverage-badge",
			Description: "Maintain the coverage badge",
			CharCount:   1500,
		},
	}
}

func TestBuild(t *testing.T) {
	content, err := Build(testCatalog())
	require.NoError(t, err)

	assert.Contains(t, content, "# Skill Catalog")
	assert.Contains(t, content, "3 skills.")
	assert.Contains(t, content, "## git/jira")
	assert.Contains(t, content, "## other")
	assert.Contains(t, content, "| coverage-badge | Maintain the coverage badge |")
	assert.Contains(t, content, "| github-issue-workflow |")
	assert.Contains(t, content, "| jira-issue-workflow |")

	// Deterministic output
	again, err := Build(testCatalog())
	require.NoError(t, err)
	assert.Equal(t, content, again)
}

func TestWriteAndCheck(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DefaultFileName)
	cat := testCatalog()

	// Missing file is stale
	fresh, err := Check(path, cat)
	require.NoError(t, err)
	assert.False(t, fresh)

	require.NoError(t, Write(path, cat))

	fresh, err = Check(path, cat)
	require.NoError(t, err)
	assert.True(t, fresh)

	// Catalog changes on disk make the committed file stale
	cat["new-skill"] = &skills.Skill{Name: "new-skill", Description: "Just added", CharCount: 100}
	fresh, err = Check(path, cat)
	require.NoError(t, err)
	assert.False(t, fresh)

	// Hand edits make it stale too
	require.NoError(t, Write(path, cat))
	require.NoError(t, os.WriteFile(path, []byte("# edited by hand\n"), 0o644))
	fresh, err = Check(path, cat)
	require.NoError(t, err)
	assert.False(t, fresh)
}
