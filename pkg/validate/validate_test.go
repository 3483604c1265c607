package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, dir, content string) string {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	path := filepath.Join(skillDir, "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func rules(findings []Finding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Rule)
	}
	return out
}

func TestDirCleanTree(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "coverage-badge", `---
name: coverage-badge
description: Maintain a coverage badge
---

# Coverage Badge

body
`)
	writeSkill(t, root, "git-workflow", `---
name: git-workflow
description: Branch and PLAN.md discipline
---

# Git Workflow

body

## Related Skills

- `+"`coverage-badge`"+`: update the badge after test changes
`)

	result, err := Dir(root)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Empty(t, result.Findings)
	assert.False(t, result.HasErrors())
	assert.NoError(t, result.Err())
}

func TestDirNameGrammar(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "Bad_Name", `---
name: Bad_Name
description: Invalid name grammar
---
body
`)

	result, err := Dir(root)
	require.NoError(t, err)
	assert.True(t, result.HasErrors())
	assert.Contains(t, rules(result.Findings), "name-grammar")
}

func TestDirMissingRequiredFields(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "no-description", `---
name: no-description
---
body
`)
	writeSkill(t, root, "no-name", `---
description: Name is missing
---
body
`)

	result, err := Dir(root)
	require.NoError(t, err)
	assert.True(t, result.HasErrors())

	got := rules(result.Findings)
	assert.Contains(t, got, "description-required")
	assert.Contains(t, got, "name-required")

	err = result.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description-required")
}

func TestDirMissingFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "plain", "# No frontmatter here\n")

	result, err := Dir(root)
	require.NoError(t, err)
	assert.True(t, result.HasErrors())
	assert.Contains(t, rules(result.Findings), "frontmatter-parses")
}

func TestDirWarnings(t *testing.T) {
	root := t.TempDir()

	longDescription := make([]byte, 501)
	for i := range longDescription {
		longDescription[i] = 'x'
	}

	// name does not match directory, description too long, empty body
	writeSkill(t, root, "some-dir", `---
name: other-name
description: `+string(longDescription)+`
---
`)
	// directory without SKILL.md
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0o755))

	result, err := Dir(root)
	require.NoError(t, err)
	assert.False(t, result.HasErrors())

	got := rules(result.Warnings())
	assert.Contains(t, got, "name-matches-dir")
	assert.Contains(t, got, "description-length")
	assert.Contains(t, got, "body-non-empty")
	assert.Contains(t, got, "skill-file-present")
}

func TestDirDuplicateNames(t *testing.T) {
	root := t.TempDir()
	doc := `---
name: duplicated
description: Same name in two directories
---
body
`
	writeSkill(t, root, "first-dir", doc)
	writeSkill(t, root, "second-dir", doc)

	result, err := Dir(root)
	require.NoError(t, err)
	assert.True(t, result.HasErrors())
	assert.Contains(t, rules(result.Findings), "unique-name")
}

func TestDirUnresolvedRelatedSkill(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "lonely", `---
name: lonely
description: References a skill that does not exist
---

# Lonely

## Related Skills

- `+"`does-not-exist`"+`: nothing here
`)

	result, err := Dir(root)
	require.NoError(t, err)
	assert.False(t, result.HasErrors())

	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "related-skills-resolve", warnings[0].Rule)
	assert.Contains(t, warnings[0].Message, "does-not-exist")
}

func TestDirFieldTypes(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "wrong-types", `---
name: wrong-types
description: Optional fields with wrong types
license: 42
metadata: just-a-string
---
body
`)

	result, err := Dir(root)
	require.NoError(t, err)
	assert.True(t, result.HasErrors())

	got := rules(result.Findings)
	assert.Contains(t, got, "field-type")
}

func TestDirUnknownFields(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "extra-fields", `---
name: extra-fields
description: Carries a key outside the schema
author: somebody
compatibility: any agent
---
body
`)

	result, err := Dir(root)
	require.NoError(t, err)
	assert.False(t, result.HasErrors())

	warnings := result.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "unknown-field", warnings[0].Rule)
	assert.Contains(t, warnings[0].Message, "author")
}

func TestFile(t *testing.T) {
	root := t.TempDir()
	path := writeSkill(t, root, "solo-skill", `---
name: solo-skill
description: A valid standalone document
---
body
`)

	assert.Empty(t, File(path))

	missing := filepath.Join(root, "nope", "SKILL.md")
	findings := File(missing)
	require.Len(t, findings, 1)
	assert.Equal(t, "readable", findings[0].Rule)
}

func TestRelatedSkills(t *testing.T) {
	body := `# Skill

## Related Skills

- ` + "`alpha-one`" + `: does alpha things
- beta-two - handles beta
* gamma-three
- Not A Valid Name

## Another Section

- ignored-entry
`

	refs := relatedSkills(body)
	assert.Equal(t, []string{"alpha-one", "beta-two", "gamma-three"}, refs)
}
