package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

func TestExtractRequirements(t *testing.T) {
	t.Run("code fences", func(t *testing.T) {
		req := ExtractRequirements("## Steps\n\n```bash\ngo test ./...\n```\n\n```python\nprint('hi')\n```\n")
		assert.True(t, req.Bash)
		assert.True(t, req.Python)
		assert.False(t, req.Delegation)
		assert.Empty(t, req.MCPServers)
	})

	t.Run("delegation keywords", func(t *testing.T) {
		assert.True(t, ExtractRequirements("Delegate the review to a reviewer.").Delegation)
		assert.True(t, ExtractRequirements("Spawn a subagent for each file.").Delegation)
		assert.True(t, ExtractRequirements("Use the Task tool.").Delegation)
		assert.False(t, ExtractRequirements("Run the linter directly.").Delegation)
	})

	t.Run("mcp servers", func(t *testing.T) {
		req := ExtractRequirements("Create the ticket via the Atlassian MCP server, then export the diagram with drawio.")
		assert.Equal(t, []string{"atlassian", "drawio"}, req.MCPServers)
	})

	t.Run("plain document", func(t *testing.T) {
		req := ExtractRequirements("## What I do\n\nI write docstrings.\n")
		assert.Equal(t, Requirements{}, req)
	})
}

func TestCompatible(t *testing.T) {
	primary := AgentProfile{Name: "primary", FullAccess: true, AllowedMCP: []string{"atlassian"}}
	restricted := AgentProfile{Name: "restricted"}
	jiraCapable := AgentProfile{Name: "jira-capable", AllowedMCP: []string{"atlassian"}}

	delegating := Requirements{Bash: true, Delegation: true}
	jira := Requirements{MCPServers: []string{"atlassian"}}
	plain := Requirements{Bash: true}

	assert.True(t, Compatible(delegating, primary))
	assert.False(t, Compatible(delegating, restricted))

	assert.True(t, Compatible(jira, jiraCapable))
	assert.False(t, Compatible(jira, restricted))

	assert.True(t, Compatible(plain, primary))
	assert.True(t, Compatible(plain, restricted))
}

func TestSuitabilityMatrix(t *testing.T) {
	catalog := map[string]*skills.Skill{
		"jira-issue-workflow": skill("jira-issue-workflow", "JIRA issues",
			"Create the issue through the Atlassian MCP server.\n"),
		"code-review-orchestrator": skill("code-review-orchestrator", "review",
			"Delegate each changed file to a subagent.\n"),
		"python-docstring-generator": skill("python-docstring-generator", "docstrings",
			"```python\ndef f():\n    pass\n```\n"),
	}

	matrix := SuitabilityMatrix(catalog, nil)
	require.Len(t, matrix, 3)

	// Delegation is only available to the full-access primary agent
	assert.True(t, matrix["code-review-orchestrator"]["primary"])
	assert.False(t, matrix["code-review-orchestrator"]["linting-subagent"])
	assert.False(t, matrix["code-review-orchestrator"]["testing-subagent"])

	// MCP mentions require the server in the profile's allowlist
	assert.True(t, matrix["jira-issue-workflow"]["primary"])
	assert.True(t, matrix["jira-issue-workflow"]["git-workflow-subagent"])
	assert.False(t, matrix["jira-issue-workflow"]["documentation-subagent"])

	// A plain skill suits every profile
	for _, profile := range DefaultProfiles {
		assert.True(t, matrix["python-docstring-generator"][profile.Name], profile.Name)
	}
}

func TestSuitabilityRows(t *testing.T) {
	catalog := map[string]*skills.Skill{
		"beta-skill":  skill("beta-skill", "b", "plain body\n"),
		"alpha-skill": skill("alpha-skill", "a", "Delegate to a subagent.\n"),
	}

	rows := SuitabilityRows(SuitabilityMatrix(catalog, nil), nil)
	require.Len(t, rows, 2)

	assert.Equal(t, "alpha-skill", rows[0].Skill)
	assert.Equal(t, "beta-skill", rows[1].Skill)
	require.Len(t, rows[0].Compatible, len(DefaultProfiles))

	// Columns follow roster order: primary first
	assert.True(t, rows[0].Compatible[0])
	assert.False(t, rows[0].Compatible[1])
}

func TestReportIncludesSuitability(t *testing.T) {
	catalog := map[string]*skills.Skill{
		"jira-issue-workflow": skill("jira-issue-workflow", "JIRA issues",
			"Create the issue through the Atlassian MCP server.\n"),
	}

	report, err := Report(catalog, DefaultThreshold, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, report, "## Subagent Suitability")
	assert.Contains(t, report, "primary")
	assert.Contains(t, report, "| jira-issue-workflow |")
}
