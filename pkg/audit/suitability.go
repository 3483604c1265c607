package audit

import (
	"sort"
	"strings"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

// Requirements are the tool capabilities a skill document asks of the agent
// that loads it, extracted from the document text.
type Requirements struct {
	Bash       bool     // contains bash code blocks
	Python     bool     // contains python code blocks
	Delegation bool     // mentions task delegation to subagents
	MCPServers []string // MCP servers the document references
}

// mcpServers are the MCP server names probed for in skill documents
var mcpServers = []string{"atlassian", "drawio", "zai-mcp-server"}

// ExtractRequirements derives a skill's tool requirements from its body
func ExtractRequirements(content string) Requirements {
	lower := strings.ToLower(content)

	req := Requirements{
		Bash:   strings.Contains(content, "```bash"),
		Python: strings.Contains(content, "```python"),
	}

	for _, word := range []string{"task", "delegate", "subagent"} {
		if strings.Contains(lower, word) {
			req.Delegation = true
			break
		}
	}

	for _, server := range mcpServers {
		if strings.Contains(lower, server) {
			req.MCPServers = append(req.MCPServers, server)
		}
	}

	return req
}

// AgentProfile describes an agent the catalog may be loaded into: full-access
// primary agents can delegate, restricted subagents cannot and only reach the
// MCP servers listed.
type AgentProfile struct {
	Name       string
	FullAccess bool
	AllowedMCP []string
}

// DefaultProfiles is the agent roster suitability is checked against
var DefaultProfiles = []AgentProfile{
	{Name: "primary", FullAccess: true, AllowedMCP: []string{"atlassian", "drawio", "zai-mcp-server"}},
	{Name: "linting-subagent"},
	{Name: "testing-subagent"},
	{Name: "git-workflow-subagent", AllowedMCP: []string{"atlassian"}},
	{Name: "documentation-subagent"},
	{Name: "workflow-subagent", AllowedMCP: []string{"atlassian"}},
}

// Compatible reports whether an agent with the given profile can load a
// skill with the given requirements. Delegation needs a full-access agent;
// every referenced MCP server must be allowed for the profile.
func Compatible(req Requirements, profile AgentProfile) bool {
	if req.Delegation && !profile.FullAccess {
		return false
	}

	for _, server := range req.MCPServers {
		allowed := false
		for _, a := range profile.AllowedMCP {
			if a == server {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	return true
}

// SuitabilityMatrix computes, for every skill, which agent profiles can load
// it. The outer map is keyed by skill name, the inner by profile name.
func SuitabilityMatrix(catalog map[string]*skills.Skill, profiles []AgentProfile) map[string]map[string]bool {
	if len(profiles) == 0 {
		profiles = DefaultProfiles
	}

	matrix := make(map[string]map[string]bool, len(catalog))
	for name, skill := range catalog {
		req := ExtractRequirements(skill.Content)
		row := make(map[string]bool, len(profiles))
		for _, profile := range profiles {
			row[profile.Name] = Compatible(req, profile)
		}
		matrix[name] = row
	}

	return matrix
}

// SuitabilityRow is one skill's compatibility across the agent roster,
// in roster order
type SuitabilityRow struct {
	Skill      string
	Compatible []bool
}

// SuitabilityRows flattens a matrix into rows sorted by skill name,
// with columns following the given profiles
func SuitabilityRows(matrix map[string]map[string]bool, profiles []AgentProfile) []SuitabilityRow {
	if len(profiles) == 0 {
		profiles = DefaultProfiles
	}

	names := make([]string, 0, len(matrix))
	for name := range matrix {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]SuitabilityRow, 0, len(names))
	for _, name := range names {
		row := SuitabilityRow{Skill: name}
		for _, profile := range profiles {
			row.Compatible = append(row.Compatible, matrix[name][profile.Name])
		}
		rows = append(rows, row)
	}

	return rows
}
