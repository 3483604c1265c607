// Package audit analyzes a skill catalog for overlap and cost: pairwise
// duplicity scoring between skills, per-skill token estimates, and markdown
// report generation.
package audit

import (
	"sort"
	"strings"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

// Token thresholds for the cost report
const (
	tokenWarning  = 2000
	tokenCritical = 3000
)

// Token cost status values
const (
	StatusOK       = "OK"
	StatusWarning  = "WARNING"
	StatusCritical = "CRITICAL"
)

// TokenCost is the estimated loading cost of one skill
type TokenCost struct {
	Name       string
	CharCount  int
	Tokens     int
	Status     string
	CodeBlocks int
	Category   string
}

// EstimateTokens estimates the token count of a document:
// 4 chars per token plus 10% overhead.
func EstimateTokens(charCount int) int {
	return int(float64(charCount) / 4 * 1.1)
}

// TokenCosts analyzes token costs for all skills, sorted by tokens descending.
func TokenCosts(catalog map[string]*skills.Skill) []TokenCost {
	costs := make([]TokenCost, 0, len(catalog))

	for name, skill := range catalog {
		tokens := EstimateTokens(skill.CharCount)

		status := StatusOK
		switch {
		case tokens > tokenCritical:
			status = StatusCritical
		case tokens > tokenWarning:
			status = StatusWarning
		}

		costs = append(costs, TokenCost{
			Name:       name,
			CharCount:  skill.CharCount,
			Tokens:     tokens,
			Status:     status,
			CodeBlocks: strings.Count(skill.Content, "```") / 2,
			Category:   Classify(name),
		})
	}

	sort.Slice(costs, func(i, j int) bool {
		if costs[i].Tokens != costs[j].Tokens {
			return costs[i].Tokens > costs[j].Tokens
		}
		return costs[i].Name < costs[j].Name
	})

	return costs
}

// Classify buckets a skill into a category based on its name
func Classify(name string) string {
	switch {
	case strings.HasPrefix(name, "python-") || strings.HasPrefix(name, "javascript-") || strings.HasPrefix(name, "nextjs-"):
		return "language-specific"
	case strings.HasSuffix(name, "-linter"):
		return "linting"
	case strings.HasSuffix(name, "-test-creator") || strings.HasSuffix(name, "-pytest"):
		return "testing"
	case strings.HasPrefix(name, "git-") || strings.HasPrefix(name, "github-") || strings.HasPrefix(name, "jira-"):
		return "git/jira"
	case strings.HasPrefix(name, "skills-") || strings.HasSuffix(name, "-auditor"):
		return "catalog-meta"
	case strings.HasSuffix(name, "-setup") || strings.HasSuffix(name, "-standard"):
		return "project-setup"
	case strings.HasSuffix(name, "-workflow"):
		return "workflow"
	case strings.HasSuffix(name, "-framework"):
		return "framework"
	default:
		return "other"
	}
}
