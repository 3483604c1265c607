package audit

import (
	"bytes"
	"text/template"
	"time"

	"github.com/pkg/errors"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

// DefaultThreshold is the duplicity score above which a pair is flagged
const DefaultThreshold = 70

const reportTemplate = `# Skill Audit Report

Generated: {{ .Generated }}
Skills analyzed: {{ .SkillCount }}

## Duplicity

Threshold: {{ .Threshold }}
{{ if .Pairs }}
| Skill A | Skill B | Score |
|---------|---------|-------|
{{- range .Pairs }}
| {{ .A }} | {{ .B }} | {{ .Score }} |
{{- end }}
{{ else }}
No skill pairs above the threshold.
{{ end }}
## Token Costs

| Skill | Category | Chars | Tokens | Code Blocks | Status |
|-------|----------|-------|--------|-------------|--------|
{{- range .Costs }}
| {{ .Name }} | {{ .Category }} | {{ .CharCount }} | {{ .Tokens }} | {{ .CodeBlocks }} | {{ .Status }} |
{{- end }}

## Subagent Suitability

| Skill |{{ range .Profiles }} {{ .Name }} |{{ end }}
|-------|{{ range .Profiles }}---|{{ end }}
{{- range .Suitability }}
| {{ .Skill }} |{{ range .Compatible }} {{ if . }}yes{{ else }}no{{ end }} |{{ end }}
{{- end }}
`

// reportData feeds the report template
type reportData struct {
	Generated   string
	SkillCount  int
	Threshold   int
	Pairs       []Pair
	Costs       []TokenCost
	Profiles    []AgentProfile
	Suitability []SuitabilityRow
}

// Report runs the full audit over a catalog and renders a markdown report
func Report(catalog map[string]*skills.Skill, threshold int, now time.Time) (string, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse report template")
	}

	data := reportData{
		Generated:   now.UTC().Format("2006-01-02 15:04:05 UTC"),
		SkillCount:  len(catalog),
		Threshold:   threshold,
		Pairs:       HighDuplicityPairs(DuplicityMatrix(catalog), threshold),
		Costs:       TokenCosts(catalog),
		Profiles:    DefaultProfiles,
		Suitability: SuitabilityRows(SuitabilityMatrix(catalog, nil), nil),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to render report")
	}

	return buf.String(), nil
}
