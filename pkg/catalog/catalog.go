// Package catalog renders the CATALOG.md index of a skill tree and checks a
// committed index for staleness.
package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/pkg/errors"

	"github.com/opencode-dev/skillctl/pkg/audit"
	"github.com/opencode-dev/skillctl/pkg/skills"
)

// DefaultFileName is where the index is written unless overridden
const DefaultFileName = "CATALOG.md"

const catalogTemplate = `# Skill Catalog

{{ .Count }} skills. Generated by skillctl; do not edit by hand.
{{ range .Categories }}
## {{ .Name }}

| Skill | Description | Est. Tokens |
|-------|-------------|-------------|
{{- range .Entries }}
| {{ .Name }} | {{ .Description }} | {{ .Tokens }} |
{{- end }}
{{ end }}`

// Entry is one catalog row
type Entry struct {
	Name        string
	Description string
	Tokens      int
}

// Category groups entries sharing a classification
type Category struct {
	Name    string
	Entries []Entry
}

type catalogData struct {
	Count      int
	Categories []Category
}

// Build renders the catalog markdown for the given skills
func Build(catalog map[string]*skills.Skill) (string, error) {
	tmpl, err := template.New("catalog").Parse(catalogTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse catalog template")
	}

	byCategory := make(map[string][]Entry)
	for name, skill := range catalog {
		category := audit.Classify(name)
		byCategory[category] = append(byCategory[category], Entry{
			Name:        name,
			Description: skill.Description,
			Tokens:      audit.EstimateTokens(skill.CharCount),
		})
	}

	categoryNames := make([]string, 0, len(byCategory))
	for name := range byCategory {
		categoryNames = append(categoryNames, name)
	}
	sort.Strings(categoryNames)

	data := catalogData{Count: len(catalog)}
	for _, name := range categoryNames {
		entries := byCategory[name]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		data.Categories = append(data.Categories, Category{Name: name, Entries: entries})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to render catalog")
	}

	return buf.String(), nil
}

// Write renders the catalog and writes it to path atomically
func Write(path string, catalog map[string]*skills.Skill) error {
	content, err := Build(catalog)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".catalog-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write catalog")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close catalog temp file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "failed to replace catalog")
}

// Check reports whether the committed catalog at path matches what Build
// would generate. A missing file counts as stale.
func Check(path string, catalog map[string]*skills.Skill) (fresh bool, err error) {
	want, err := Build(catalog)
	if err != nil {
		return false, err
	}

	got, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to read %s", path)
	}

	return string(got) == want, nil
}
