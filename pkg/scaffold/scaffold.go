// Package scaffold creates new skill directories from the canonical SKILL.md
// skeleton.
package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/pkg/errors"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const skillTemplate = `---
name: {{ .Name }}
description: {{ .Description }}
---

# {{ .Title }}

## What I do

TODO: two or three sentences on what this skill accomplishes.

## When to use me

- TODO: concrete situations that should route to this skill

## Prerequisites

- TODO: tools or access the agent needs before starting

## Steps

1. TODO: the first command or action

## Best Practices

- TODO

## Common Issues

| Symptom | Fix |
|---------|-----|
| TODO | TODO |
`

type templateData struct {
	Name        string
	Description string
	Title       string
}

// Create scaffolds a new skill under root. The skill directory is named
// after the skill and must not already exist.
func Create(root, name, description string) (string, error) {
	if !namePattern.MatchString(name) {
		return "", errors.Errorf("skill name '%s' must match %s", name, namePattern.String())
	}
	if description == "" {
		description = "TODO: one line the agent can route on"
	}

	skillDir := filepath.Join(root, name)
	if _, err := os.Stat(skillDir); err == nil {
		return "", errors.Errorf("skill directory %s already exists", skillDir)
	}

	tmpl, err := template.New("skill").Parse(skillTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse skill template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{
		Name:        name,
		Description: description,
		Title:       title(name),
	}); err != nil {
		return "", errors.Wrap(err, "failed to render skill template")
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", skillDir)
	}

	skillPath := filepath.Join(skillDir, skills.SkillFileName)
	if err := os.WriteFile(skillPath, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", skillPath)
	}

	return skillPath, nil
}

// title turns a kebab-case skill name into a heading
func title(name string) string {
	out := []byte(name)
	upper := true
	for i, c := range out {
		switch {
		case c == '-':
			out[i] = ' '
			upper = true
		case upper && c >= 'a' && c <= 'z':
			out[i] = c - 'a' + 'A'
			upper = false
		default:
			upper = false
		}
	}
	return string(out)
}
