// Package validate checks skill documents against the catalog schema:
// frontmatter well-formedness, the skill name grammar, and cross-document
// consistency such as duplicate names and unresolved related-skill
// references.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

// namePattern is the grammar every skill name must satisfy
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// descriptions longer than this are unlikely to fit routing prompts
const maxDescriptionLen = 500

// Severity classifies a finding
type Severity string

// Finding severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single validation issue in a skill document or the tree
type Finding struct {
	Severity Severity
	Rule     string
	Path     string // SKILL.md path, or the tree root for tree-level findings
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", f.Severity, f.Path, f.Message, f.Rule)
}

// Result aggregates findings over a skill tree
type Result struct {
	Findings []Finding
	Checked  int // number of SKILL.md documents examined
}

// HasErrors reports whether any finding has error severity
func (r *Result) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns the warning-severity findings
func (r *Result) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// Err returns the error-severity findings aggregated into a single error,
// or nil when the tree is clean
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			merr = multierror.Append(merr, errors.New(f.String()))
		}
	}
	return merr.ErrorOrNil()
}

// Dir validates every skill directory under root. A skill directory is any
// immediate subdirectory containing a SKILL.md file; subdirectories without
// one are reported as a warning.
func Dir(root string) (*Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read skill tree %s", root)
	}

	result := &Result{}
	byName := make(map[string][]string) // name -> SKILL.md paths
	var docs []*document

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		skillPath := filepath.Join(root, entry.Name(), skills.SkillFileName)
		if _, err := os.Stat(skillPath); err != nil {
			result.Findings = append(result.Findings, Finding{
				Severity: SeverityWarning,
				Rule:     "skill-file-present",
				Path:     filepath.Join(root, entry.Name()),
				Message:  "directory has no SKILL.md",
			})
			continue
		}

		result.Checked++
		doc, findings := checkFile(skillPath, entry.Name())
		result.Findings = append(result.Findings, findings...)
		if doc != nil {
			docs = append(docs, doc)
			byName[doc.name] = append(byName[doc.name], skillPath)
		}
	}

	// Tree-level checks need the full name set
	for name, paths := range byName {
		if len(paths) > 1 {
			result.Findings = append(result.Findings, Finding{
				Severity: SeverityError,
				Rule:     "unique-name",
				Path:     root,
				Message:  fmt.Sprintf("skill name '%s' declared in %d documents: %s", name, len(paths), strings.Join(paths, ", ")),
			})
		}
	}
	for _, doc := range docs {
		for _, ref := range doc.related {
			if _, ok := byName[ref]; !ok {
				result.Findings = append(result.Findings, Finding{
					Severity: SeverityWarning,
					Rule:     "related-skills-resolve",
					Path:     doc.path,
					Message:  fmt.Sprintf("related skill '%s' not found in catalog", ref),
				})
			}
		}
	}

	return result, nil
}

// File validates a single SKILL.md document. Cross-document rules
// (unique-name, related-skills-resolve) are not applied.
func File(path string) []Finding {
	_, findings := checkFile(path, filepath.Base(filepath.Dir(path)))
	return findings
}

// document carries the parsed facts tree-level rules need
type document struct {
	path    string
	name    string
	related []string
}

func checkFile(path, dirName string) (*document, []Finding) {
	var findings []Finding
	fail := func(rule, msg string) {
		findings = append(findings, Finding{Severity: SeverityError, Rule: rule, Path: path, Message: msg})
	}
	warn := func(rule, msg string) {
		findings = append(findings, Finding{Severity: SeverityWarning, Rule: rule, Path: path, Message: msg})
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fail("readable", err.Error())
		return nil, findings
	}

	fm, err := skills.ParseFrontmatter(content)
	if err != nil {
		fail("frontmatter-parses", err.Error())
		return nil, findings
	}

	switch {
	case fm.Name == "":
		fail("name-required", "frontmatter field 'name' is empty or missing")
	case !namePattern.MatchString(fm.Name):
		fail("name-grammar", fmt.Sprintf("name '%s' must match %s", fm.Name, namePattern.String()))
	case fm.Name != dirName:
		warn("name-matches-dir", fmt.Sprintf("name '%s' does not match directory '%s'", fm.Name, dirName))
	}

	switch {
	case fm.Description == "":
		fail("description-required", "frontmatter field 'description' is empty or missing")
	case len(fm.Description) > maxDescriptionLen:
		warn("description-length", fmt.Sprintf("description is %d chars, keep it under %d", len(fm.Description), maxDescriptionLen))
	}

	for _, f := range checkFieldTypes(string(content)) {
		f.Path = path
		findings = append(findings, f)
	}

	body := skills.ExtractBody(string(content))
	if strings.TrimSpace(body) == "" {
		warn("body-non-empty", "document has no body after the frontmatter")
	}

	doc := &document{
		path:    path,
		name:    fm.Name,
		related: relatedSkills(body),
	}
	return doc, findings
}

// knownFields are the frontmatter keys the schema defines
var knownFields = map[string]bool{
	"name":          true,
	"description":   true,
	"license":       true,
	"compatibility": true,
	"metadata":      true,
}

// checkFieldTypes re-parses the raw frontmatter block to verify optional
// field types, which the lenient document parser silently drops, and to
// flag keys outside the schema. Path is filled in by the caller.
func checkFieldTypes(content string) []Finding {
	block := frontmatterBlock(content)
	if block == "" {
		return nil
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		// frontmatter-parses already covers unparseable YAML
		return nil
	}

	var findings []Finding
	for _, field := range []string{"license", "compatibility"} {
		if value, present := raw[field]; present {
			if _, ok := value.(string); !ok {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Rule:     "field-type",
					Message:  fmt.Sprintf("frontmatter field '%s' must be a string", field),
				})
			}
		}
	}
	if value, present := raw["metadata"]; present {
		if _, ok := value.(map[string]interface{}); !ok {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Rule:     "field-type",
				Message:  "frontmatter field 'metadata' must be a mapping",
			})
		}
	}

	unknown := make([]string, 0)
	for key := range raw {
		if !knownFields[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Rule:     "unknown-field",
			Message:  fmt.Sprintf("frontmatter field '%s' is not part of the schema", key),
		})
	}

	return findings
}

// frontmatterBlock returns the raw YAML between the frontmatter fences,
// empty when there is no frontmatter
func frontmatterBlock(content string) string {
	if !strings.HasPrefix(content, "---") {
		return ""
	}

	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n")
		}
	}
	return ""
}

// relatedSkills extracts skill references from a "## Related Skills" section.
// References are list items, optionally backticked, optionally followed by
// prose after a colon or dash.
func relatedSkills(body string) []string {
	var refs []string
	inSection := false

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			inSection = strings.EqualFold(strings.TrimSpace(strings.TrimLeft(trimmed, "#")), "related skills")
			continue
		}
		if !inSection {
			continue
		}
		if !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "*") {
			continue
		}

		item := strings.TrimSpace(strings.TrimLeft(trimmed, "-* "))
		for _, sep := range []string{":", " - ", " — "} {
			if idx := strings.Index(item, sep); idx != -1 {
				item = item[:idx]
			}
		}
		item = strings.Trim(strings.TrimSpace(item), "`")
		if namePattern.MatchString(item) {
			refs = append(refs, item)
		}
	}

	return refs
}
