package audit

import (
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/opencode-dev/skillctl/pkg/skills"
)

// sectionWeight weights the contribution of each document section to the
// overall duplicity score
type sectionWeight struct {
	section string
	weight  float64
}

var sectionWeights = []sectionWeight{
	{"name", 0.15},
	{"description", 0.25},
	{"what_i_do", 0.30},
	{"when_to_use", 0.20},
	{"steps", 0.10},
}

// sections extracts the weighted text sections from a skill document
func sections(skill *skills.Skill) map[string]string {
	return map[string]string{
		"name":        skill.Name,
		"description": skill.Description,
		"what_i_do":   bodySection(skill.Content, "## What I do", "## When to use me"),
		"when_to_use": bodySection(skill.Content, "## When to use me", "## Prerequisites"),
		"steps":       bodySection(skill.Content, "## Steps", "## Best Practices"),
	}
}

// bodySection extracts the text between two markdown section markers,
// empty when either marker is missing
func bodySection(content, startMarker, endMarker string) string {
	start := strings.Index(content, startMarker)
	end := strings.Index(content, endMarker)
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return content[start:end]
}

// Similarity computes the weighted similarity score between two skills
// as an integer in [0, 100]
func Similarity(a, b *skills.Skill) int {
	sa, sb := sections(a), sections(b)

	var total float64
	for _, sw := range sectionWeights {
		total += ratio(strings.ToLower(sa[sw.section]), strings.ToLower(sb[sw.section])) * sw.weight
	}

	return int(total * 100)
}

// ratio returns a similarity ratio in [0, 1] between two strings:
// 2*matched / (len(a)+len(b)), with matched derived from the minimal
// edits turning a into b
func ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	deleted := 0
	for _, edit := range udiff.Strings(a, b) {
		deleted += edit.End - edit.Start
	}

	matched := len(a) - deleted
	if matched < 0 {
		matched = 0
	}

	return 2 * float64(matched) / float64(len(a)+len(b))
}

// Pair is a pair of skills with their duplicity score
type Pair struct {
	A     string
	B     string
	Score int
}

// DuplicityMatrix computes pairwise similarity for every skill pair.
// Self-similarity is fixed at 100.
func DuplicityMatrix(catalog map[string]*skills.Skill) map[string]map[string]int {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	matrix := make(map[string]map[string]int, len(names))
	for _, a := range names {
		matrix[a] = make(map[string]int, len(names))
		for _, b := range names {
			switch {
			case a == b:
				matrix[a][b] = 100
			case matrix[b] != nil && matrix[b][a] != 0:
				matrix[a][b] = matrix[b][a]
			default:
				matrix[a][b] = Similarity(catalog[a], catalog[b])
			}
		}
	}

	return matrix
}

// HighDuplicityPairs returns the skill pairs whose score meets the threshold,
// sorted by score descending
func HighDuplicityPairs(matrix map[string]map[string]int, threshold int) []Pair {
	var pairs []Pair
	for a, row := range matrix {
		for b, score := range row {
			if a < b && score >= threshold {
				pairs = append(pairs, Pair{A: a, B: b, Score: score})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	return pairs
}
