package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the similarity below which a name is not suggested.
const DefaultThreshold = 0.5

// Candidate is a known name with its similarity to the unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against name, best first. Ties keep
// alphabetical order so the result is deterministic.
func Rank(name string, known []string) []Candidate {
	out := make([]Candidate, 0, len(known))
	for _, k := range known {
		out = append(out, Candidate{Name: k, Score: Similarity(name, k)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Suggest returns up to n known names whose similarity to name is at least
// threshold.
func Suggest(name string, known []string, n int, threshold float64) []string {
	var out []string

	for _, c := range Rank(name, known) {
		if len(out) == n || c.Score < threshold {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
