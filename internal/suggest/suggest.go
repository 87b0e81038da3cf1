// Package suggest finds near matches for mistyped names using Levenshtein
// distance.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps how many names Closest returns
const maxSuggestions = 3

// normalize folds case and treats '-', '.' and '_' alike, so "log-level"
// matches "log_level".
func normalize(s string) string {
	s = strings.ToLower(strings.TrimLeft(s, "-"))
	return strings.NewReplacer("-", "_", ".", "_").Replace(s)
}

// Closest returns the names in valid that are within a few edits of
// unknown, best first.
func Closest(unknown string, valid []string) []string {
	u := normalize(unknown)
	maxDist := max(2, len(u)/3)

	type scored struct {
		name string
		dist int
	}
	var candidates []scored
	for _, v := range valid {
		n := normalize(v)
		d := levenshtein.ComputeDistance(u, n)
		if strings.HasPrefix(n, u) && len(u) >= 3 {
			d = 0
		}
		if d <= maxDist {
			candidates = append(candidates, scored{v, d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	var out []string
	for i := 0; i < len(candidates) && i < maxSuggestions; i++ {
		out = append(out, candidates[i].name)
	}
	return out
}

// Hint formats suggestions as a "did you mean" line, or "" when there are
// none.
func Hint(unknown string, valid []string) string {
	s := Closest(unknown, valid)
	if len(s) == 0 {
		return ""
	}
	return "did you mean " + strings.Join(s, " or ") + "?"
}
