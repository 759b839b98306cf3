package consolidate

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultFuzzyThreshold is the similarity score two entity names must
// reach to be treated as the same payer across amendments.
const DefaultFuzzyThreshold = 85

// Ratio scores the similarity of two strings on a 0..100 scale from
// their Levenshtein distance.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(100 * (float64(longest) - float64(dist)) / float64(longest))
}

// namesMatch compares two entity names under the fuzzy threshold. Blank
// names only match other blank names.
func namesMatch(name1, name2 string, threshold int) bool {
	if name1 == "" || name2 == "" {
		return name1 == name2
	}

	clean1 := strings.ToUpper(strings.TrimSpace(name1))
	clean2 := strings.ToUpper(strings.TrimSpace(name2))
	if clean1 == clean2 {
		return true
	}
	return Ratio(clean1, clean2) >= threshold
}
