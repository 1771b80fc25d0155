package assistant

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Score computes a normalized similarity between two strings in [0,1].
// Case-insensitive equality scores 1; substring containment scores
// 0.8 plus 0.2 weighted by the length ratio; everything else falls back
// to normalized edit distance.
func Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		short, long := len(a), len(b)
		if short > long {
			short, long = long, short
		}
		return 0.8 + 0.2*float64(short)/float64(long)
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	score := 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
	if score < 0 {
		return 0
	}
	return score
}
