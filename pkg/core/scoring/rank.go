package scoring

import "sort"

// Rank orders scores most-constrained-first: ascending priority, with
// participation ascending breaking near-ties inside epsilon, and group ID
// as the final tiebreak. The input is not modified. Epsilon at or below
// zero falls back to DefaultEpsilon.
func Rank(scores []Score, epsilon float64) []Score {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}

	ranked := make([]Score, len(scores))
	copy(ranked, scores)

	// Pre-sorting by ID keeps the epsilon comparator deterministic even
	// where near-tie chains make it non-transitive.
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].GroupID < ranked[j].GroupID
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		gap := a.Priority - b.Priority
		if gap < 0 {
			gap = -gap
		}
		if gap <= epsilon {
			if a.Participation != b.Participation {
				return a.Participation < b.Participation
			}
			return false
		}
		return a.Priority < b.Priority
	})
	return ranked
}
