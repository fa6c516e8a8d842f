package interval

import "sort"

// Union consolidates a set of intervals into sorted, non-overlapping ranges.
// Adjacent intervals merge and zero-duration intervals are dropped.
func Union(intervals []TimeInterval) []TimeInterval {
	nonZero := make([]TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsZero() {
			nonZero = append(nonZero, iv)
		}
	}
	if len(nonZero) == 0 {
		return nil
	}

	sort.Slice(nonZero, func(i, j int) bool {
		if nonZero[i].Start != nonZero[j].Start {
			return nonZero[i].Start < nonZero[j].Start
		}
		return nonZero[i].End < nonZero[j].End
	})

	merged := []TimeInterval{nonZero[0]}
	for _, current := range nonZero[1:] {
		last := &merged[len(merged)-1]
		// Adjacency counts as mergeable here, unlike Overlaps.
		if current.Start <= last.End {
			if current.End > last.End {
				last.End = current.End
			}
		} else {
			merged = append(merged, current)
		}
	}
	return merged
}

// Subtract removes a set of intervals from a base interval and returns the
// ordered fragments that remain. Removals are unioned first, so overlapping
// removals are not double-counted.
func Subtract(base TimeInterval, removals []TimeInterval) []TimeInterval {
	if base.IsZero() {
		return nil
	}
	if len(removals) == 0 {
		return []TimeInterval{base}
	}

	remaining := []TimeInterval{base}
	for _, sub := range Union(removals) {
		var next []TimeInterval
		for _, piece := range remaining {
			if sub.End <= piece.Start || sub.Start >= piece.End {
				next = append(next, piece)
				continue
			}
			if piece.Start < sub.Start {
				next = append(next, TimeInterval{Start: piece.Start, End: sub.Start})
			}
			if piece.End > sub.End {
				next = append(next, TimeInterval{Start: sub.End, End: piece.End})
			}
		}
		remaining = next
		if len(remaining) == 0 {
			break
		}
	}
	return remaining
}

// IntersectAll returns the common portions of two interval sets. Both inputs
// are assumed to be sorted and non-overlapping, as produced by Union.
func IntersectAll(a, b []TimeInterval) []TimeInterval {
	var result []TimeInterval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if overlap, ok := a[i].Intersect(b[j]); ok {
			result = append(result, overlap)
		}
		if a[i].End < b[j].End {
			i++
		} else {
			j++
		}
	}
	return result
}

// TotalDuration sums the durations of a set of intervals in minutes.
func TotalDuration(intervals []TimeInterval) int {
	total := 0
	for _, iv := range intervals {
		total += iv.Duration()
	}
	return total
}
