package interval

import "time"

// MinutesPerDay is the exclusive upper bound for a minute-of-day value.
const MinutesPerDay = 1440

// TimeInterval is a time range within a single day, expressed as minutes
// after midnight. Boundaries satisfy 0 <= Start <= End <= 1440.
type TimeInterval struct {
	Start int
	End   int
}

// FullDay covers an entire day, midnight to midnight.
var FullDay = TimeInterval{Start: 0, End: MinutesPerDay}

// Valid reports whether the interval's boundaries are ordered and in range.
func (t TimeInterval) Valid() bool {
	return t.Start >= 0 && t.Start <= t.End && t.End <= MinutesPerDay
}

// Duration returns the interval length in minutes.
func (t TimeInterval) Duration() int {
	return t.End - t.Start
}

// IsZero reports whether the interval has no duration.
func (t TimeInterval) IsZero() bool {
	return t.Duration() <= 0
}

// Overlaps reports whether two intervals share any time. Intervals that
// merely touch at a boundary do not overlap.
func (t TimeInterval) Overlaps(other TimeInterval) bool {
	return t.Start < other.End && other.Start < t.End
}

// Contains reports whether a minute-of-day falls within the interval,
// boundaries included.
func (t TimeInterval) Contains(minute int) bool {
	return t.Start <= minute && minute <= t.End
}

// Intersect returns the shared portion of two intervals. The second return
// value is false when the intervals do not overlap.
func (t TimeInterval) Intersect(other TimeInterval) (TimeInterval, bool) {
	start := max(t.Start, other.Start)
	end := min(t.End, other.End)
	if start >= end {
		return TimeInterval{}, false
	}
	return TimeInterval{Start: start, End: end}, true
}

// Date constructs a civil date at UTC midnight. All calendar dates in the
// scheduling core are normalized this way so they compare with ==.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateInterval is an inclusive range of civil dates.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether Start is on or before End.
func (d DateInterval) Valid() bool {
	return !d.Start.After(d.End)
}

// ContainsDate reports whether a date falls within the range, inclusive of
// both endpoints.
func (d DateInterval) ContainsDate(date time.Time) bool {
	return !date.Before(d.Start) && !date.After(d.End)
}

// Overlaps reports whether two date ranges share at least one day.
func (d DateInterval) Overlaps(other DateInterval) bool {
	return !d.Start.After(other.End) && !other.Start.After(d.End)
}

// Days returns the number of calendar days covered, inclusive.
func (d DateInterval) Days() int {
	return int(d.End.Sub(d.Start).Hours()/24) + 1
}
