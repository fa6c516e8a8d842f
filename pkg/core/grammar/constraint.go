// Package grammar parses normalized unavailability tokens into structured
// scheduling constraints. The token language is the contract shared with the
// upstream translation step, so the parser accepts exactly the documented
// forms and rejects everything else rather than guessing.
package grammar

import (
	"time"

	"github.com/emmalawson/stagecall/pkg/core/interval"
)

// Constraint is one parsed unavailability rule. The concrete types are
// WeekdayRule, DateRule and DateRangeRule.
type Constraint interface {
	// String renders the canonical token form, which re-parses to an
	// equal Constraint.
	String() string

	sealed()
}

// WeekdayRule marks a recurring weekly unavailability. Window is the blocked
// portion of the day; interval.FullDay when no time qualifier was given.
type WeekdayRule struct {
	Day    time.Weekday
	Window interval.TimeInterval
}

// DateRule marks unavailability on one calendar date, optionally narrowed to
// a time window.
type DateRule struct {
	Date   time.Time
	Window interval.TimeInterval
}

// DateRangeRule marks unavailability across an inclusive span of dates.
// Range rules always cover whole days.
type DateRangeRule struct {
	Start time.Time
	End   time.Time
}

func (WeekdayRule) sealed()   {}
func (DateRule) sealed()      {}
func (DateRangeRule) sealed() {}

func (r WeekdayRule) String() string   { return Format(r) }
func (r DateRule) String() string      { return Format(r) }
func (r DateRangeRule) String() string { return Format(r) }
