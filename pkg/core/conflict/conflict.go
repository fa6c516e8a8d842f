package conflict

import (
	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/core/model"
)

// appliesOn reports whether the constraint speaks to the slot's calendar
// day at all, ignoring time windows.
func appliesOn(c grammar.Constraint, slot model.VenueSlot) bool {
	switch rule := c.(type) {
	case grammar.WeekdayRule:
		return rule.Day == slot.Weekday()
	case grammar.DateRule:
		return rule.Date.Equal(slot.Date)
	case grammar.DateRangeRule:
		return !slot.Date.Before(rule.Start) && !slot.Date.After(rule.End)
	}
	return false
}

// blockedWindow is the stretch of the day the constraint takes away when
// it applies. Date ranges always take the whole day.
func blockedWindow(c grammar.Constraint) interval.TimeInterval {
	switch rule := c.(type) {
	case grammar.WeekdayRule:
		return rule.Window
	case grammar.DateRule:
		return rule.Window
	case grammar.DateRangeRule:
		return interval.FullDay
	}
	return interval.TimeInterval{}
}

// ConstraintConflicts reports whether a single constraint makes its owner
// unavailable for the slot: the day must match and the blocked window must
// overlap the slot's window. Weekday and date constraints are independent;
// either kind alone can block a slot.
func ConstraintConflicts(c grammar.Constraint, slot model.VenueSlot) bool {
	return appliesOn(c, slot) && blockedWindow(c).Overlaps(slot.Window)
}

// Matching returns the constraints in the profile that conflict with the
// slot, in insertion order.
func Matching(profile Profile, slot model.VenueSlot) []grammar.Constraint {
	var matched []grammar.Constraint
	for _, c := range profile.Constraints {
		if ConstraintConflicts(c, slot) {
			matched = append(matched, c)
		}
	}
	return matched
}

// FreeWindows returns the parts of the slot's window the person can
// attend, in order. A profile with invalid tokens gets no free time at
// all; bad data reads as unavailable, never as available.
func FreeWindows(profile Profile, slot model.VenueSlot) []interval.TimeInterval {
	if profile.HasInvalidTokens() {
		return nil
	}

	var removals []interval.TimeInterval
	for _, c := range profile.Constraints {
		if appliesOn(c, slot) {
			removals = append(removals, blockedWindow(c))
		}
	}
	return interval.Subtract(slot.Window, removals)
}
