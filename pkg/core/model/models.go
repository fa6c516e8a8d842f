// Package model holds the production entities the scheduling pipeline
// shares: people, dance groups, and venue slots. The types are plain data
// mapped straight from the input tables; derived artifacts live in the
// packages that compute them.
package model

import (
	"sort"
	"time"

	"github.com/emmalawson/stagecall/pkg/core/interval"
)

// Person represents one company member. Availability carries the raw
// comma-separated constraint text exactly as entered upstream; parsing
// happens downstream so bad tokens can be reported per person.
type Person struct {
	ID           string
	Name         string
	Availability string
}

// DanceGroup represents one piece in the production: the leader who runs
// its rehearsals, the dancers it calls, and the rehearsal minutes requested
// for it.
type DanceGroup struct {
	ID               string
	Name             string
	LeaderID         string
	Roster           []string
	RequestedMinutes int
}

// VenueSlot represents one bookable stretch of rehearsal space on a
// concrete date. Date is a civil date at UTC midnight; Window is the
// bookable minutes of that day.
type VenueSlot struct {
	ID     string
	Venue  string
	Date   time.Time
	Window interval.TimeInterval
}

// Weekday returns the slot's day of week.
func (s VenueSlot) Weekday() time.Weekday {
	return s.Date.Weekday()
}

// SortSlots orders slots chronologically by date, then start minute, then
// venue, then ID. The scheduler and every report rely on this order.
func SortSlots(slots []VenueSlot) {
	sort.Slice(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Window.Start != b.Window.Start {
			return a.Window.Start < b.Window.Start
		}
		if a.Venue != b.Venue {
			return a.Venue < b.Venue
		}
		return a.ID < b.ID
	})
}

// SortGroups orders groups by ID for deterministic iteration.
func SortGroups(groups []DanceGroup) {
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].ID < groups[j].ID
	})
}
