// Package conflict decides, per person per venue slot, whether parsed
// availability constraints block attendance, and exposes the free windows
// that remain inside a slot.
package conflict

import (
	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/core/model"
)

// Profile is one person's compiled constraint set. Invalid holds the
// tokens that failed to parse; a profile with invalid tokens is treated
// as fully unavailable rather than guessing what the writer meant.
type Profile struct {
	Person      model.Person
	Constraints []grammar.Constraint
	Invalid     []grammar.TokenResult
}

// HasInvalidTokens reports whether any availability token failed to parse.
func (p Profile) HasInvalidTokens() bool {
	return len(p.Invalid) > 0
}

// BuildProfiles parses every person's availability text. Order follows the
// input order; parse failures are collected, never dropped.
func BuildProfiles(parser *grammar.Parser, persons []model.Person) []Profile {
	profiles := make([]Profile, 0, len(persons))
	for _, person := range persons {
		profile := Profile{Person: person}
		for _, res := range parser.Parse(person.Availability) {
			if res.Err != nil {
				profile.Invalid = append(profile.Invalid, res)
				continue
			}
			profile.Constraints = append(profile.Constraints, res.Constraint)
		}
		profiles = append(profiles, profile)
	}
	return profiles
}
