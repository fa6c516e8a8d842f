// Package services orchestrates the scheduling pipeline over the storage
// layer: loading productions, validating constraint text, analyzing
// conflicts, building catalogs, and generating and persisting schedules.
// The core packages stay pure; everything here takes a store and a logger.
package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/core/conflict"
	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/core/model"
	"github.com/emmalawson/stagecall/pkg/db"
)

// ProductionData bundles a loaded production with the compiled
// availability profiles of its cast.
type ProductionData struct {
	Production *model.Production
	Profiles   []conflict.Profile
}

// LoadProduction reads the three input tables, converts the records into
// model entities, checks referential integrity, and compiles every
// person's availability text into a profile. Unparseable tokens do not
// stop the load; they mark the person fully unavailable.
func LoadProduction(ctx context.Context, store db.ProductionStore, logger *zap.Logger, productionYear int) (*ProductionData, error) {
	logger.Info("Loading production", zap.Int("production_year", productionYear))

	personRecords, err := store.GetPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch persons: %w", err)
	}
	groupRecords, err := store.GetGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	slotRecords, err := store.GetSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}

	logger.Debug("Records fetched",
		zap.Int("persons", len(personRecords)),
		zap.Int("groups", len(groupRecords)),
		zap.Int("slots", len(slotRecords)))

	production, err := BuildProduction(personRecords, groupRecords, slotRecords)
	if err != nil {
		return nil, err
	}

	parser := grammar.NewParser(grammar.Options{ProductionYear: productionYear})
	profiles := conflict.BuildProfiles(parser, production.Persons)

	invalid := 0
	for _, p := range profiles {
		if p.HasInvalidTokens() {
			invalid++
			logger.Warn("Person has unparseable availability, treating them as fully unavailable",
				zap.String("person_id", p.Person.ID),
				zap.Int("bad_tokens", len(p.Invalid)))
		}
	}

	logger.Info("Production loaded",
		zap.Int("persons", len(production.Persons)),
		zap.Int("groups", len(production.Groups)),
		zap.Int("slots", len(production.Slots)),
		zap.Int("persons_with_invalid_constraints", invalid))

	return &ProductionData{Production: production, Profiles: profiles}, nil
}

// BuildProduction converts storage records into a validated production.
// Any referential violation surfaces as a model.IntegrityError
func BuildProduction(persons []db.PersonRecord, groups []db.GroupRecord, slots []db.SlotRecord) (*model.Production, error) {
	production := &model.Production{
		Persons: make([]model.Person, 0, len(persons)),
		Groups:  make([]model.DanceGroup, 0, len(groups)),
		Slots:   make([]model.VenueSlot, 0, len(slots)),
	}

	for _, rec := range persons {
		production.Persons = append(production.Persons, model.Person{
			ID:           rec.ID,
			Name:         rec.Name,
			Availability: rec.Availability,
		})
	}

	for _, rec := range groups {
		production.Groups = append(production.Groups, model.DanceGroup{
			ID:               rec.ID,
			Name:             rec.Name,
			LeaderID:         rec.LeaderID,
			Roster:           rec.Roster,
			RequestedMinutes: rec.RequestedMinutes,
		})
	}

	for _, rec := range slots {
		date, err := time.Parse(db.DateFormat, rec.Date)
		if err != nil {
			return nil, &model.IntegrityError{Kind: "slot", ID: rec.ID,
				Reason: fmt.Sprintf("invalid date %q: want YYYY-MM-DD", rec.Date)}
		}
		production.Slots = append(production.Slots, model.VenueSlot{
			ID:     rec.ID,
			Venue:  rec.Venue,
			Date:   date,
			Window: interval.TimeInterval{Start: rec.StartMinute, End: rec.EndMinute},
		})
	}

	if err := production.Validate(); err != nil {
		return nil, err
	}

	return production, nil
}
