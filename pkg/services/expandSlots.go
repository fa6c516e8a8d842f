package services

import (
	"context"
	"fmt"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/internal/config"
	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/db"
)

// ExpandResult lists the dated slots produced from the venue templates.
type ExpandResult struct {
	Slots []db.SlotRecord
}

// ExpandVenueSlots expands each recurring venue template into dated slot
// records between the season bounds and stores them. Slot IDs derive
// from the venue, date and start time, so re-running the expansion never
// duplicates rows.
func ExpandVenueSlots(ctx context.Context, store db.SlotStore, logger *zap.Logger, cfg *config.Config) (*ExpandResult, error) {
	seasonStart, seasonEnd := cfg.Season()

	logger.Info("Expanding venue templates",
		zap.Int("templates", len(cfg.VenueTemplates)),
		zap.String("season_start", cfg.SeasonStart),
		zap.String("season_end", cfg.SeasonEnd))

	result := &ExpandResult{}
	for i, tpl := range cfg.VenueTemplates {
		rule, err := rrule.StrToRRule(tpl.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in venueTemplates[%d]: %w", i, err)
		}
		rule.DTStart(seasonStart)

		startMinute, err := interval.ParseMinute(tpl.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start in venueTemplates[%d]: %w", i, err)
		}
		endMinute, err := interval.ParseMinute(tpl.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end in venueTemplates[%d]: %w", i, err)
		}

		occurrences := rule.Between(seasonStart, seasonEnd, true)
		logger.Debug("Template expanded",
			zap.String("venue", tpl.Venue),
			zap.String("rrule", tpl.RRule),
			zap.Int("occurrences", len(occurrences)))

		for _, occ := range occurrences {
			date := occ.Format(db.DateFormat)
			result.Slots = append(result.Slots, db.SlotRecord{
				ID:          db.SlotID(tpl.Venue, date, startMinute),
				Venue:       tpl.Venue,
				Date:        date,
				StartMinute: startMinute,
				EndMinute:   endMinute,
			})
		}
	}

	if len(result.Slots) == 0 {
		logger.Warn("Venue templates produced no slots inside the season")
		return result, nil
	}

	if err := store.InsertSlots(ctx, result.Slots); err != nil {
		return nil, fmt.Errorf("failed to store expanded slots: %w", err)
	}

	logger.Info("Venue slots stored", zap.Int("slots", len(result.Slots)))

	return result, nil
}
