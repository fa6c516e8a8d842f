package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/internal/config"
)

func expansionConfig() *config.Config {
	return &config.Config{
		ProductionYear: 2026,
		SeasonStart:    "2026-03-02",
		SeasonEnd:      "2026-03-15",
		VenueTemplates: []config.VenueTemplate{
			{
				Venue: "Main Stage",
				RRule: "FREQ=WEEKLY;BYDAY=MO,WE",
				Start: "18:00",
				End:   "21:00",
			},
		},
	}
}

func TestExpandVenueSlots_ExpandsTemplateAcrossSeason(t *testing.T) {
	store := &mockProductionStore{}
	cfg := expansionConfig()
	require.NoError(t, config.Validate(cfg))

	result, err := ExpandVenueSlots(context.Background(), store, zap.NewNop(), cfg)
	require.NoError(t, err)

	// Two Mondays and two Wednesdays fall inside the season.
	require.Len(t, result.Slots, 4)
	assert.Equal(t, "main-stage-2026-03-02-1800", result.Slots[0].ID)
	assert.Equal(t, "2026-03-04", result.Slots[1].Date)
	assert.Equal(t, "2026-03-09", result.Slots[2].Date)
	assert.Equal(t, "2026-03-11", result.Slots[3].Date)

	for _, rec := range result.Slots {
		assert.Equal(t, "Main Stage", rec.Venue)
		assert.Equal(t, 1080, rec.StartMinute)
		assert.Equal(t, 1260, rec.EndMinute)
	}

	assert.Equal(t, result.Slots, store.insertedSlots)
}

func TestExpandVenueSlots_SecondTemplateAppends(t *testing.T) {
	store := &mockProductionStore{}
	cfg := expansionConfig()
	cfg.VenueTemplates = append(cfg.VenueTemplates, config.VenueTemplate{
		Venue: "Annex",
		RRule: "FREQ=WEEKLY;BYDAY=SA",
		Start: "10:00",
		End:   "13:30",
	})

	result, err := ExpandVenueSlots(context.Background(), store, zap.NewNop(), cfg)
	require.NoError(t, err)

	// 4 Main Stage slots plus the Saturdays of 2026-03-07 and 2026-03-14.
	require.Len(t, result.Slots, 6)
	assert.Equal(t, "annex-2026-03-07-1000", result.Slots[4].ID)
	assert.Equal(t, "annex-2026-03-14-1000", result.Slots[5].ID)
	assert.Equal(t, 600, result.Slots[4].StartMinute)
	assert.Equal(t, 810, result.Slots[4].EndMinute)
}

func TestExpandVenueSlots_NoTemplates(t *testing.T) {
	store := &mockProductionStore{}
	cfg := &config.Config{ProductionYear: 2026}

	result, err := ExpandVenueSlots(context.Background(), store, zap.NewNop(), cfg)
	require.NoError(t, err)

	assert.Empty(t, result.Slots)
	assert.Empty(t, store.insertedSlots)
}

func TestExpandVenueSlots_InsertErrorPropagates(t *testing.T) {
	store := &mockProductionStore{insertErr: errors.New("disk full")}
	cfg := expansionConfig()

	_, err := ExpandVenueSlots(context.Background(), store, zap.NewNop(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store expanded slots")
}
