package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/core/catalog"
)

func TestBuildCatalog_ClassifiesGroupsPerSlot(t *testing.T) {
	store := productionFixture()

	result, err := BuildCatalog(context.Background(), store, zap.NewNop(), 2026, 0)
	require.NoError(t, err)
	require.Len(t, result.Catalog.Slots, 2)

	monday := result.Catalog.Slots[0]
	assert.Equal(t, "main-stage-2026-03-02-1800", monday.Slot.ID)

	// Opening Number's leader is free but Jordan is blocked on Mondays.
	require.Len(t, monday.Partial, 1)
	assert.Equal(t, "g1", monday.Partial[0].GroupID)
	assert.Equal(t, catalog.StatusPartial, monday.Partial[0].Status)
	assert.InDelta(t, 0.5, monday.Partial[0].Fraction, 1e-9)
	assert.Equal(t, []string{"d2"}, monday.Partial[0].Missing)

	// The Finale cannot run at all without its leader.
	require.Len(t, monday.LeaderBlocked, 1)
	assert.Equal(t, "g2", monday.LeaderBlocked[0].GroupID)

	tuesday := result.Catalog.Slots[1]
	assert.Len(t, tuesday.ConflictFree, 2)
	assert.Empty(t, tuesday.Partial)
	assert.Empty(t, tuesday.LeaderBlocked)
}

func TestBuildCatalog_RanksMostConstrainedFirst(t *testing.T) {
	store := productionFixture()

	result, err := BuildCatalog(context.Background(), store, zap.NewNop(), 2026, 0)
	require.NoError(t, err)
	require.Len(t, result.Ranked, 2)

	// The Finale's leader can only use half the venue minutes, so it
	// schedules first.
	assert.Equal(t, "g2", result.Ranked[0].GroupID)
	assert.InDelta(t, 5.0, result.Ranked[0].Priority, 1e-9)
	assert.Equal(t, "g1", result.Ranked[1].GroupID)
	assert.InDelta(t, 10.0, result.Ranked[1].Priority, 1e-9)
}
