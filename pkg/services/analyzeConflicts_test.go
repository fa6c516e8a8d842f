package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnalyzeConflicts_BuildsFullMatrix(t *testing.T) {
	store := productionFixture()

	analysis, err := AnalyzeConflicts(context.Background(), store, zap.NewNop(), 2026)
	require.NoError(t, err)

	// Three persons against two slots.
	assert.Len(t, analysis.Report.Entries, 6)

	// Jordan is blocked on Mondays and nowhere else.
	assert.True(t, analysis.Report.Conflicted("d2", "main-stage-2026-03-02-1800"))
	assert.False(t, analysis.Report.Conflicted("d2", "annex-2026-03-03-1000"))
	assert.False(t, analysis.Report.Conflicted("d1", "main-stage-2026-03-02-1800"))

	// Riley's Tuesday evening constraint starts after the Annex slot ends.
	assert.False(t, analysis.Report.Conflicted("d3", "annex-2026-03-03-1000"))

	assert.Equal(t, 1, analysis.Report.ConflictsByPerson["d2"])
	assert.Equal(t, 1, analysis.Report.ConflictsBySlot["main-stage-2026-03-02-1800"])
	assert.InDelta(t, 1.0/6.0, analysis.Report.Rate, 1e-9)
}
