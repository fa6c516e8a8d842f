package reporting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCatalog_ClassifiesGroupsPerSlot(t *testing.T) {
	result := demoCatalog(t, demoProduction())

	var buf bytes.Buffer
	RenderCatalog(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "MONDAY Mar 2 2026")
	assert.Contains(t, out, "Venue: Main Stage  Time: 18:00-21:00")
	assert.Contains(t, out, "✗ Finale (g2): leader Jordan Wells (d2) unavailable")
	assert.Contains(t, out, "~ Opening Number (g1): 50% of roster, missing Jordan Wells (d2)")

	assert.Contains(t, out, "TUESDAY Mar 3 2026")
	assert.Contains(t, out, "✓ Opening Number (g1)")
	assert.Contains(t, out, "✓ Finale (g2)")
}

func TestRenderCatalog_EndsWithPriorityRanking(t *testing.T) {
	result := demoCatalog(t, demoProduction())

	var buf bytes.Buffer
	RenderCatalog(&buf, result)
	out := buf.String()

	require.Contains(t, out, "GROUP PRIORITIES (most constrained first)")
	// The Finale is the constrained group and must outrank the Opening
	// Number despite coming second in the input.
	finale := strings.Index(out, "1  Finale (g2)")
	opening := strings.Index(out, "2  Opening Number (g1)")
	require.GreaterOrEqual(t, finale, 0)
	require.GreaterOrEqual(t, opening, 0)
	assert.Less(t, finale, opening)
}

func TestRenderPriorities_ShowsAllThreeMeasures(t *testing.T) {
	result := demoCatalog(t, demoProduction())

	var buf bytes.Buffer
	RenderPriorities(&buf, result.Ranked, result.Analysis.Data.Production.Groups)
	out := buf.String()

	assert.Contains(t, out, "Priority")
	assert.Contains(t, out, "Feasibility")
	assert.Contains(t, out, "Participation")
	assert.Contains(t, out, "5.00")
	assert.Contains(t, out, "10.00")
	assert.Contains(t, out, "0.75")
}
