package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emmalawson/stagecall/pkg/core/model"
)

func TestRenderConflicts_GroupsBlockedSlotsByPerson(t *testing.T) {
	analysis := demoAnalysis(t, demoProduction())

	var buf bytes.Buffer
	RenderConflicts(&buf, analysis)
	out := buf.String()

	assert.Contains(t, out, "AVAILABILITY CONFLICTS (3 people, 2 slots)")
	assert.Contains(t, out, "Jordan Wells (d2): 1 of 2 slots blocked")
	assert.Contains(t, out, "✗ Main Stage, Mon Mar 2 18:00-21:00")
	assert.Contains(t, out, "blocked by: Monday")

	// Casey and Riley never appear as blocked; they land in the tally.
	assert.NotContains(t, out, "Casey Brook (d1):")
	assert.Contains(t, out, "2 of 3 people are free for every slot")
	assert.Contains(t, out, "Conflict rate: 16.7% of person-slot pairs")
}

func TestRenderConflicts_UnparseableAvailabilityGetsHint(t *testing.T) {
	prod := demoProduction()
	prod.Persons = append(prod.Persons, model.Person{
		ID: "d4", Name: "Sam Park", Availability: "whenever works",
	})
	analysis := demoAnalysis(t, prod)

	var buf bytes.Buffer
	RenderConflicts(&buf, analysis)
	out := buf.String()

	assert.Contains(t, out, "Sam Park (d4): 2 of 2 slots blocked")
	assert.Contains(t, out, "treated as fully unavailable")
	assert.Contains(t, out, "run the validate command")
	assert.NotContains(t, out, "blocked by: \n")
}
