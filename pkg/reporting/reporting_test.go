package reporting

import (
	"testing"
	"time"

	"github.com/emmalawson/stagecall/pkg/core/catalog"
	"github.com/emmalawson/stagecall/pkg/core/conflict"
	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/core/interval"
	"github.com/emmalawson/stagecall/pkg/core/model"
	"github.com/emmalawson/stagecall/pkg/core/scoring"
	"github.com/emmalawson/stagecall/pkg/services"
	"github.com/stretchr/testify/require"
)

// demoProduction is a two-group cast with one traced conflict: Jordan is
// out on Mondays, which blocks the Finale's Monday slot outright and
// costs the Opening Number half its roster there.
func demoProduction() *model.Production {
	return &model.Production{
		Persons: []model.Person{
			{ID: "d1", Name: "Casey Brook"},
			{ID: "d2", Name: "Jordan Wells", Availability: "m"},
			{ID: "d3", Name: "Riley Moss", Availability: "tu after 5pm"},
		},
		Groups: []model.DanceGroup{
			{ID: "g1", Name: "Opening Number", LeaderID: "d1", Roster: []string{"d1", "d2"}, RequestedMinutes: 120},
			{ID: "g2", Name: "Finale", LeaderID: "d2", Roster: []string{"d2", "d3"}, RequestedMinutes: 60},
		},
		Slots: []model.VenueSlot{
			{ID: "main-stage-2026-03-02-1800", Venue: "Main Stage",
				Date:   interval.Date(2026, time.March, 2),
				Window: interval.TimeInterval{Start: 1080, End: 1260}},
			{ID: "annex-2026-03-03-1000", Venue: "Annex",
				Date:   interval.Date(2026, time.March, 3),
				Window: interval.TimeInterval{Start: 600, End: 780}},
		},
	}
}

func demoAnalysis(t *testing.T, prod *model.Production) *services.ConflictAnalysis {
	t.Helper()
	parser := grammar.NewParser(grammar.Options{ProductionYear: 2026})
	profiles := conflict.BuildProfiles(parser, prod.Persons)
	return &services.ConflictAnalysis{
		Data:   &services.ProductionData{Production: prod, Profiles: profiles},
		Report: conflict.Analyze(profiles, prod.Slots),
	}
}

func demoCatalog(t *testing.T, prod *model.Production) *services.CatalogResult {
	t.Helper()
	analysis := demoAnalysis(t, prod)
	cat, err := catalog.Generate(analysis.Report, prod.Groups, prod.Slots)
	require.NoError(t, err)
	scores := scoring.Compute(analysis.Data.Profiles, prod.Groups, prod.Slots)
	return &services.CatalogResult{
		Analysis: analysis,
		Catalog:  cat,
		Scores:   scores,
		Ranked:   scoring.Rank(scores, 0),
	}
}
