package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/db"
)

// GroupRequest is one group's requested minutes.
type GroupRequest struct {
	GroupID string
	Minutes int
}

// LeaderRequest sums the requests of the groups one leader runs.
type LeaderRequest struct {
	LeaderID string
	Total    int
	Groups   []GroupRequest
}

// TimeAnalysis compares requested rehearsal minutes with available venue
// minutes before any scheduling is attempted.
type TimeAnalysis struct {
	TotalRequested  int
	TotalAvailable  int
	Deficit         int
	ByLeader        []LeaderRequest
	MissingRequests []string
}

// HasDeficit reports whether the groups asked for more time than the
// venues offer.
func (a *TimeAnalysis) HasDeficit() bool {
	return a.Deficit > 0
}

// Surplus returns the venue minutes left over, zero under deficit.
func (a *TimeAnalysis) Surplus() int {
	if a.Deficit < 0 {
		return -a.Deficit
	}
	return 0
}

// Utilization returns requested time as a percentage of available time,
// zero when no venue time exists.
func (a *TimeAnalysis) Utilization() float64 {
	if a.TotalAvailable == 0 {
		return 0
	}
	return float64(a.TotalRequested) / float64(a.TotalAvailable) * 100.0
}

// AnalyzeTime sums every group's requested minutes against total venue
// capacity. Groups without a request are listed, not guessed at; a
// deficit is a planning signal, not an error.
func AnalyzeTime(ctx context.Context, store db.ProductionStore, logger *zap.Logger) (*TimeAnalysis, error) {
	logger.Info("Analyzing requested versus available time")

	groups, err := store.GetGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	slots, err := store.GetSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}

	analysis := &TimeAnalysis{}
	byLeader := make(map[string]*LeaderRequest)

	for _, g := range groups {
		if g.RequestedMinutes <= 0 {
			analysis.MissingRequests = append(analysis.MissingRequests, g.ID)
			continue
		}

		analysis.TotalRequested += g.RequestedMinutes

		lr, ok := byLeader[g.LeaderID]
		if !ok {
			lr = &LeaderRequest{LeaderID: g.LeaderID}
			byLeader[g.LeaderID] = lr
		}
		lr.Total += g.RequestedMinutes
		lr.Groups = append(lr.Groups, GroupRequest{GroupID: g.ID, Minutes: g.RequestedMinutes})
	}

	for _, rec := range slots {
		analysis.TotalAvailable += rec.EndMinute - rec.StartMinute
	}
	analysis.Deficit = analysis.TotalRequested - analysis.TotalAvailable

	analysis.ByLeader = make([]LeaderRequest, 0, len(byLeader))
	for _, lr := range byLeader {
		analysis.ByLeader = append(analysis.ByLeader, *lr)
	}
	sort.Slice(analysis.ByLeader, func(i, j int) bool {
		return analysis.ByLeader[i].LeaderID < analysis.ByLeader[j].LeaderID
	})

	logger.Info("Time analysis finished",
		zap.Int("requested_minutes", analysis.TotalRequested),
		zap.Int("available_minutes", analysis.TotalAvailable),
		zap.Int("deficit", analysis.Deficit),
		zap.Int("missing_requests", len(analysis.MissingRequests)))

	return analysis, nil
}
