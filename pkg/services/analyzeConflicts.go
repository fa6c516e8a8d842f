package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/core/conflict"
	"github.com/emmalawson/stagecall/pkg/db"
)

// ConflictAnalysis pairs a loaded production with its conflict matrix.
type ConflictAnalysis struct {
	Data   *ProductionData
	Report *conflict.Report
}

// AnalyzeConflicts loads the production and builds the complete
// person-by-slot conflict matrix.
func AnalyzeConflicts(ctx context.Context, store db.ProductionStore, logger *zap.Logger, productionYear int) (*ConflictAnalysis, error) {
	data, err := LoadProduction(ctx, store, logger, productionYear)
	if err != nil {
		return nil, err
	}

	report := conflict.Analyze(data.Profiles, data.Production.Slots)

	logger.Info("Conflict analysis finished",
		zap.Int("cells", len(report.Entries)),
		zap.Float64("conflict_rate", report.Rate))

	return &ConflictAnalysis{Data: data, Report: report}, nil
}
