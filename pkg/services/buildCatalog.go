package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/core/catalog"
	"github.com/emmalawson/stagecall/pkg/core/scoring"
	"github.com/emmalawson/stagecall/pkg/db"
)

// CatalogResult bundles the per-slot catalog with the group priority
// ranking derived from the same conflict matrix.
type CatalogResult struct {
	Analysis *ConflictAnalysis
	Catalog  *catalog.Catalog
	Scores   []scoring.Score
	Ranked   []scoring.Score
}

// BuildCatalog derives the per-slot scheduling catalog and ranks the
// groups by priority. An epsilon of zero falls back to the scoring
// default.
func BuildCatalog(ctx context.Context, store db.ProductionStore, logger *zap.Logger, productionYear int, epsilon float64) (*CatalogResult, error) {
	analysis, err := AnalyzeConflicts(ctx, store, logger, productionYear)
	if err != nil {
		return nil, err
	}

	data := analysis.Data
	cat, err := catalog.Generate(analysis.Report, data.Production.Groups, data.Production.Slots)
	if err != nil {
		return nil, fmt.Errorf("failed to generate catalog: %w", err)
	}

	scores := scoring.Compute(data.Profiles, data.Production.Groups, data.Production.Slots)
	ranked := scoring.Rank(scores, epsilon)

	logger.Info("Catalog built",
		zap.Int("slots", len(cat.Slots)),
		zap.Int("groups", len(scores)))

	return &CatalogResult{Analysis: analysis, Catalog: cat, Scores: scores, Ranked: ranked}, nil
}
