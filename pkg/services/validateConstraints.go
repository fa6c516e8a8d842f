package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/emmalawson/stagecall/pkg/core/grammar"
	"github.com/emmalawson/stagecall/pkg/db"
)

// ValidationStats summarizes a constraint validation pass.
type ValidationStats struct {
	Rows      int
	EmptyRows int
	Tokens    int
	Valid     int
	Invalid   int
}

// SuccessRate returns the share of valid tokens as a percentage. An
// input with no tokens at all counts as fully valid.
func (s ValidationStats) SuccessRate() float64 {
	if s.Tokens == 0 {
		return 100.0
	}
	return float64(s.Valid) / float64(s.Tokens) * 100.0
}

// HasErrors reports whether any token failed to parse.
func (s ValidationStats) HasErrors() bool {
	return s.Invalid > 0
}

// ConstraintError records one unparseable availability token.
type ConstraintError struct {
	PersonID   string
	PersonName string
	Row        int
	TokenNum   int
	Token      string
	Reason     string
}

// ConstraintReport is the outcome of validating every person's
// availability text.
type ConstraintReport struct {
	Stats  ValidationStats
	Errors []ConstraintError
}

// ValidateConstraints parses every availability token of every person
// and collects per-token failures instead of stopping at the first.
// Rows are numbered from 2, matching the source table's header row.
func ValidateConstraints(ctx context.Context, store db.PersonStore, logger *zap.Logger, productionYear int) (*ConstraintReport, error) {
	logger.Info("Validating availability constraints", zap.Int("production_year", productionYear))

	records, err := store.GetPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch persons: %w", err)
	}

	parser := grammar.NewParser(grammar.Options{ProductionYear: productionYear})
	report := &ConstraintReport{}

	for i, rec := range records {
		report.Stats.Rows++
		row := i + 2

		text := strings.TrimSpace(rec.Availability)
		if text == "" {
			report.Stats.EmptyRows++
			continue
		}

		for _, token := range parser.Parse(text) {
			report.Stats.Tokens++
			if token.Err == nil {
				report.Stats.Valid++
				continue
			}

			report.Stats.Invalid++
			report.Errors = append(report.Errors, ConstraintError{
				PersonID:   rec.ID,
				PersonName: rec.Name,
				Row:        row,
				TokenNum:   token.Index + 1,
				Token:      token.Text,
				Reason:     strings.ReplaceAll(token.Err.Error(), "\n", " | "),
			})
		}
	}

	logger.Info("Constraint validation finished",
		zap.Int("rows", report.Stats.Rows),
		zap.Int("empty_rows", report.Stats.EmptyRows),
		zap.Int("tokens", report.Stats.Tokens),
		zap.Int("invalid", report.Stats.Invalid))

	return report, nil
}
