package usecase

import (
	"fmt"

	"go.uber.org/zap"
	"ngramlp/internal/adapter/converter"
	"ngramlp/internal/adapter/scorer"
	"ngramlp/internal/port"
)

// ScoreUseCase rates text against a saved table.
type ScoreUseCase struct {
	store     port.TableStore
	logger    *zap.Logger
	floor     float64
	uppercase bool
}

// NewScoreUseCase creates a new score use case. A floor of 0 derives the
// floor from the saved table's total.
func NewScoreUseCase(store port.TableStore, logger *zap.Logger, floor float64, uppercase bool) *ScoreUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreUseCase{
		store:     store,
		logger:    logger,
		floor:     floor,
		uppercase: uppercase,
	}
}

type ScoreResult struct {
	Text  string
	Score float64
}

// Scorer loads the saved table and builds a scorer over it.
func (u *ScoreUseCase) Scorer() (*scorer.Scorer, error) {
	stats, err := u.store.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to read table stats: %w", err)
	}
	table, err := u.store.LoadTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load table: %w", err)
	}

	base, err := converter.ParseBase(stats.Base)
	if err != nil {
		return nil, err
	}
	records, err := converter.LogProbs(table, base)
	if err != nil {
		return nil, err
	}

	floor := u.floor
	if floor == 0 {
		floor = scorer.DefaultFloor(table.Total, base)
	}
	return scorer.New(records, stats.Order, floor, u.uppercase)
}

// Score rates each text in order.
func (u *ScoreUseCase) Score(texts []string) ([]ScoreResult, error) {
	s, err := u.Scorer()
	if err != nil {
		return nil, err
	}
	u.logger.Debug("built scorer", zap.Int("order", s.Order()), zap.Float64("floor", s.Floor()))
	results := make([]ScoreResult, len(texts))
	for i, text := range texts {
		results[i] = ScoreResult{Text: text, Score: s.Score(text)}
	}
	return results, nil
}
