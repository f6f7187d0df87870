package screen

import (
	"fmt"

	"github.com/rs/zerolog"

	"dividend-screener/internal/table"
)

// Thresholds are the screening criteria. Rates are percentages except
// MaxPayoutRate, which Run converts to a fraction for the payout stage.
type Thresholds struct {
	Inflation     float64
	IndexYield    float64
	MinYield      float64
	MaxYield      float64
	MinGrowthRate float64
	MaxPayoutRate float64
}

// Pipeline runs the three stages in order: yield, payout, growth.
type Pipeline struct {
	thresholds Thresholds
	logger     zerolog.Logger
}

// NewPipeline constructs a pipeline for the given thresholds.
func NewPipeline(th Thresholds, logger zerolog.Logger) *Pipeline {
	return &Pipeline{thresholds: th, logger: logger.With().Str("component", "screen").Logger()}
}

// Run screens t and returns the candidates that pass every stage.
func (p *Pipeline) Run(t *table.Table) (*table.Table, error) {
	th := p.thresholds
	p.logger.Info().
		Float64("effective_min_yield", EffectiveMinYield(th.IndexYield, th.Inflation, th.MinYield)).
		Float64("max_yield", th.MaxYield).
		Float64("min_growth_rate", th.MinGrowthRate).
		Float64("max_payout_rate", th.MaxPayoutRate).
		Int("rows", t.Height()).
		Msg("screening")

	byYield, err := Yield(t, th.IndexYield, th.Inflation, th.MinYield, th.MaxYield)
	if err != nil {
		return nil, fmt.Errorf("yield stage: %w", err)
	}
	p.logger.Info().Int("rows", byYield.Height()).Msg("shortlisted by dividend yield")

	byPayout, err := Payout(byYield, th.MaxPayoutRate/100)
	if err != nil {
		return nil, fmt.Errorf("payout stage: %w", err)
	}
	p.logger.Info().Int("rows", byPayout.Height()).Msg("shortlisted by dividend payout")

	byGrowth, err := Growth(byPayout, th.MinGrowthRate)
	if err != nil {
		return nil, fmt.Errorf("growth stage: %w", err)
	}
	p.logger.Info().Int("rows", byGrowth.Height()).Msg("shortlisted by dividend growth")

	return byGrowth, nil
}
