// Package analysis runs the indicator pipeline and trend scoring for one
// instrument, and fans independent instruments out concurrently.
package analysis

import (
	"errors"
	"fmt"

	"github.com/phuslu/log"

	"TrendLens/internal/calculator"
	"TrendLens/internal/model"
	"TrendLens/internal/strategy"
)

// Params configures the pipeline.
type Params struct {
	Indicators calculator.Params
	Swing      calculator.SwingParams
	Timeframe  calculator.Timeframe
	MinBars    int
}

// DefaultParams returns the standard daily-bar settings.
func DefaultParams() Params {
	return Params{
		Indicators: calculator.DefaultParams(),
		Swing:      calculator.DefaultSwingParams(),
		Timeframe:  calculator.Timeframe{Kind: calculator.TimeframeDaily},
		MinBars:    1,
	}
}

// Analyzer is stateless apart from its configuration and is safe for concurrent use.
type Analyzer struct {
	params Params
	policy strategy.Policy
}

// New creates an Analyzer. A nil policy selects the weighted policy.
func New(params Params, policy strategy.Policy) *Analyzer {
	if policy == nil {
		policy = strategy.Weighted{}
	}
	return &Analyzer{params: params, policy: policy}
}

// Policy returns the scoring policy in use.
func (a *Analyzer) Policy() strategy.Policy { return a.policy }

// Analyze normalizes raw bars, rolls them up to the configured timeframe and
// derives indicators, trend assessment and, when a swing is found, Fibonacci
// levels. A quote without a finite positive price is replaced by one derived
// from the last bars.
func (a *Analyzer) Analyze(symbol string, raw []model.RawBar, quote model.Quote) (*model.Analysis, error) {
	bars, err := calculator.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}
	bars = a.params.Timeframe.Apply(bars)
	if err := calculator.RequireBars(bars, a.params.MinBars); err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}
	if !calculator.ValidPrice(quote.Price) {
		quote = model.QuoteFromBars(symbol, bars)
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}

	set := calculator.ComputeIndicators(bars, a.params.Indicators)
	snap := calculator.Resolve(&set, bars, quote, a.params.Indicators.TrailingWindow)
	assessment := strategy.Evaluate(a.policy, &snap)

	result := &model.Analysis{
		Symbol:     symbol,
		Bars:       bars,
		Quote:      quote,
		Indicators: set,
		Snapshot:   snap,
		Assessment: assessment,
		Points:     strategy.Points(&snap, quote, assessment),
	}

	sw, err := calculator.DetectSwing(bars, strategy.Direction(assessment.Score), a.params.Swing)
	switch {
	case err == nil:
		fib := calculator.FibonacciFor(sw, assessment.Sentiment)
		result.Swing = &sw
		result.Fibonacci = &fib
	case errors.Is(err, calculator.ErrNoSwingFound):
		log.Debug().Str("symbol", symbol).Err(err).Msg("fibonacci skipped")
	default:
		return nil, fmt.Errorf("%s: detect swing: %w", symbol, err)
	}

	log.Debug().Str("symbol", symbol).Str("policy", assessment.Policy).Str("timeframe", a.params.Timeframe.String()).
		Float64("score", assessment.Score).Str("sentiment", string(assessment.Sentiment)).Msg("analysis complete")
	return result, nil
}
