package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentiment is the discrete trend classification.
type Sentiment string

const (
	Bullish Sentiment = "bullish"
	Bearish Sentiment = "bearish"
	Neutral Sentiment = "neutral"
)

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string
	RawScore   float64
	Weight     float64
	Weighted   float64
	Commentary string
}

// TargetPrice is either a single price or a support–resistance range, in cents.
type TargetPrice struct {
	Low     decimal.Decimal
	High    decimal.Decimal
	IsRange bool
}

// PointTarget rounds p to cents.
func PointTarget(p float64) TargetPrice {
	d := decimal.NewFromFloat(p).Round(2)
	return TargetPrice{Low: d, High: d}
}

// RangeTarget rounds both bounds to cents.
func RangeTarget(low, high float64) TargetPrice {
	return TargetPrice{
		Low:     decimal.NewFromFloat(low).Round(2),
		High:    decimal.NewFromFloat(high).Round(2),
		IsRange: true,
	}
}

func (t TargetPrice) String() string {
	if t.IsRange {
		return fmt.Sprintf("$%s - $%s", t.Low.StringFixed(2), t.High.StringFixed(2))
	}
	return "$" + t.Low.StringFixed(2)
}

// TrendAssessment is the final scored classification handed to report generation.
type TrendAssessment struct {
	Policy     string
	Score      float64
	Factors    []FactorScore
	Sentiment  Sentiment
	Support    float64
	Resistance float64
	Target     TargetPrice
}

// MomentumZone buckets the RSI reading.
type MomentumZone string

const (
	ZoneOverbought MomentumZone = "overbought"
	ZoneOversold   MomentumZone = "oversold"
	ZoneNeutral    MomentumZone = "neutral"
)

// TechnicalPoints summarises the key levels and risk flags for downstream reporting.
type TechnicalPoints struct {
	Strength      float64
	PriceRangeMin float64
	PriceRangeMax float64
	Momentum      MomentumZone
	Warnings      []string
}

// Analysis is the complete output of one analysis run.
type Analysis struct {
	Symbol     string
	Bars       []Bar
	Quote      Quote
	Indicators IndicatorSet
	Snapshot   Snapshot
	Swing      *Swing           // nil when no swing was found
	Fibonacci  *FibonacciLevels // nil when Swing is nil
	Assessment TrendAssessment
	Points     TechnicalPoints
}
