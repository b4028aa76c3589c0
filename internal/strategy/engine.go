package strategy

import (
	"fmt"
	"math"

	"TrendLens/internal/model"
)

const (
	bullishTargetMultiplier = 1.15
	bearishTargetMultiplier = 0.85
)

// Evaluate scores the snapshot with the policy and derives levels and a target.
func Evaluate(p Policy, snap *model.Snapshot) model.TrendAssessment {
	factors := p.Factors(snap)
	score := 0.0
	for _, f := range factors {
		score += f.Weighted
	}
	sentiment := p.Classify(score)
	support, resistance := Levels(snap)

	return model.TrendAssessment{
		Policy:     p.Name(),
		Score:      score,
		Factors:    factors,
		Sentiment:  sentiment,
		Support:    support,
		Resistance: resistance,
		Target:     p.Target(sentiment, snap.CurrentPrice, support, resistance),
	}
}

// Levels returns support and resistance from the latest Bollinger bands,
// falling back to the trailing low and high.
func Levels(snap *model.Snapshot) (support, resistance float64) {
	return snap.BollingerLower.Or(snap.TrailingLow), snap.BollingerUpper.Or(snap.TrailingHigh)
}

// Target is +15% for bullish, -15% for bearish and the support–resistance range
// otherwise. Weighted and Heuristic use it unchanged.
func Target(sentiment model.Sentiment, price, support, resistance float64) model.TargetPrice {
	switch sentiment {
	case model.Bullish:
		return model.PointTarget(price * bullishTargetMultiplier)
	case model.Bearish:
		return model.PointTarget(price * bearishTargetMultiplier)
	default:
		return model.RangeTarget(support, resistance)
	}
}

// Direction is the preliminary trend used to look for a swing.
func Direction(score float64) model.Direction {
	if score < 0 {
		return model.DirectionDown
	}
	return model.DirectionUp
}

// Points builds the technical summary and risk warnings for downstream reporting.
func Points(snap *model.Snapshot, quote model.Quote, a model.TrendAssessment) model.TechnicalPoints {
	pts := model.TechnicalPoints{
		Strength:      snap.RSI,
		PriceRangeMin: quote.Low,
		PriceRangeMax: quote.High,
		Momentum:      model.ZoneNeutral,
	}
	switch {
	case snap.RSI > 70:
		pts.Momentum = model.ZoneOverbought
	case snap.RSI < 30:
		pts.Momentum = model.ZoneOversold
	}

	switch a.Sentiment {
	case model.Bullish:
		pts.Warnings = append(pts.Warnings, "chasing risk: trend is extended, size positions and set stops")
	case model.Bearish:
		pts.Warnings = append(pts.Warnings, "bottom-fishing risk: wait for a confirmed reversal")
	}
	switch {
	case snap.RSI > 85:
		pts.Warnings = append(pts.Warnings, fmt.Sprintf("take-profit alert: RSI %.0f above 85", snap.RSI))
	case snap.RSI > 70:
		pts.Warnings = append(pts.Warnings, fmt.Sprintf("overbought: RSI %.0f, pullback risk", snap.RSI))
	case snap.RSI < 30:
		pts.Warnings = append(pts.Warnings, fmt.Sprintf("oversold: RSI %.0f, breakdown risk", snap.RSI))
	}
	if math.Abs(quote.ChangePercent) > 5 {
		pts.Warnings = append(pts.Warnings, fmt.Sprintf("volatility: last move %+.2f%%", quote.ChangePercent))
	}
	if len(snap.Substituted) > 0 {
		pts.Warnings = append(pts.Warnings, fmt.Sprintf("short history: %v substituted with defaults", snap.Substituted))
	}
	return pts
}
