package strategy

import (
	"fmt"
	"math"

	"TrendLens/internal/model"
)

// RuleBased is the coarse policy with ±1/±2 increments and thresholds ±2.
// Unlike Weighted it treats RSI extremes as contrarian signals.
type RuleBased struct{}

var ruleBasedThresholds = thresholds{bull: 2, bear: -2}

const (
	resistanceCap = 1.05
	supportFloor  = 0.95
)

func (RuleBased) Name() string { return PolicyRuleBased }

func (RuleBased) Classify(score float64) model.Sentiment { return ruleBasedThresholds.classify(score) }

// Target caps the bullish move at 5% above resistance and the bearish move at
// 5% below support.
func (RuleBased) Target(sentiment model.Sentiment, price, support, resistance float64) model.TargetPrice {
	switch sentiment {
	case model.Bullish:
		return model.PointTarget(math.Min(price*bullishTargetMultiplier, resistance*resistanceCap))
	case model.Bearish:
		return model.PointTarget(math.Max(price*bearishTargetMultiplier, support*supportFloor))
	default:
		return model.RangeTarget(support, resistance)
	}
}

func (RuleBased) Factors(s *model.Snapshot) []model.FactorScore {
	var rsi float64
	rsiNote := "neutral zone"
	switch {
	case s.RSI < 30:
		rsi, rsiNote = 2, "oversold"
	case s.RSI > 70:
		rsi, rsiNote = -2, "overbought"
	}

	macd := compare(s.MACD, s.MACDSignal)
	macdNote := "flat"
	if macd > 0 {
		macdNote = "bullish crossover"
	} else if macd < 0 {
		macdNote = "bearish crossover"
	}

	var trend float64
	trendNote := "no alignment"
	switch {
	case s.CurrentPrice > s.SMA20 && s.SMA20 > s.SMA50:
		trend, trendNote = 2, "strong uptrend"
	case s.CurrentPrice < s.SMA20 && s.SMA20 < s.SMA50:
		trend, trendNote = -2, "strong downtrend"
	}

	long := compare(s.CurrentPrice, s.SMA200)

	return []model.FactorScore{
		factor("RSI extremes", rsi, 1, fmt.Sprintf("%s (RSI=%.1f)", rsiNote, s.RSI)),
		factor("MACD crossover", macd, 1, macdNote),
		factor("MA trend", trend, 1, trendNote),
		factor("Long-term MA", long, 1, fmt.Sprintf("price %s SMA200", relation(long))),
	}
}
