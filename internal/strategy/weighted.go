package strategy

import (
	"fmt"

	"TrendLens/internal/model"
)

// Weighted is the fine-grained policy: price position and moving-average
// alignment dominate, MACD adds ±1 and RSI only confirms. Thresholds ±2.5.
type Weighted struct{}

var weightedThresholds = thresholds{bull: 2.5, bear: -2.5}

func (Weighted) Name() string { return PolicyWeighted }

func (Weighted) Classify(score float64) model.Sentiment { return weightedThresholds.classify(score) }

func (Weighted) Target(sentiment model.Sentiment, price, support, resistance float64) model.TargetPrice {
	return Target(sentiment, price, support, resistance)
}

func (Weighted) Factors(s *model.Snapshot) []model.FactorScore {
	return []model.FactorScore{
		pricePosition("Price vs SMA20", s.CurrentPrice, s.SMA20, 1.0),
		pricePosition("Price vs SMA50", s.CurrentPrice, s.SMA50, 1.5),
		pricePosition("Price vs SMA200", s.CurrentPrice, s.SMA200, 1.0),
		alignment("SMA20 vs SMA50", s.SMA20, s.SMA50, 1.5),
		alignment("SMA50 vs SMA200", s.SMA50, s.SMA200, 0.5),
		macdMomentum(s),
		rsiConfirmation(s.RSI),
	}
}

func pricePosition(name string, price, ma, weight float64) model.FactorScore {
	sign := compare(price, ma)
	return factor(name, sign, weight, fmt.Sprintf("price %.2f %s %.2f", price, relation(sign), ma))
}

// alignment scores a golden (+) or death (-) cross between a faster and slower average.
func alignment(name string, fast, slow, weight float64) model.FactorScore {
	sign := compare(fast, slow)
	commentary := "flat"
	switch {
	case sign > 0:
		commentary = "golden alignment"
	case sign < 0:
		commentary = "death alignment"
	}
	return factor(name, sign, weight, commentary)
}

func macdMomentum(s *model.Snapshot) model.FactorScore {
	var raw float64
	commentary := "mixed"
	switch {
	case s.MACD > 0 && s.MACD > s.MACDSignal:
		raw, commentary = 1, "positive and above signal"
	case s.MACD < 0 && s.MACD < s.MACDSignal:
		raw, commentary = -1, "negative and below signal"
	}
	return factor("MACD momentum", raw, 1.0, fmt.Sprintf("%s (MACD=%.3f signal=%.3f)", commentary, s.MACD, s.MACDSignal))
}

// rsiConfirmation scores the 30-70 trend bands above the extremes.
func rsiConfirmation(rsi float64) model.FactorScore {
	var raw float64
	switch {
	case rsi > 70:
		raw = 0.2
	case rsi > 50 && rsi < 70:
		raw = 0.5
	case rsi > 30 && rsi < 50:
		raw = -0.5
	case rsi < 30:
		raw = -0.2
	}
	return factor("RSI confirmation", raw, 1.0, fmt.Sprintf("RSI=%.1f", rsi))
}
