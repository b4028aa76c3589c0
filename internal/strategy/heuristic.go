package strategy

import (
	"TrendLens/internal/model"
)

// Heuristic is the first-match rule chain used alongside narrative generation:
// RSI extremes and a 5% distance from SMA20 decide first, then full MA/MACD agreement.
// It emits a single ±1 factor classified at ±1.
type Heuristic struct{}

var heuristicThresholds = thresholds{bull: 1, bear: -1}

func (Heuristic) Name() string { return PolicyHeuristic }

func (Heuristic) Classify(score float64) model.Sentiment { return heuristicThresholds.classify(score) }

func (Heuristic) Target(sentiment model.Sentiment, price, support, resistance float64) model.TargetPrice {
	return Target(sentiment, price, support, resistance)
}

func (Heuristic) Factors(s *model.Snapshot) []model.FactorScore {
	var raw float64
	var note string
	switch {
	case s.RSI > 70:
		raw, note = -1, "RSI overbought"
	case s.CurrentPrice < s.SMA20*0.95:
		raw, note = -1, "price more than 5% below SMA20"
	case s.RSI < 30:
		raw, note = 1, "RSI oversold"
	case s.CurrentPrice > s.SMA20*1.05:
		raw, note = 1, "price more than 5% above SMA20"
	case s.CurrentPrice > s.SMA20 && s.CurrentPrice > s.SMA50 && s.MACD > 0:
		raw, note = 1, "above SMA20/SMA50 with positive MACD"
	case s.CurrentPrice < s.SMA20 && s.CurrentPrice < s.SMA50 && s.MACD < 0:
		raw, note = -1, "below SMA20/SMA50 with negative MACD"
	default:
		note = "no rule matched"
	}
	return []model.FactorScore{factor("Heuristic", raw, 1, note)}
}
