package calculator

import (
	"fmt"

	"TrendLens/internal/model"
)

var (
	retracementRatios = []float64{0.236, 0.382, 0.5, 0.618, 0.786}
	extensionRatios   = []float64{1.272, 1.414, 1.618, 2.0}
)

// Retracement projects pullback levels from the swing's terminal price back toward its origin.
func Retracement(sw model.Swing) model.FibonacciLevels {
	rng := sw.Range()
	sign := sw.Direction.Sign()
	levels := make([]model.FibLevel, 0, len(retracementRatios))
	for _, r := range retracementRatios {
		levels = append(levels, model.FibLevel{
			Ratio: r,
			Price: sw.ToPrice - sign*rng*r,
			Label: fmt.Sprintf("%.1f%% retracement", r*100),
		})
	}
	return model.FibonacciLevels{Kind: model.FibRetracement, Swing: sw, Levels: levels}
}

// Extension projects continuation levels beyond the swing's terminal price.
func Extension(sw model.Swing) model.FibonacciLevels {
	rng := sw.Range()
	sign := sw.Direction.Sign()
	levels := make([]model.FibLevel, 0, len(extensionRatios))
	for _, r := range extensionRatios {
		levels = append(levels, model.FibLevel{
			Ratio: r,
			Price: sw.FromPrice + sign*rng*r,
			Label: fmt.Sprintf("%.1f%% extension", r*100),
		})
	}
	return model.FibonacciLevels{Kind: model.FibExtension, Swing: sw, Levels: levels}
}

// FibonacciFor picks extension when the sentiment confirms the swing direction,
// retracement otherwise.
func FibonacciFor(sw model.Swing, sentiment model.Sentiment) model.FibonacciLevels {
	confirmed := (sentiment == model.Bullish && sw.Direction == model.DirectionUp) ||
		(sentiment == model.Bearish && sw.Direction == model.DirectionDown)
	if confirmed {
		return Extension(sw)
	}
	return Retracement(sw)
}
