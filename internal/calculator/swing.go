package calculator

import (
	"errors"
	"fmt"

	"github.com/markcheno/go-talib"

	"TrendLens/internal/model"
)

// ErrNoSwingFound means no leg could anchor Fibonacci levels. It is not fatal.
var ErrNoSwingFound = errors.New("no swing found")

// SwingParams configures the swing detector.
type SwingParams struct {
	Lookback  int     // bars scanned back from the latest bar
	MinBars   int     // shorter series never produce a swing
	ATRPeriod int     // ATR window for the noise threshold
	NoiseATR  float64 // the leg must exceed NoiseATR × ATR
}

// DefaultSwingParams scans 120 bars, needs 20, and filters legs within 1 × ATR(14).
func DefaultSwingParams() SwingParams {
	return SwingParams{Lookback: 120, MinBars: 20, ATRPeriod: 14, NoiseATR: 1.0}
}

// DetectSwing finds the most recent leg in direction dir.
// Up: the highest high in the window paired with the lowest low at or before it.
// Down: the lowest low paired with the highest high at or before it.
func DetectSwing(bars []model.Bar, dir model.Direction, p SwingParams) (model.Swing, error) {
	n := len(bars)
	if n < p.MinBars || n < 2 {
		return model.Swing{}, fmt.Errorf("have %d bars, need %d: %w", n, p.MinBars, ErrNoSwingFound)
	}
	start := 0
	if p.Lookback > 0 && n > p.Lookback {
		start = n - p.Lookback
	}

	var sw model.Swing
	switch dir {
	case model.DirectionDown:
		to := start
		for i := start; i < n; i++ {
			if bars[i].Low <= bars[to].Low {
				to = i
			}
		}
		from := start
		for i := start; i <= to; i++ {
			if bars[i].High >= bars[from].High {
				from = i
			}
		}
		sw = model.Swing{FromIndex: from, ToIndex: to, FromPrice: bars[from].High, ToPrice: bars[to].Low, Direction: dir}
	default:
		to := start
		for i := start; i < n; i++ {
			if bars[i].High >= bars[to].High {
				to = i
			}
		}
		from := start
		for i := start; i <= to; i++ {
			if bars[i].Low <= bars[from].Low {
				from = i
			}
		}
		sw = model.Swing{FromIndex: from, ToIndex: to, FromPrice: bars[from].Low, ToPrice: bars[to].High, Direction: model.DirectionUp}
	}

	if sw.FromIndex == sw.ToIndex {
		return model.Swing{}, fmt.Errorf("no %s leg in last %d bars: %w", sw.Direction, n-start, ErrNoSwingFound)
	}
	moved := (sw.ToPrice - sw.FromPrice) * sw.Direction.Sign()
	noise := noiseThreshold(bars, p)
	if moved <= 0 || moved <= noise {
		return model.Swing{}, fmt.Errorf("leg %.4f within noise %.4f: %w", moved, noise, ErrNoSwingFound)
	}
	return sw, nil
}

func noiseThreshold(bars []model.Bar, p SwingParams) float64 {
	if p.NoiseATR <= 0 || p.ATRPeriod <= 0 || len(bars) <= p.ATRPeriod {
		return 0
	}
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		highs[i], lows[i], closes[i] = b.High, b.Low, b.Close
	}
	atr := talib.Atr(highs, lows, closes, p.ATRPeriod)
	return p.NoiseATR * atr[len(atr)-1]
}
