package calculator

import (
	"errors"
	"math"

	"TrendLens/internal/model"
)

// TrailingRange scans the most recent window bars and returns the high and low.
// A non-positive window scans every bar.
func TrailingRange(bars []model.Bar, window int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	n := len(bars)
	start := 0
	if window > 0 && n > window {
		start = n - window
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}
