package calculator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"TrendLens/internal/model"
)

// ErrInsufficientData means too few valid bars remain for the requested analysis.
var ErrInsufficientData = errors.New("insufficient data")

// Normalize drops bars missing any OHLC price or holding a non-finite or
// non-positive one, sorts ascending by time and keeps the latest-seen bar for
// each duplicated timestamp.
func Normalize(raw []model.RawBar) ([]model.Bar, error) {
	type seen struct {
		bar model.Bar
		seq int
	}
	kept := make([]seen, 0, len(raw))
	for i, r := range raw {
		if !usable(r) {
			continue
		}
		kept = append(kept, seen{
			bar: model.Bar{
				Time:   r.Time,
				Open:   r.Open.Float64,
				High:   r.High.Float64,
				Low:    r.Low.Float64,
				Close:  r.Close.Float64,
				Volume: r.Volume,
			},
			seq: i,
		})
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].bar.Time.Before(kept[j].bar.Time) })

	bars := make([]model.Bar, 0, len(kept))
	for _, k := range kept {
		if n := len(bars); n > 0 && bars[n-1].Time.Equal(k.bar.Time) {
			// stable sort keeps input order, so k was seen after bars[n-1]
			bars[n-1] = k.bar
			continue
		}
		bars = append(bars, k.bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("normalize: no complete bars: %w", ErrInsufficientData)
	}
	return bars, nil
}

func usable(r model.RawBar) bool {
	if !r.Complete() {
		return false
	}
	for _, v := range []float64{r.Open.Float64, r.High.Float64, r.Low.Float64, r.Close.Float64} {
		if !ValidPrice(v) {
			return false
		}
	}
	return true
}

// ValidPrice reports whether p is a finite, positive price.
func ValidPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

// RequireBars returns ErrInsufficientData when fewer than min bars are available.
func RequireBars(bars []model.Bar, min int) error {
	if len(bars) == 0 || len(bars) < min {
		return fmt.Errorf("have %d bars, need %d: %w", len(bars), min, ErrInsufficientData)
	}
	return nil
}
