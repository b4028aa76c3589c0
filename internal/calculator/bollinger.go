package calculator

import (
	"math"

	"TrendLens/internal/model"
)

// Bollinger computes SMA(period) ± k·σ where σ is the population standard
// deviation of the trailing period closes.
func Bollinger(closes []float64, period int, k float64) model.BollingerSeries {
	middle := SMA(closes, period)
	upper := model.NewSeries(len(closes))
	lower := model.NewSeries(len(closes))

	for i, m := range middle {
		if !m.Valid {
			continue
		}
		mean := m.Float64
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(period))
		upper[i] = model.Defined(mean + k*std)
		lower[i] = model.Defined(mean - k*std)
	}
	return model.BollingerSeries{Upper: upper, Middle: middle, Lower: lower}
}
