package calculator

import "TrendLens/internal/model"

// MACD computes ema(fast) - ema(slow), its signal EMA and the histogram.
// The signal EMA runs over the MACD series itself, seeding on its first
// fully defined window.
func MACD(closes []float64, fast, slow, signal int) model.MACDSeries {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line := model.NewSeries(len(closes))
	for i := range closes {
		if emaFast[i].Valid && emaSlow[i].Valid {
			line[i] = model.Defined(emaFast[i].Float64 - emaSlow[i].Float64)
		}
	}

	sig := EMASeries(line, signal)
	hist := model.NewSeries(len(closes))
	for i := range closes {
		if line[i].Valid && sig[i].Valid {
			hist[i] = model.Defined(line[i].Float64 - sig[i].Float64)
		}
	}
	return model.MACDSeries{MACD: line, Signal: sig, Histogram: hist}
}
