package calculator

import "TrendLens/internal/model"

// RSI computes the relative strength index using simple (not Wilder) averages of
// the trailing period gains and losses. Slot 0 is undefined because the first close
// has no prior value; RSI is defined from index period onward.
//
// avgLoss == 0 gives 100, except when avgGain is also 0 (flat window), which gives 50.
func RSI(closes []float64, period int) model.Series {
	out := model.NewSeries(len(closes))
	if period <= 0 || len(closes) < 2 {
		return out
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	for j := period - 1; j < len(gains); j++ {
		var sumGain, sumLoss float64
		for k := j - period + 1; k <= j; k++ {
			sumGain += gains[k]
			sumLoss += losses[k]
		}
		avgGain := sumGain / float64(period)
		avgLoss := sumLoss / float64(period)
		out[j+1] = model.Defined(rsiValue(avgGain, avgLoss))
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	switch {
	case avgLoss == 0 && avgGain == 0:
		return 50.0
	case avgLoss == 0:
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
