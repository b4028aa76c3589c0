package calculator

import "TrendLens/internal/model"

// SMA computes the simple moving average of closes over period.
// Entries before the window fills are undefined.
func SMA(closes []float64, period int) model.Series {
	out := model.NewSeries(len(closes))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(closes); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += closes[j]
		}
		out[i] = model.Defined(sum / float64(period))
	}
	return out
}

// EMA computes the exponential moving average of closes, seeded with the SMA
// of the first period closes.
func EMA(closes []float64, period int) model.Series {
	in := make(model.Series, len(closes))
	for i, c := range closes {
		in[i] = model.Defined(c)
	}
	return EMASeries(in, period)
}

// EMASeries computes an EMA over a series that may contain undefined entries.
// The seed is the SMA of the first run of period consecutive defined inputs.
// An undefined input after seeding yields an undefined output and restarts seeding.
func EMASeries(in model.Series, period int) model.Series {
	out := model.NewSeries(len(in))
	if period <= 0 {
		return out
	}
	k := 2.0 / float64(period+1)

	var (
		run    int
		sum    float64
		seeded bool
		prev   float64
	)
	for i, v := range in {
		if !v.Valid {
			run, sum, seeded = 0, 0, false
			continue
		}
		if seeded {
			prev = (v.Float64-prev)*k + prev
			out[i] = model.Defined(prev)
			continue
		}
		run++
		sum += v.Float64
		if run == period {
			prev = sum / float64(period)
			seeded = true
			out[i] = model.Defined(prev)
		}
	}
	return out
}
