package model

// MACDSeries holds the MACD line, its signal EMA and the histogram.
type MACDSeries struct {
	MACD      Series
	Signal    Series
	Histogram Series
}

// BollingerSeries holds the three volatility bands.
type BollingerSeries struct {
	Upper  Series
	Middle Series
	Lower  Series
}

// IndicatorSet holds every computed indicator series for one analysis.
// Each series has the same length as the bar sequence it was computed from.
type IndicatorSet struct {
	RSI       Series
	MACD      MACDSeries
	SMA20     Series
	SMA50     Series
	SMA200    Series
	Bollinger BollingerSeries
}

// Aligned reports whether every series has exactly n entries.
func (s *IndicatorSet) Aligned(n int) bool {
	for _, series := range s.all() {
		if len(series) != n {
			return false
		}
	}
	return true
}

func (s *IndicatorSet) all() []Series {
	return []Series{
		s.RSI,
		s.MACD.MACD, s.MACD.Signal, s.MACD.Histogram,
		s.SMA20, s.SMA50, s.SMA200,
		s.Bollinger.Upper, s.Bollinger.Middle, s.Bollinger.Lower,
	}
}

// Snapshot holds the latest value of each indicator after fallback substitution.
type Snapshot struct {
	CurrentPrice   float64
	SMA20          float64
	SMA50          float64
	SMA200         float64
	RSI            float64
	MACD           float64
	MACDSignal     float64
	BollingerUpper Value // left undefined when the band never filled
	BollingerLower Value
	TrailingHigh   float64
	TrailingLow    float64
	Substituted    []string // names of indicators that fell back to a default
}

// WasSubstituted reports whether the named indicator used its fallback.
func (s *Snapshot) WasSubstituted(name string) bool {
	for _, n := range s.Substituted {
		if n == name {
			return true
		}
	}
	return false
}
