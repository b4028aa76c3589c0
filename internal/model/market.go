package model

import "time"

// Bar is a single validated daily OHLCV candle.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// RawBar is a bar as delivered by a source. Any of the OHLC fields may be missing.
type RawBar struct {
	Time   time.Time
	Open   Value
	High   Value
	Low    Value
	Close  Value
	Volume float64
}

// Complete reports whether all four OHLC prices are present.
func (r RawBar) Complete() bool {
	return r.Open.Valid && r.High.Valid && r.Low.Valid && r.Close.Valid
}

// RawFromBar wraps a complete bar.
func RawFromBar(b Bar) RawBar {
	return RawBar{
		Time:   b.Time,
		Open:   Defined(b.Open),
		High:   Defined(b.High),
		Low:    Defined(b.Low),
		Close:  Defined(b.Close),
		Volume: b.Volume,
	}
}

// Closes extracts the close prices in order.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// Quote is the most recent tick for an instrument. It may postdate the last Bar.
type Quote struct {
	Symbol        string
	Price         float64
	Open          float64
	High          float64
	Low           float64
	PreviousClose float64
	Volume        float64
	Change        float64
	ChangePercent float64
}

// NewQuote builds a quote and derives Change and ChangePercent.
// A non-positive previous close falls back to the price itself.
func NewQuote(symbol string, price, open, high, low, previousClose, volume float64) Quote {
	if previousClose <= 0 {
		previousClose = price
	}
	q := Quote{
		Symbol:        symbol,
		Price:         price,
		Open:          open,
		High:          high,
		Low:           low,
		PreviousClose: previousClose,
		Volume:        volume,
		Change:        price - previousClose,
	}
	if previousClose != 0 {
		q.ChangePercent = 100 * q.Change / previousClose
	}
	return q
}

// QuoteFromBars derives a quote from the last two bars of an ascending series.
// Returns the zero quote when bars is empty.
func QuoteFromBars(symbol string, bars []Bar) Quote {
	n := len(bars)
	if n == 0 {
		return Quote{Symbol: symbol}
	}
	last := bars[n-1]
	prev := last.Open
	if n > 1 {
		prev = bars[n-2].Close
	}
	return NewQuote(symbol, last.Close, last.Open, last.High, last.Low, prev, last.Volume)
}
