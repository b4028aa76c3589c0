package calculator

import (
	"github.com/phuslu/log"

	"TrendLens/internal/model"
)

// Params configures indicator windows.
type Params struct {
	RSIPeriod       int
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	BollingerPeriod int
	BollingerK      float64
	TrailingWindow  int // bars scanned for the support/resistance fallback
}

// DefaultParams returns RSI 14, MACD 12/26/9, Bollinger 20×2 and a 252-bar trailing window.
func DefaultParams() Params {
	return Params{
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		BollingerK:      2,
		TrailingWindow:  252,
	}
}

// ComputeIndicators derives the full indicator set from an ascending bar sequence.
func ComputeIndicators(bars []model.Bar, p Params) model.IndicatorSet {
	closes := model.Closes(bars)
	return model.IndicatorSet{
		RSI:       RSI(closes, p.RSIPeriod),
		MACD:      MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal),
		SMA20:     SMA(closes, 20),
		SMA50:     SMA(closes, 50),
		SMA200:    SMA(closes, 200),
		Bollinger: Bollinger(closes, p.BollingerPeriod, p.BollingerK),
	}
}

// Resolve reduces an indicator set to its latest values. Series with no defined
// entry fall back to the current price (moving averages), 50 (RSI) or 0 (MACD).
func Resolve(set *model.IndicatorSet, bars []model.Bar, quote model.Quote, trailingWindow int) model.Snapshot {
	price := quote.Price
	snap := model.Snapshot{CurrentPrice: price}

	latest := func(name string, s model.Series, fallback float64) float64 {
		if v, ok := s.Last(); ok {
			return v
		}
		log.Debug().Str("symbol", quote.Symbol).Str("indicator", name).Float64("fallback", fallback).
			Msg("indicator undefined, substituting")
		snap.Substituted = append(snap.Substituted, name)
		return fallback
	}

	snap.SMA20 = latest("SMA20", set.SMA20, price)
	snap.SMA50 = latest("SMA50", set.SMA50, price)
	snap.SMA200 = latest("SMA200", set.SMA200, price)
	snap.RSI = latest("RSI", set.RSI, 50)
	snap.MACD = latest("MACD", set.MACD.MACD, 0)
	snap.MACDSignal = latest("MACDSignal", set.MACD.Signal, 0)

	if v, ok := set.Bollinger.Upper.Last(); ok {
		snap.BollingerUpper = model.Defined(v)
	}
	if v, ok := set.Bollinger.Lower.Last(); ok {
		snap.BollingerLower = model.Defined(v)
	}

	if h, l, err := TrailingRange(bars, trailingWindow); err != nil {
		log.Warn().Str("symbol", quote.Symbol).Err(err).Msg("trailing range failed, using current price")
		snap.TrailingHigh, snap.TrailingLow = price, price
	} else {
		snap.TrailingHigh, snap.TrailingLow = h, l
	}
	return snap
}
