package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/phuslu/log"

	"TrendLens/internal/model"
)

// MockSource returns controllable, deterministic data for development and testing.
type MockSource struct {
	Price float64
	Drift float64   // per-bar relative change around the midpoint
	End   time.Time // time of the last generated bar; zero means today (UTC)
	Bars  map[string][]model.RawBar
	Quote map[string]model.Quote
	Err   map[string]error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchBars(_ context.Context, symbol string, limit int) ([]model.RawBar, error) {
	if err := m.Err[symbol]; err != nil {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return m.generate(limit), nil
}

func (m *MockSource) FetchQuote(_ context.Context, symbol string) (model.Quote, error) {
	if err := m.Err[symbol]; err != nil {
		return model.Quote{}, err
	}
	if q, ok := m.Quote[symbol]; ok {
		return q, nil
	}
	// zero price lets the analyzer derive the quote from the bars
	return model.Quote{Symbol: symbol}, nil
}

func (m *MockSource) generate(count int) []model.RawBar {
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}
	drift := m.Drift
	if drift == 0 {
		drift = 0.001
	}
	bars := make([]model.RawBar, count)
	for i := 0; i < count; i++ {
		p := m.Price * (1 + float64(i-count/2)*drift)
		bars[i] = model.RawFromBar(model.Bar{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
	}
	return bars
}

// Collector loads bars and a quote for a symbol from its Source.
type Collector struct {
	Source   Source
	BarLimit int
}

// NewCollector creates a new Collector.
func NewCollector(src Source, barLimit int) *Collector {
	if barLimit <= 0 {
		barLimit = 300
	}
	return &Collector{Source: src, BarLimit: barLimit}
}

// Collect fetches raw bars and the current quote.
func (c *Collector) Collect(ctx context.Context, symbol string) ([]model.RawBar, model.Quote, error) {
	bars, err := c.Source.FetchBars(ctx, symbol, c.BarLimit)
	if err != nil {
		return nil, model.Quote{}, fmt.Errorf("%s: fetch bars from %s: %w", symbol, c.Source.Name(), err)
	}
	quote, err := c.Source.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, model.Quote{}, fmt.Errorf("%s: fetch quote from %s: %w", symbol, c.Source.Name(), err)
	}
	log.Debug().Str("symbol", symbol).Str("source", c.Source.Name()).Int("bars", len(bars)).
		Float64("price", quote.Price).Msg("collected")
	return bars, quote, nil
}
