package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"TrendLens/internal/collector"
	"TrendLens/internal/model"
)

// Outcome is the result for one symbol of a batch. Exactly one of Analysis and Err is set.
type Outcome struct {
	Symbol   string
	Analysis *model.Analysis
	Err      error
}

// Runner collects and analyses many symbols concurrently.
type Runner struct {
	Collector   *collector.Collector
	Analyzer    *Analyzer
	Concurrency int
}

// NewRunner creates a Runner. Concurrency below 1 means one symbol at a time.
func NewRunner(col *collector.Collector, an *Analyzer, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{Collector: col, Analyzer: an, Concurrency: concurrency}
}

// RunOne collects and analyses a single symbol.
func (r *Runner) RunOne(ctx context.Context, symbol string) (*model.Analysis, error) {
	raw, quote, err := r.Collector.Collect(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return r.Analyzer.Analyze(symbol, raw, quote)
}

// Run analyses every symbol and returns outcomes in input order. A failing or
// panicking symbol never affects the others; after ctx is done, remaining
// symbols report ctx.Err().
func (r *Runner) Run(ctx context.Context, symbols []string) []Outcome {
	runID := uuid.NewString()
	started := time.Now()
	log.Info().Str("run_id", runID).Int("symbols", len(symbols)).Str("policy", r.Analyzer.Policy().Name()).
		Msg("batch started")

	out := make([]Outcome, len(symbols))
	var g errgroup.Group
	g.SetLimit(r.Concurrency)
	for i, sym := range symbols {
		out[i].Symbol = sym
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					out[i].Analysis = nil
					out[i].Err = fmt.Errorf("%s: analysis panicked: %v", sym, rec)
				}
			}()
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			a, err := r.RunOne(ctx, sym)
			out[i].Analysis, out[i].Err = a, err
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range out {
		if o.Err != nil {
			failed++
			log.Warn().Str("run_id", runID).Str("symbol", o.Symbol).Err(o.Err).Msg("analysis failed")
		}
	}
	log.Info().Str("run_id", runID).Int("failed", failed).Dur("elapsed", time.Since(started)).Msg("batch finished")
	return out
}
