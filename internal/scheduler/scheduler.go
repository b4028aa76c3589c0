package scheduler

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"TrendLens/internal/analysis"
)

// Scheduler runs batch analyses on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Runner  *analysis.Runner
	Symbols []string
	Ctx     context.Context

	// OnBatch receives the outcomes of every run, scheduled or manual.
	OnBatch func([]analysis.Outcome)
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *analysis.Runner, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Runner:  runner,
		Symbols: symbols,
		Ctx:     ctx,
	}
}

// Register adds the batch task under the given cron spec (seconds field included).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.batchTask); err != nil {
		return fmt.Errorf("register batch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running batch to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the batch task immediately and returns its outcomes.
func (s *Scheduler) RunNow() []analysis.Outcome {
	return s.run()
}

func (s *Scheduler) batchTask() {
	s.run()
}

func (s *Scheduler) run() []analysis.Outcome {
	if err := s.Ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("batch skipped, context done")
		return nil
	}
	outcomes := s.Runner.Run(s.Ctx, s.Symbols)
	for _, o := range outcomes {
		if o.Err != nil {
			continue
		}
		a := o.Analysis.Assessment
		log.Info().Str("symbol", o.Symbol).Str("sentiment", string(a.Sentiment)).Float64("score", a.Score).
			Str("target", a.Target.String()).Msg("assessment")
	}
	if s.OnBatch != nil {
		s.OnBatch(outcomes)
	}
	return outcomes
}
