package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"

	"TrendLens/internal/analysis"
	"TrendLens/internal/collector"
	"TrendLens/internal/config"
	"TrendLens/internal/logger"
	"TrendLens/internal/scheduler"
	"TrendLens/internal/strategy"
)

func main() {
	if !run() {
		os.Exit(1)
	}
}

// run wires and runs the analyzer. It returns false when a RUN_ONCE batch had failures.
func run() bool {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.JSON)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("config", cfgPath).Msg("TrendLens starting")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init source
	var src collector.Source
	mock := &collector.MockSource{Price: cfg.Source.MockPrice}
	switch cfg.Source.Kind {
	case "sqlite":
		ss, err := collector.NewSQLiteSource(cfg.Source.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("open sqlite bar store")
		}
		defer ss.Close()
		if os.Getenv("SEED_MOCK_BARS") == "true" {
			n, err := ss.Seed(ctx, mock, cfg.Source.Symbols, cfg.Source.BarLimit)
			if err != nil {
				log.Error().Err(err).Msg("seed bar store")
				return false
			}
			log.Info().Int("symbols", n).Msg("bar store seeding finished")
		}
		src = ss
	default:
		src = mock
	}
	log.Info().Str("source", src.Name()).Strs("symbols", cfg.Source.Symbols).Msg("data source ready")

	policy, err := strategy.PolicyByName(cfg.Analysis.Policy)
	if err != nil {
		log.Fatal().Err(err).Msg("scoring policy")
	}
	analyzer := analysis.New(cfg.AnalysisParams(), policy)
	runner := analysis.NewRunner(collector.NewCollector(src, cfg.Source.BarLimit), analyzer, cfg.Batch.Concurrency)

	sched := scheduler.NewScheduler(ctx, runner, cfg.Source.Symbols)
	sched.OnBatch = func(outcomes []analysis.Outcome) { printSummary(os.Stdout, outcomes) }

	if os.Getenv("RUN_ONCE") == "true" {
		ok := true
		for _, o := range sched.RunNow() {
			if o.Err != nil {
				ok = false
			}
		}
		return ok
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing batch now")
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.Cron).Msg("TrendLens is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
	return true
}
