package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phuslu/log"
	"gopkg.in/yaml.v3"

	"TrendLens/internal/analysis"
	"TrendLens/internal/calculator"
	"TrendLens/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`
	Source struct {
		Kind       string   `yaml:"kind"` // "sqlite" or "mock"
		SQLitePath string   `yaml:"sqlite_path"`
		Symbols    []string `yaml:"symbols"`
		BarLimit   int      `yaml:"bar_limit"`
		MockPrice  float64  `yaml:"mock_price"`
	} `yaml:"source"`
	Analysis struct {
		Policy          string  `yaml:"policy"`
		Timeframe       string  `yaml:"timeframe"` // daily, weekly or chunk:N
		MinBars         int     `yaml:"min_bars"`
		RSIPeriod       int     `yaml:"rsi_period"`
		MACDFast        int     `yaml:"macd_fast"`
		MACDSlow        int     `yaml:"macd_slow"`
		MACDSignal      int     `yaml:"macd_signal"`
		BollingerPeriod int     `yaml:"bollinger_period"`
		BollingerK      float64 `yaml:"bollinger_k"`
		TrailingWindow  int     `yaml:"trailing_window"`
		SwingLookback   int     `yaml:"swing_lookback"`
		SwingMinBars    int     `yaml:"swing_min_bars"`
		SwingATRPeriod  int     `yaml:"swing_atr_period"`
		SwingNoiseATR   float64 `yaml:"swing_noise_atr"`
	} `yaml:"analysis"`
	Batch struct {
		Concurrency int `yaml:"concurrency"`
	} `yaml:"batch"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TRENDLENS_SYMBOLS"); v != "" {
		cfg.Source.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("TRENDLENS_POLICY"); v != "" {
		cfg.Analysis.Policy = v
	}
	if v := os.Getenv("TRENDLENS_TIMEFRAME"); v != "" {
		cfg.Analysis.Timeframe = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Source.SQLitePath = v
		if cfg.Source.Kind == "" {
			cfg.Source.Kind = "sqlite"
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("BATCH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Batch.Concurrency = n
		} else {
			log.Warn().Str("value", v).Err(err).Msg("ignoring malformed BATCH_CONCURRENCY")
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := analysis.DefaultParams()
	a := &c.Analysis

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Source.Kind == "" {
		c.Source.Kind = "mock"
	}
	if c.Source.SQLitePath == "" {
		c.Source.SQLitePath = "data/bars.db"
	}
	if len(c.Source.Symbols) == 0 {
		c.Source.Symbols = []string{"SPY"}
	}
	if c.Source.BarLimit == 0 {
		c.Source.BarLimit = 300
	}
	if c.Source.MockPrice == 0 {
		c.Source.MockPrice = 100
	}
	if a.Policy == "" {
		a.Policy = strategy.PolicyWeighted
	}
	if a.Timeframe == "" {
		a.Timeframe = calculator.TimeframeDaily
	}
	if a.MinBars == 0 {
		a.MinBars = d.MinBars
	}
	if a.RSIPeriod == 0 {
		a.RSIPeriod = d.Indicators.RSIPeriod
	}
	if a.MACDFast == 0 {
		a.MACDFast = d.Indicators.MACDFast
	}
	if a.MACDSlow == 0 {
		a.MACDSlow = d.Indicators.MACDSlow
	}
	if a.MACDSignal == 0 {
		a.MACDSignal = d.Indicators.MACDSignal
	}
	if a.BollingerPeriod == 0 {
		a.BollingerPeriod = d.Indicators.BollingerPeriod
	}
	if a.BollingerK == 0 {
		a.BollingerK = d.Indicators.BollingerK
	}
	if a.TrailingWindow == 0 {
		a.TrailingWindow = d.Indicators.TrailingWindow
	}
	if a.SwingLookback == 0 {
		a.SwingLookback = d.Swing.Lookback
	}
	if a.SwingMinBars == 0 {
		a.SwingMinBars = d.Swing.MinBars
	}
	if a.SwingATRPeriod == 0 {
		a.SwingATRPeriod = d.Swing.ATRPeriod
	}
	if a.SwingNoiseATR == 0 {
		a.SwingNoiseATR = d.Swing.NoiseATR
	}
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = 4
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 30 22 * * 1-5"
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := strategy.PolicyByName(c.Analysis.Policy); err != nil {
		return fmt.Errorf("analysis.policy: %w", err)
	}
	if _, err := calculator.ParseTimeframe(c.Analysis.Timeframe); err != nil {
		return fmt.Errorf("analysis.timeframe: %w", err)
	}
	switch c.Source.Kind {
	case "mock":
		if c.Source.MockPrice <= 0 {
			return fmt.Errorf("source.mock_price must be positive")
		}
	case "sqlite":
		if c.Source.SQLitePath == "" {
			return fmt.Errorf("source.sqlite_path is required")
		}
	default:
		return fmt.Errorf("source.kind %q is not supported", c.Source.Kind)
	}
	a := c.Analysis
	for name, v := range map[string]int{
		"rsi_period":       a.RSIPeriod,
		"macd_fast":        a.MACDFast,
		"macd_slow":        a.MACDSlow,
		"macd_signal":      a.MACDSignal,
		"bollinger_period": a.BollingerPeriod,
		"min_bars":         a.MinBars,
		"trailing_window":  a.TrailingWindow,
		"swing_lookback":   a.SwingLookback,
		"swing_min_bars":   a.SwingMinBars,
		"swing_atr_period": a.SwingATRPeriod,
	} {
		if v <= 0 {
			return fmt.Errorf("analysis.%s must be positive", name)
		}
	}
	if a.MACDFast >= a.MACDSlow {
		return fmt.Errorf("analysis.macd_fast must be below macd_slow")
	}
	if a.BollingerK <= 0 {
		return fmt.Errorf("analysis.bollinger_k must be positive")
	}
	if a.SwingNoiseATR < 0 {
		return fmt.Errorf("analysis.swing_noise_atr must not be negative")
	}
	if a.SwingMinBars > a.SwingLookback {
		return fmt.Errorf("analysis.swing_min_bars must not exceed swing_lookback")
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1")
	}
	return nil
}

// AnalysisParams converts the analysis section into pipeline parameters.
func (c *Config) AnalysisParams() analysis.Params {
	a := c.Analysis
	p := analysis.DefaultParams()
	p.MinBars = a.MinBars
	if tf, err := calculator.ParseTimeframe(a.Timeframe); err == nil {
		p.Timeframe = tf
	}
	p.Indicators.RSIPeriod = a.RSIPeriod
	p.Indicators.MACDFast = a.MACDFast
	p.Indicators.MACDSlow = a.MACDSlow
	p.Indicators.MACDSignal = a.MACDSignal
	p.Indicators.BollingerPeriod = a.BollingerPeriod
	p.Indicators.BollingerK = a.BollingerK
	p.Indicators.TrailingWindow = a.TrailingWindow
	p.Swing.Lookback = a.SwingLookback
	p.Swing.MinBars = a.SwingMinBars
	p.Swing.ATRPeriod = a.SwingATRPeriod
	p.Swing.NoiseATR = a.SwingNoiseATR
	return p
}

func splitSymbols(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}
