package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Source.Kind != "mock" || cfg.Analysis.Policy != "weighted" {
		t.Errorf("unexpected defaults %s/%s", cfg.Source.Kind, cfg.Analysis.Policy)
	}
	p := cfg.AnalysisParams()
	if p.Indicators.RSIPeriod != 14 || p.Indicators.MACDSlow != 26 || p.Swing.Lookback != 120 {
		t.Errorf("unexpected analysis params %+v", p)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
source:
  symbols: [spy]
  bar_limit: 500
analysis:
  policy: heuristic
  rsi_period: 10
schedule:
  cron: "0 0 18 * * *"
`)
	t.Setenv("TRENDLENS_SYMBOLS", "aapl, msft,,")
	t.Setenv("SQLITE_PATH", "/tmp/bars.db")
	t.Setenv("BATCH_CONCURRENCY", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Join(cfg.Source.Symbols, ",") != "AAPL,MSFT" {
		t.Errorf("expected env symbols, got %v", cfg.Source.Symbols)
	}
	if cfg.Source.Kind != "sqlite" || cfg.Source.SQLitePath != "/tmp/bars.db" {
		t.Errorf("expected sqlite source from env, got %s %s", cfg.Source.Kind, cfg.Source.SQLitePath)
	}
	if cfg.Source.BarLimit != 500 || cfg.Analysis.RSIPeriod != 10 || cfg.Batch.Concurrency != 8 {
		t.Errorf("unexpected values %d/%d/%d", cfg.Source.BarLimit, cfg.Analysis.RSIPeriod, cfg.Batch.Concurrency)
	}
	if cfg.Analysis.Policy != "heuristic" || cfg.Schedule.Cron != "0 0 18 * * *" {
		t.Errorf("unexpected policy/cron %s %s", cfg.Analysis.Policy, cfg.Schedule.Cron)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "source: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := map[string]string{
		"policy":     "analysis:\n  policy: magic\n",
		"kind":       "source:\n  kind: ftp\n",
		"macd order": "analysis:\n  macd_fast: 30\n  macd_slow: 20\n",
		"negative":   "analysis:\n  rsi_period: -1\n",
		"bollinger":  "analysis:\n  bollinger_k: -2\n",
		"trailing":   "analysis:\n  trailing_window: -1\n",
		"lookback":   "analysis:\n  swing_lookback: -5\n",
		"atr period": "analysis:\n  swing_atr_period: -14\n",
		"noise":      "analysis:\n  swing_noise_atr: -1\n",
		"min > look": "analysis:\n  swing_min_bars: 200\n",
		"timeframe":  "analysis:\n  timeframe: monthly\n",
	}
	for name, body := range cases {
		cfg, err := Load(writeConfig(t, body))
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoad_Timeframe(t *testing.T) {
	cfg, err := Load(writeConfig(t, "analysis:\n  timeframe: chunk:4\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := cfg.AnalysisParams().Timeframe.String(); got != "chunk:4" {
		t.Errorf("expected chunk:4, got %s", got)
	}

	t.Setenv("TRENDLENS_TIMEFRAME", "weekly")
	cfg, _ = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if got := cfg.AnalysisParams().Timeframe.String(); got != "weekly" {
		t.Errorf("expected weekly from env, got %s", got)
	}
}

func TestLoad_MalformedConcurrencyKeepsDefault(t *testing.T) {
	t.Setenv("BATCH_CONCURRENCY", "lots")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Batch.Concurrency != 4 {
		t.Errorf("expected default concurrency 4, got %d", cfg.Batch.Concurrency)
	}
}
