package strategy

import (
	"errors"
	"strings"
	"testing"

	"TrendLens/internal/model"
)

func uptrend() *model.Snapshot {
	return &model.Snapshot{
		CurrentPrice:   100,
		SMA20:          95,
		SMA50:          90,
		SMA200:         80,
		RSI:            60,
		MACD:           1,
		MACDSignal:     0.5,
		BollingerUpper: model.Defined(104),
		BollingerLower: model.Defined(92),
		TrailingHigh:   101,
		TrailingLow:    70,
	}
}

func downtrend() *model.Snapshot {
	return &model.Snapshot{
		CurrentPrice:   100,
		SMA20:          105,
		SMA50:          110,
		SMA200:         120,
		RSI:            40,
		MACD:           -1,
		MACDSignal:     -0.5,
		BollingerUpper: model.Defined(108),
		BollingerLower: model.Defined(96),
		TrailingHigh:   130,
		TrailingLow:    99,
	}
}

func flat() *model.Snapshot {
	return &model.Snapshot{
		CurrentPrice:   50,
		SMA20:          50,
		SMA50:          50,
		SMA200:         50,
		RSI:            50,
		BollingerUpper: model.Defined(50),
		BollingerLower: model.Defined(50),
		TrailingHigh:   51,
		TrailingLow:    49,
	}
}

func TestPolicyByName(t *testing.T) {
	cases := map[string]string{
		"":           PolicyWeighted,
		"weighted":   PolicyWeighted,
		"Rule-Based": PolicyRuleBased,
		"rule_based": PolicyRuleBased,
		" heuristic": PolicyHeuristic,
	}
	for in, want := range cases {
		p, err := PolicyByName(in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
			continue
		}
		if p.Name() != want {
			t.Errorf("%q: expected %s, got %s", in, want, p.Name())
		}
	}
	if _, err := PolicyByName("magic"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestEvaluate_WeightedUptrend(t *testing.T) {
	a := Evaluate(Weighted{}, uptrend())
	if len(a.Factors) != 7 {
		t.Fatalf("expected 7 factors, got %d", len(a.Factors))
	}
	if a.Score != 7 {
		t.Errorf("expected score 7, got %.3f", a.Score)
	}
	if a.Sentiment != model.Bullish {
		t.Errorf("expected bullish, got %s", a.Sentiment)
	}
	if a.Support != 92 || a.Resistance != 104 {
		t.Errorf("expected Bollinger levels 92/104, got %.2f/%.2f", a.Support, a.Resistance)
	}
	if got := a.Target.String(); got != "$115.00" {
		t.Errorf("expected target $115.00, got %s", got)
	}
}

func TestEvaluate_WeightedDowntrend(t *testing.T) {
	a := Evaluate(Weighted{}, downtrend())
	if a.Score != -7 {
		t.Errorf("expected score -7, got %.3f", a.Score)
	}
	if a.Sentiment != model.Bearish {
		t.Errorf("expected bearish, got %s", a.Sentiment)
	}
	if got := a.Target.String(); got != "$85.00" {
		t.Errorf("expected target $85.00, got %s", got)
	}
}

func TestEvaluate_FlatIsNeutralRange(t *testing.T) {
	for _, p := range []Policy{Weighted{}, RuleBased{}, Heuristic{}} {
		a := Evaluate(p, flat())
		if a.Score != 0 {
			t.Errorf("%s: expected score 0, got %.3f", p.Name(), a.Score)
		}
		if a.Sentiment != model.Neutral {
			t.Errorf("%s: expected neutral, got %s", p.Name(), a.Sentiment)
		}
		if !a.Target.IsRange {
			t.Errorf("%s: expected a range target", p.Name())
		}
		if got := a.Target.String(); got != "$50.00 - $50.00" {
			t.Errorf("%s: expected $50.00 - $50.00, got %s", p.Name(), got)
		}
	}
}

func TestWeighted_Thresholds(t *testing.T) {
	w := Weighted{}
	cases := map[float64]model.Sentiment{
		2.5:  model.Bullish,
		2.49: model.Neutral,
		-2.4: model.Neutral,
		-2.5: model.Bearish,
	}
	for score, want := range cases {
		if got := w.Classify(score); got != want {
			t.Errorf("score %.2f: expected %s, got %s", score, want, got)
		}
	}
}

func TestRuleBased_Scores(t *testing.T) {
	s := uptrend()
	s.RSI = 25
	a := Evaluate(RuleBased{}, s)
	if len(a.Factors) != 4 {
		t.Fatalf("expected 4 factors, got %d", len(a.Factors))
	}
	if a.Score != 6 || a.Sentiment != model.Bullish {
		t.Errorf("expected bullish 6, got %s %.1f", a.Sentiment, a.Score)
	}

	// overbought RSI pulls a clean uptrend down to the threshold
	s.RSI = 75
	a = Evaluate(RuleBased{}, s)
	if a.Score != 2 || a.Sentiment != model.Bullish {
		t.Errorf("expected bullish 2, got %s %.1f", a.Sentiment, a.Score)
	}

	a = Evaluate(RuleBased{}, downtrend())
	if a.Score != -4 || a.Sentiment != model.Bearish {
		t.Errorf("expected bearish -4, got %s %.1f", a.Sentiment, a.Score)
	}
	if (RuleBased{}).Classify(1.5) != model.Neutral {
		t.Error("expected 1.5 to be neutral")
	}
}

func TestHeuristic_RuleOrder(t *testing.T) {
	cases := []struct {
		name string
		edit func(*model.Snapshot)
		want model.Sentiment
	}{
		{"overbought wins over uptrend", func(s *model.Snapshot) { s.RSI = 75 }, model.Bearish},
		{"far below SMA20", func(s *model.Snapshot) { s.SMA20 = 110 }, model.Bearish},
		{"oversold", func(s *model.Snapshot) { s.RSI = 25; s.SMA20 = 101 }, model.Bullish},
		{"far above SMA20", func(s *model.Snapshot) { s.SMA20 = 90 }, model.Bullish},
		{"above averages with positive MACD", func(s *model.Snapshot) {}, model.Bullish},
		{"mixed", func(s *model.Snapshot) { s.SMA50 = 101; s.MACD = -1 }, model.Neutral},
	}
	for _, tc := range cases {
		s := uptrend()
		s.SMA20 = 98
		tc.edit(s)
		a := Evaluate(Heuristic{}, s)
		if len(a.Factors) != 1 {
			t.Fatalf("%s: expected a single factor, got %d", tc.name, len(a.Factors))
		}
		if a.Sentiment != tc.want {
			t.Errorf("%s: expected %s, got %s (%s)", tc.name, tc.want, a.Sentiment, a.Factors[0].Commentary)
		}
	}
}

func TestLevels_FallBackToTrailingRange(t *testing.T) {
	s := uptrend()
	s.BollingerUpper = model.Undefined()
	s.BollingerLower = model.Undefined()
	support, resistance := Levels(s)
	if support != 70 || resistance != 101 {
		t.Errorf("expected 70/101, got %.2f/%.2f", support, resistance)
	}
}

func TestTarget(t *testing.T) {
	if got := Target(model.Bullish, 200, 0, 0).String(); got != "$230.00" {
		t.Errorf("bullish: got %s", got)
	}
	if got := Target(model.Bearish, 200, 0, 0).String(); got != "$170.00" {
		t.Errorf("bearish: got %s", got)
	}
	if got := Target(model.Neutral, 200, 190.123, 210.456).String(); got != "$190.12 - $210.46" {
		t.Errorf("neutral: got %s", got)
	}
}

func TestDirection(t *testing.T) {
	if Direction(0) != model.DirectionUp || Direction(3) != model.DirectionUp {
		t.Error("expected non-negative scores to look for an up swing")
	}
	if Direction(-0.1) != model.DirectionDown {
		t.Error("expected negative scores to look for a down swing")
	}
}

func TestPoints_Warnings(t *testing.T) {
	s := uptrend()
	s.RSI = 90
	s.Substituted = []string{"SMA200"}
	quote := model.NewQuote("TEST", 106, 100, 107, 99, 100, 1e6)
	a := Evaluate(Weighted{}, s)
	pts := Points(s, quote, a)

	if pts.Momentum != model.ZoneOverbought {
		t.Errorf("expected overbought zone, got %s", pts.Momentum)
	}
	if pts.PriceRangeMin != 99 || pts.PriceRangeMax != 107 {
		t.Errorf("expected day range 99-107, got %.0f-%.0f", pts.PriceRangeMin, pts.PriceRangeMax)
	}
	joined := strings.Join(pts.Warnings, "\n")
	for _, want := range []string{"chasing risk", "take-profit", "volatility", "short history"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected a %q warning, got %v", want, pts.Warnings)
		}
	}

	calm := Points(flat(), model.NewQuote("TEST", 50, 50, 50, 50, 50, 0), Evaluate(Weighted{}, flat()))
	if len(calm.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", calm.Warnings)
	}
	if calm.Momentum != model.ZoneNeutral {
		t.Errorf("expected neutral zone, got %s", calm.Momentum)
	}
}

func TestRuleBased_TargetCappedByLevels(t *testing.T) {
	r := RuleBased{}
	// resistance 104 caps the bullish target at 109.20 instead of 115
	if got := r.Target(model.Bullish, 100, 92, 104).String(); got != "$109.20" {
		t.Errorf("bullish: expected $109.20, got %s", got)
	}
	// far resistance leaves the +15% target
	if got := r.Target(model.Bullish, 100, 92, 200).String(); got != "$115.00" {
		t.Errorf("bullish: expected $115.00, got %s", got)
	}
	// support 96 floors the bearish target at 91.20 instead of 85
	if got := r.Target(model.Bearish, 100, 96, 108).String(); got != "$91.20" {
		t.Errorf("bearish: expected $91.20, got %s", got)
	}
	if got := r.Target(model.Neutral, 100, 96, 108).String(); got != "$96.00 - $108.00" {
		t.Errorf("neutral: expected $96.00 - $108.00, got %s", got)
	}

	s := uptrend()
	s.RSI = 25
	a := Evaluate(RuleBased{}, s)
	if got := a.Target.String(); got != "$109.20" {
		t.Errorf("expected Evaluate to apply the rule-based cap, got %s", got)
	}
	if got := Evaluate(Weighted{}, uptrend()).Target.String(); got != "$115.00" {
		t.Errorf("expected weighted target uncapped at $115.00, got %s", got)
	}
}
