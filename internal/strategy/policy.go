package strategy

import (
	"errors"
	"fmt"
	"strings"

	"TrendLens/internal/model"
)

// ErrUnknownPolicy is returned by PolicyByName for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown scoring policy")

// Policy names.
const (
	PolicyWeighted  = "weighted"
	PolicyRuleBased = "rule-based"
	PolicyHeuristic = "heuristic"
)

// Policy scores a snapshot into named factors, classifies the summed score and
// projects a target price for the resulting sentiment.
type Policy interface {
	Name() string
	Factors(snap *model.Snapshot) []model.FactorScore
	Classify(score float64) model.Sentiment
	Target(sentiment model.Sentiment, price, support, resistance float64) model.TargetPrice
}

// PolicyByName resolves a policy. The empty name selects the weighted policy.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyWeighted:
		return Weighted{}, nil
	case PolicyRuleBased, "rulebased", "rule_based":
		return RuleBased{}, nil
	case PolicyHeuristic:
		return Heuristic{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownPolicy)
	}
}

// thresholds maps score ≥ bull to bullish and score ≤ bear to bearish.
type thresholds struct {
	bull, bear float64
}

func (t thresholds) classify(score float64) model.Sentiment {
	switch {
	case score >= t.bull:
		return model.Bullish
	case score <= t.bear:
		return model.Bearish
	default:
		return model.Neutral
	}
}

func factor(name string, raw, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   raw,
		Weight:     weight,
		Weighted:   raw * weight,
		Commentary: commentary,
	}
}

// compare returns +1 when a > b, -1 when a < b and 0 when equal.
func compare(a, b float64) float64 {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func relation(sign float64) string {
	switch {
	case sign > 0:
		return "above"
	case sign < 0:
		return "below"
	default:
		return "at"
	}
}
