package model

import "math"

// Value is an optional float64. Valid is false while an indicator window is
// still filling or an input field was missing.
type Value struct {
	Float64 float64
	Valid   bool
}

// Defined wraps v as a valid Value.
func Defined(v float64) Value { return Value{Float64: v, Valid: true} }

// Undefined returns the invalid Value.
func Undefined() Value { return Value{} }

// Or returns the value when valid, otherwise fallback.
func (v Value) Or(fallback float64) float64 {
	if v.Valid {
		return v.Float64
	}
	return fallback
}

// Series is an indicator output aligned index-for-index with the bar sequence.
type Series []Value

// NewSeries returns an all-undefined series of length n.
func NewSeries(n int) Series {
	return make(Series, n)
}

// Last returns the most recent defined value.
func (s Series) Last() (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Valid {
			return s[i].Float64, true
		}
	}
	return 0, false
}

// LastOr returns the most recent defined value, or fallback when none exists.
func (s Series) LastOr(fallback float64) float64 {
	if v, ok := s.Last(); ok {
		return v
	}
	return fallback
}

// Defined counts the defined entries.
func (s Series) Defined() int {
	n := 0
	for _, v := range s {
		if v.Valid {
			n++
		}
	}
	return n
}

// Floats converts to a float slice with NaN in undefined slots.
func (s Series) Floats() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		if v.Valid {
			out[i] = v.Float64
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
