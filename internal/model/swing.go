package model

import "math"

// Direction of a price leg.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Sign returns +1 for up and -1 for down.
func (d Direction) Sign() float64 {
	if d == DirectionDown {
		return -1
	}
	return 1
}

// Swing is the directional leg used to anchor Fibonacci levels.
// FromIndex/ToIndex point into the bar sequence; ToPrice is the terminal price.
type Swing struct {
	FromIndex int
	ToIndex   int
	FromPrice float64
	ToPrice   float64
	Direction Direction
}

// Range is the absolute price distance of the leg.
func (s Swing) Range() float64 {
	return math.Abs(s.ToPrice - s.FromPrice)
}

// FibKind selects retracement or extension levels.
type FibKind string

const (
	FibRetracement FibKind = "retracement"
	FibExtension   FibKind = "extension"
)

// FibLevel is one projected price.
type FibLevel struct {
	Ratio float64 `json:"ratio"`
	Price float64 `json:"price"`
	Label string  `json:"label"`
}

// FibonacciLevels is the level set derived from one swing.
type FibonacciLevels struct {
	Kind   FibKind    `json:"kind"`
	Swing  Swing      `json:"swing"`
	Levels []FibLevel `json:"levels"`
}
