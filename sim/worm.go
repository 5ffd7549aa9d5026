package sim

import "math"

// TurnDirection is a worm's (or a player's latest requested) steering
// input (§3).
type TurnDirection uint8

const (
	Straight TurnDirection = 0
	Right    TurnDirection = 1
	Left     TurnDirection = 2
)

// Worm is one racer's continuous-coordinate kinematic state (§3).
type Worm struct {
	X, Y       float64
	Direction  int // degrees, [0,360)
	Turn       TurnDirection
	Eliminated bool
}

// Cell returns the worm's current discrete cell, floor(X), floor(Y). A
// plain int() truncation would round negative coordinates toward zero
// instead of down, misclassifying the cell a worm straddling x=0 is in.
func (w *Worm) Cell() (int, int) {
	return int(math.Floor(w.X)), int(math.Floor(w.Y))
}
