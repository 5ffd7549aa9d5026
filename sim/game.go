package sim

import (
	"math"

	"screenworms/event"
)

// Game is one round of worms: the board, the worms in canonical order, the
// live event log and the count of worms still in the race (§3).
type Game struct {
	ID     uint32
	Board  *Board
	Worms  []Worm
	Log    event.Log
	Alive  int
	Over   bool
	Names  []string
	Turn   int // turning speed in degrees per tick
}

// NewGame prepares an empty game of dimensions w x h; Start must be
// called before it holds any worms.
func NewGame(w, h uint32, turningSpeed int) *Game {
	return &Game{
		Board: NewBoard(w, h),
		Turn:  turningSpeed,
	}
}

// cellOf returns the integer cell a continuous position currently
// occupies.
func cellOf(x, y float64) (int, int) {
	return int(math.Floor(x)), int(math.Floor(y))
}

// Start begins a new game for the given RNG and ordered, already-sorted
// player names (§4.4 "Game start"). The caller is responsible for
// choosing game_id and for having sorted names into canonical order; Start
// consumes the RNG in the fixed order the protocol requires: pos_x_cell,
// pos_y_cell, direction for each worm in turn.
func (g *Game) Start(rng *RNG, names []string) error {
	g.Board = NewBoard(g.Board.Width(), g.Board.Height())
	g.Log = event.Log{}
	g.Names = names
	g.Over = false

	if _, err := g.Log.AppendNewGame(g.Board.Width(), g.Board.Height(), names); err != nil {
		return err
	}

	g.Worms = make([]Worm, len(names))
	g.Alive = len(names)

	for i := range g.Worms {
		x := float64(rng.Next()%g.Board.Width()) + 0.5
		y := float64(rng.Next()%g.Board.Height()) + 0.5
		dir := int(rng.Next() % 360)

		g.Worms[i] = Worm{X: x, Y: y, Direction: dir}

		cx, cy := cellOf(x, y)
		if g.Board.Painted(cx, cy) {
			g.Worms[i].Eliminated = true
			g.Alive--
			g.Log.AppendEliminated(i)
		} else {
			g.Board.Paint(cx, cy)
			g.Log.AppendPixel(i, cx, cy)
		}

		if g.Alive == 1 {
			g.Log.AppendGameOver()
			g.Over = true
			return nil
		}
	}

	return nil
}

// SetTurn updates the steering input of worm i, if it is still racing.
func (g *Game) SetTurn(i int, t TurnDirection) {
	if i >= 0 && i < len(g.Worms) && !g.Worms[i].Eliminated {
		g.Worms[i].Turn = t
	}
}

// Tick advances every non-eliminated worm by one simulation step (§4.4
// "Tick"), in canonical index order. It stops (and does not process
// remaining worms) the instant the game ends, matching the protocol's
// "If worms_alive == 1 ... stop the tick".
func (g *Game) Tick() {
	if g.Over {
		return
	}

	for i := range g.Worms {
		w := &g.Worms[i]
		if w.Eliminated {
			continue
		}

		switch w.Turn {
		case Right:
			w.Direction = (w.Direction + g.Turn) % 360
		case Left:
			w.Direction = (w.Direction + 360 - g.Turn) % 360
		}

		oldX, oldY := cellOf(w.X, w.Y)

		rad := float64(w.Direction) * math.Pi / 180
		w.X += math.Cos(rad)
		w.Y += math.Sin(rad)

		newX, newY := cellOf(w.X, w.Y)
		if newX == oldX && newY == oldY {
			continue
		}

		if !g.Board.InBounds(newX, newY) || g.Board.Painted(newX, newY) {
			w.Eliminated = true
			g.Alive--
			g.Log.AppendEliminated(i)

			if g.Alive == 1 {
				g.Log.AppendGameOver()
				g.Over = true
				return
			}
			continue
		}

		g.Board.Paint(newX, newY)
		g.Log.AppendPixel(i, newX, newY)
	}
}
