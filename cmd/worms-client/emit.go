// Front-end text emission

package main

import (
	"fmt"
	"io"
	"strings"

	"screenworms/event"
)

// FrontEnd serializes accepted events to the local renderer's line
// protocol (§4.8). GAME_OVER is swallowed: it has no textual form.
type FrontEnd struct {
	w     io.Writer
	state *GameState
}

// NewFrontEnd returns an emitter that writes to w, resolving player
// numbers to names via state.
func NewFrontEnd(w io.Writer, state *GameState) *FrontEnd {
	return &FrontEnd{w: w, state: state}
}

// Emit writes the textual line, if any, for one already-accepted event.
func (f *FrontEnd) Emit(rec event.Record) error {
	switch rec.Type() {
	case event.NewGame:
		maxx, maxy, names, err := event.DecodeNewGame(rec.Data())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(f.w, "NEW_GAME %d %d %s\n", maxx, maxy, strings.Join(names, " "))
		return err
	case event.Pixel:
		player, x, y, err := event.DecodePixel(rec.Data())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(f.w, "PIXEL %d %d %s\n", x, y, f.state.Name(player))
		return err
	case event.PlayerEliminated:
		player, err := event.DecodeEliminated(rec.Data())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(f.w, "PLAYER_ELIMINATED %s\n", f.state.Name(player))
		return err
	case event.GameOver:
		return nil
	default:
		return nil
	}
}
