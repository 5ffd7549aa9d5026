// Server datagram parsing and state reconciliation

package main

import (
	"errors"
	"fmt"

	"screenworms/event"
	"screenworms/wire"
)

// ErrFatal wraps a protocol violation that §7 classifies as fatal for the
// client process (as opposed to the silent per-datagram drops of §4.7).
var ErrFatal = errors.New("worms client: fatal protocol violation")

// GameState is the client-side reconstruction of the current game: the
// game_id being tracked, the next event number expected, and the name
// table learned from NEW_GAME (needed to translate player_number into a
// name for the front-end, §4.8).
type GameState struct {
	gameID      uint32
	haveGame    bool
	nextEventNo uint32
	names       []string
	maxx, maxy  uint32
}

// NewGameState returns a client state with no game adopted yet.
func NewGameState() *GameState {
	return &GameState{}
}

// Feed processes one inbound server datagram (§4.7), invoking emit for
// every event accepted in order. It returns a non-nil error only for a
// fatal protocol violation (§7b); lossy/stale datagrams are silently
// absorbed and reported via a nil error.
func (g *GameState) Feed(datagram []byte, emit func(event.Record) error) error {
	if len(datagram) < 16 {
		debug.Printf("drop datagram: %d bytes shorter than the 16-byte minimum", len(datagram))
		return nil
	}

	gameID, off0, err := wire.Uint32(datagram, 0)
	if err != nil {
		debug.Printf("drop datagram: %v", err)
		return nil
	}
	rest := datagram[off0:]

	first, _, err := event.DecodeOne(rest)
	if err != nil {
		debug.Printf("drop datagram: leading event: %v", err)
		return nil
	}

	if gameID != g.gameID || !g.haveGame {
		if first.Type() != event.NewGame {
			debug.Printf("drop datagram: game_id %d unknown and first event is not NEW_GAME", gameID)
			return nil
		}
		g.gameID = gameID
		g.haveGame = true
		g.nextEventNo = 0
		g.names = nil
		g.maxx = 0
		g.maxy = 0
	}

	off := 0
	for off < len(rest) {
		rec, n, err := event.DecodeOne(rest[off:])
		if err != nil {
			debug.Printf("drop remainder of datagram: %v", err)
			return nil
		}
		if rec.No() != g.nextEventNo {
			debug.Printf("drop remainder of datagram: event_no %d != expected %d", rec.No(), g.nextEventNo)
			return nil
		}

		if err := g.accept(rec, emit); err != nil {
			return err
		}

		g.nextEventNo++
		off += n
	}

	return nil
}

// accept dispatches one already CRC-verified, in-order record: it updates
// local name-table state as needed and invokes emit. Malformed payloads of
// a known type are fatal (§7b); unknown types are skipped (§7c).
func (g *GameState) accept(rec event.Record, emit func(event.Record) error) error {
	switch rec.Type() {
	case event.NewGame:
		maxx, maxy, names, err := event.DecodeNewGame(rec.Data())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFatal, err)
		}
		g.names = names
		g.maxx = maxx
		g.maxy = maxy
	case event.Pixel:
		player, x, y, err := event.DecodePixel(rec.Data())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFatal, err)
		}
		if int(player) >= len(g.names) {
			return fmt.Errorf("%w: pixel for unknown player %d", ErrFatal, player)
		}
		if x >= g.maxx || y >= g.maxy {
			return fmt.Errorf("%w: pixel (%d,%d) outside board %dx%d", ErrFatal, x, y, g.maxx, g.maxy)
		}
	case event.PlayerEliminated:
		player, err := event.DecodeEliminated(rec.Data())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFatal, err)
		}
		if int(player) >= len(g.names) {
			return fmt.Errorf("%w: elimination of unknown player %d", ErrFatal, player)
		}
	case event.GameOver:
		// Acknowledged internally; no front-end line (§4.8).
		if len(rec.Data()) != 0 {
			return fmt.Errorf("%w: GAME_OVER with %d payload bytes", ErrFatal, len(rec.Data()))
		}
	default:
		// Unknown type: next_event_no already advances in Feed's loop.
		return nil
	}

	return emit(rec)
}

// Name returns the player name for a given worm index, as learned from the
// most recent NEW_GAME.
func (g *GameState) Name(player uint8) string {
	if int(player) >= len(g.names) {
		return ""
	}
	return g.names[player]
}
