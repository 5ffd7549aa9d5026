package main

import (
	"testing"

	"screenworms/event"
	"screenworms/wire"
)

func datagram(gameID uint32, records ...event.Record) []byte {
	buf := wire.PutUint32(nil, gameID)
	for _, r := range records {
		buf = append(buf, r...)
	}
	return buf
}

func TestFeedAdoptsNewGameAndEmitsInOrder(t *testing.T) {
	g := NewGameState()

	newGame, _ := event.EncodeNewGame(0, 100, 100, []string{"alice", "bob"})
	pixel := event.EncodePixel(1, 0, 10, 20)

	var got []event.Type
	err := g.Feed(datagram(42, newGame, pixel), func(r event.Record) error {
		got = append(got, r.Type())
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != event.NewGame || got[1] != event.Pixel {
		t.Fatalf("got %v", got)
	}
	if g.nextEventNo != 2 {
		t.Fatalf("next_event_no = %d, want 2", g.nextEventNo)
	}
}

func TestFeedIgnoresUnknownGameIDWithoutNewGame(t *testing.T) {
	g := NewGameState()
	g.gameID = 1
	g.haveGame = true
	g.nextEventNo = 5

	pixel := event.EncodePixel(5, 0, 1, 1)
	called := false
	err := g.Feed(datagram(99, pixel), func(event.Record) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("a datagram for an unknown game_id with no leading NEW_GAME must be wholly ignored")
	}
	if g.nextEventNo != 5 {
		t.Fatalf("state must be unchanged")
	}
}

func TestFeedStopsAtCRCTamperButKeepsGoodPrefix(t *testing.T) {
	g := NewGameState()

	newGame, _ := event.EncodeNewGame(0, 100, 100, []string{"alice"})
	bad := event.EncodePixel(1, 0, 1, 1)
	bad[len(bad)-1] ^= 0xFF // flip every bit of the last CRC byte

	good2 := event.EncodePixel(1, 0, 2, 2)

	var got []event.Type
	err := g.Feed(datagram(7, newGame, bad, good2), func(r event.Record) error {
		got = append(got, r.Type())
		return nil
	})
	if err != nil {
		t.Fatalf("a CRC tamper must be a silent drop, not a fatal error: %v", err)
	}
	if len(got) != 1 || got[0] != event.NewGame {
		t.Fatalf("got %v, want only NEW_GAME delivered", got)
	}
	if g.nextEventNo != 1 {
		t.Fatalf("next_event_no = %d, want 1 (must not advance past the tampered record)", g.nextEventNo)
	}
}

func TestFeedRejectsOutOfRangePlayerAsFatal(t *testing.T) {
	g := NewGameState()

	newGame, _ := event.EncodeNewGame(0, 100, 100, []string{"alice"})
	badPlayer := event.EncodePixel(1, 5, 1, 1)

	err := g.Feed(datagram(3, newGame, badPlayer), func(event.Record) error {
		return nil
	})
	if err == nil {
		t.Fatalf("expected a fatal error for an out-of-range player index")
	}
}

func TestFeedRejectsOutOfRangeCoordinateAsFatal(t *testing.T) {
	g := NewGameState()

	newGame, _ := event.EncodeNewGame(0, 10, 10, []string{"alice"})
	badCoord := event.EncodePixel(1, 0, 10, 5) // x == maxx, out of [0,maxx)

	err := g.Feed(datagram(3, newGame, badCoord), func(event.Record) error {
		return nil
	})
	if err == nil {
		t.Fatalf("expected a fatal error for an out-of-range pixel coordinate")
	}
}

func TestFeedTooShortDatagramIgnored(t *testing.T) {
	g := NewGameState()
	err := g.Feed([]byte{1, 2, 3}, func(event.Record) error {
		t.Fatalf("must not be invoked")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
