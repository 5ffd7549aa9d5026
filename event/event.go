// Event wire format

// Package event defines the worms wire event record and the variant
// payloads carried by it (§3 of the protocol: NEW_GAME, PIXEL,
// PLAYER_ELIMINATED, GAME_OVER).
package event

import (
	"errors"

	"screenworms/wire"
)

// Type identifies the variant of an event's payload.
type Type uint8

const (
	NewGame Type = iota
	Pixel
	PlayerEliminated
	GameOver
)

func (t Type) String() string {
	switch t {
	case NewGame:
		return "NEW_GAME"
	case Pixel:
		return "PIXEL"
	case PlayerEliminated:
		return "PLAYER_ELIMINATED"
	case GameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Record is a fully encoded event as it travels on the wire:
// len(4) || event_no(4) || event_type(1) || event_data || crc32(4).
type Record []byte

// No returns the event_no field of an already-validated record.
func (r Record) No() uint32 {
	n, _, _ := wire.Uint32(r, 4)
	return n
}

// Type returns the event_type field of an already-validated record.
func (r Record) Type() Type {
	t, _, _ := wire.Uint8(r, 8)
	return Type(t)
}

// Data returns the event_data slice of an already-validated record.
func (r Record) Data() []byte {
	return r[9 : len(r)-4]
}

// errBadName is returned by the NewGame payload encoder when given an
// invalid player name.
var errBadName = errors.New("event: invalid player name")

func isValidNameByte(b byte) bool {
	return b >= 33 && b <= 126
}

// ValidName reports whether name satisfies §3's player-name constraints:
// 0..20 bytes, each in [33,126].
func ValidName(name string) bool {
	if len(name) > 20 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isValidNameByte(name[i]) {
			return false
		}
	}
	return true
}

// Encode materializes one event record (§4.1, §4.2): it computes len,
// writes event_no and event_type, appends the payload, and appends the
// CRC-32 of everything preceding it.
func Encode(no uint32, typ Type, data []byte) Record {
	body := make([]byte, 0, 9+len(data))
	body = wire.PutUint32(body, no)
	body = append(body, byte(typ))
	body = append(body, data...)

	rec := make([]byte, 0, 4+len(body)+4)
	rec = wire.PutUint32(rec, uint32(len(body)))
	rec = append(rec, body...)
	rec = wire.PutUint32(rec, wire.Checksum(rec))
	return Record(rec)
}

// EncodeNewGame builds the NEW_GAME payload: maxx, maxy, then each name in
// order NUL-terminated.
func EncodeNewGame(no uint32, maxx, maxy uint32, names []string) (Record, error) {
	data := make([]byte, 0, 8+len(names)*8)
	data = wire.PutUint32(data, maxx)
	data = wire.PutUint32(data, maxy)
	for _, name := range names {
		if !ValidName(name) {
			return nil, errBadName
		}
		data = append(data, name...)
		data = append(data, 0)
	}
	return Encode(no, NewGame, data), nil
}

// EncodePixel builds the PIXEL payload: player_number, x, y.
func EncodePixel(no uint32, player uint8, x, y uint32) Record {
	data := make([]byte, 0, 9)
	data = append(data, player)
	data = wire.PutUint32(data, x)
	data = wire.PutUint32(data, y)
	return Encode(no, Pixel, data)
}

// EncodeEliminated builds the PLAYER_ELIMINATED payload: player_number.
func EncodeEliminated(no uint32, player uint8) Record {
	return Encode(no, PlayerEliminated, []byte{player})
}

// EncodeGameOver builds the empty-payload GAME_OVER event.
func EncodeGameOver(no uint32) Record {
	return Encode(no, GameOver, nil)
}
