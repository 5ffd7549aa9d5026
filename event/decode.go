package event

import (
	"errors"

	"screenworms/wire"
)

var (
	// ErrTruncated means fewer bytes remain in the datagram than the
	// declared record length requires (§4.7).
	ErrTruncated = errors.New("event: truncated record")
	// ErrCRC means the trailing CRC-32 did not match the preceding bytes.
	ErrCRC = errors.New("event: crc mismatch")
	// ErrMalformed means a known event type's payload violates its
	// fixed shape (§4.7: a fatal client-side protocol violation).
	ErrMalformed = errors.New("event: malformed payload")
)

// DecodeOne parses a single record out of buf starting at offset 0. It
// returns the record (header through CRC, CRC verified) and the number of
// bytes consumed. Per §4.7: a `len` field under 5, or a record that would
// extend past the end of buf, is reported as ErrTruncated, meaning the
// remaining bytes of the datagram must be ignored, not treated as fatal.
func DecodeOne(buf []byte) (Record, int, error) {
	length, _, err := wire.Uint32(buf, 0)
	if err != nil || length < 5 || int(length)+8 > len(buf) {
		return nil, 0, ErrTruncated
	}

	total := int(length) + 8
	rec := Record(buf[:total])

	want, _, _ := wire.Uint32(buf, total-4)
	got := wire.Checksum(buf[:total-4])
	if got != want {
		return nil, 0, ErrCRC
	}

	return rec, total, nil
}

// DecodeNewGame parses a NEW_GAME payload into its board size and ordered,
// NUL-terminated player names.
func DecodeNewGame(data []byte) (maxx, maxy uint32, names []string, err error) {
	maxx, off, err := wire.Uint32(data, 0)
	if err != nil {
		return 0, 0, nil, ErrMalformed
	}
	maxy, off, err = wire.Uint32(data, off)
	if err != nil {
		return 0, 0, nil, ErrMalformed
	}

	for off < len(data) {
		start := off
		for off < len(data) && data[off] != 0 {
			if !isValidNameByte(data[off]) {
				return 0, 0, nil, ErrMalformed
			}
			off++
		}
		if off >= len(data) {
			// missing trailing NUL
			return 0, 0, nil, ErrMalformed
		}
		names = append(names, string(data[start:off]))
		off++ // skip NUL
	}

	return maxx, maxy, names, nil
}

// DecodePixel parses a PIXEL payload.
func DecodePixel(data []byte) (player uint8, x, y uint32, err error) {
	if len(data) != 9 {
		return 0, 0, 0, ErrMalformed
	}
	player = data[0]
	x, _, _ = wire.Uint32(data, 1)
	y, _, _ = wire.Uint32(data, 5)
	return player, x, y, nil
}

// DecodeEliminated parses a PLAYER_ELIMINATED payload.
func DecodeEliminated(data []byte) (player uint8, err error) {
	if len(data) != 1 {
		return 0, ErrMalformed
	}
	return data[0], nil
}
