package event

import "screenworms/wire"

// MaxDatagram is the largest UDP datagram the server will ever produce
// (§4.6, §5).
const MaxDatagram = 550

// gameIDSize is the width of the game_id prefix on every server datagram.
const gameIDSize = 4

// Log is the append-only, per-game sequence of event records described in
// §4.2. Appending assigns the next event_no (the log's current length) and
// immediately materializes the wire-format record, so replay is a pure
// memory copy.
type Log struct {
	records []Record
}

// Len returns the number of events appended so far; also the event_no
// that the next append will receive.
func (l *Log) Len() int {
	return len(l.records)
}

// Get returns the record at event_no i.
func (l *Log) Get(i int) Record {
	return l.records[i]
}

func (l *Log) append(rec Record) int {
	no := len(l.records)
	l.records = append(l.records, rec)
	return no
}

// AppendNewGame appends a NEW_GAME event with the given board size and
// ordered player names.
func (l *Log) AppendNewGame(maxx, maxy uint32, names []string) (int, error) {
	rec, err := EncodeNewGame(uint32(l.Len()), maxx, maxy, names)
	if err != nil {
		return 0, err
	}
	return l.append(rec), nil
}

// AppendPixel appends a PIXEL event for the given worm index and cell.
func (l *Log) AppendPixel(worm int, x, y int) int {
	return l.append(EncodePixel(uint32(l.Len()), uint8(worm), uint32(x), uint32(y)))
}

// AppendEliminated appends a PLAYER_ELIMINATED event for the given worm
// index.
func (l *Log) AppendEliminated(worm int) int {
	return l.append(EncodeEliminated(uint32(l.Len()), uint8(worm)))
}

// AppendGameOver appends the terminal GAME_OVER event.
func (l *Log) AppendGameOver() int {
	return l.append(EncodeGameOver(uint32(l.Len())))
}

// Reset discards every event, returning the log to the state of a freshly
// started game (§3: "Events are discarded when a new game starts.").
func (l *Log) Reset() {
	l.records = l.records[:0]
}

// Pack packs the given records, in order, into one or more datagrams, each
// `game_id || record || record ...` and never exceeding MaxDatagram bytes
// (§4.6). An empty slice (such as Slice with a `from` at or past Len())
// produces no datagrams. The same function serves both the post-tick
// broadcast slice and a single client's replay slice.
func Pack(gameID uint32, records []Record) [][]byte {
	if len(records) == 0 {
		return nil
	}

	var (
		out []byte
		all [][]byte
	)
	start := func() {
		out = wire.PutUint32(make([]byte, 0, MaxDatagram), gameID)
	}
	start()
	for _, rec := range records {
		if len(out)+len(rec) > MaxDatagram {
			all = append(all, out)
			start()
		}
		out = append(out, rec...)
	}
	all = append(all, out)
	return all
}

// Slice returns the records from event_no `from` (inclusive) to the end
// of the log. A `from` at or past Len() returns an empty slice.
func (l *Log) Slice(from int) []Record {
	if from < 0 {
		from = 0
	}
	if from >= len(l.records) {
		return nil
	}
	return l.records[from:]
}
