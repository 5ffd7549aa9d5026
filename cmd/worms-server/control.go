package main

import (
	"screenworms/sim"
	"screenworms/wire"
)

// controlPacket is one decoded client->server UDP message (§6).
type controlPacket struct {
	Session      uint64
	Turn         sim.TurnDirection
	NextExpected uint32
	Name         string
}

// parseControlPacket validates and decodes one inbound datagram per the
// admission table of §4.5. A false return means the packet must be
// silently dropped.
func parseControlPacket(buf []byte) (controlPacket, bool) {
	if len(buf) < 13 || len(buf) > 33 {
		debug.Printf("drop control packet: size %d outside [13,33]", len(buf))
		return controlPacket{}, false
	}

	session, off, err := wire.Uint64(buf, 0)
	if err != nil {
		debug.Printf("drop control packet: %v", err)
		return controlPacket{}, false
	}
	turnByte, off, err := wire.Uint8(buf, off)
	if err != nil || turnByte > 2 {
		debug.Printf("drop control packet: invalid turn_direction %d", turnByte)
		return controlPacket{}, false
	}
	nextExpected, off, err := wire.Uint32(buf, off)
	if err != nil {
		debug.Printf("drop control packet: %v", err)
		return controlPacket{}, false
	}

	name := buf[off:]
	for _, b := range name {
		if b < 33 || b > 126 {
			debug.Printf("drop control packet: invalid name byte %d", b)
			return controlPacket{}, false
		}
	}

	return controlPacket{
		Session:      session,
		Turn:         sim.TurnDirection(turnByte),
		NextExpected: nextExpected,
		Name:         string(name),
	}, true
}
