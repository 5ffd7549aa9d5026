// Player registry and session admission

// Package player implements the §4.5 player registry: identity admission,
// session refresh, readiness latching and the 2-second silence timeout.
package player

import (
	"net"
	"strconv"
	"time"

	"screenworms/sim"
)

// Timeout is the silence window after which a player is evicted (§3, §5).
const Timeout = 2 * time.Second

// Cap is the maximum number of simultaneously registered players,
// observers included (§3, §5).
const Cap = 25

// Player is one connected identity (§3).
type Player struct {
	Session  uint64
	Name     string
	Turn     sim.TurnDirection
	Ready    bool
	WormNum  int // -1 if not currently racing
	Addr     *net.UDPAddr
	Deadline time.Time
}

// Observer reports whether p is a non-racing, empty-named connection.
func (p *Player) Observer() bool {
	return p.Name == ""
}

// Identity returns the "<numeric-ip>/<port>" string that keys the
// registry (§4.5). A dual-stack socket reports IPv4 clients as
// IPv4-mapped IPv6 addresses; net.IP.String renders those back out in
// dotted-quad form, so an IPv4 client's identity reads "a.b.c.d/port"
// rather than "::ffff:a.b.c.d/port". The string is used only as a
// registry key.
func Identity(addr *net.UDPAddr) string {
	return addr.IP.String() + "/" + strconv.Itoa(addr.Port)
}
