package player

import (
	"net"
	"sort"
	"time"

	"screenworms/sim"
)

// Registry tracks connected players keyed by their "<ip>/<port>" network
// identity (§4.5). It has no background goroutines: admission, refresh
// and eviction are all driven synchronously by the server's main loop,
// matching the single-threaded cooperative-polling model of §5.
type Registry struct {
	byAddr map[string]*Player
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byAddr: make(map[string]*Player)}
}

// Len returns the number of currently registered players.
func (r *Registry) Len() int {
	return len(r.byAddr)
}

// Get returns the player registered under id, if any.
func (r *Registry) Get(id string) (*Player, bool) {
	p, ok := r.byAddr[id]
	return p, ok
}

// Accept applies the §4.5 admission table for one already
// length/byte-validated control packet. The caller is responsible for the
// raw wire checks (datagram size in [13,33], turn_direction <= 2, name
// bytes in [33,126]) before calling Accept, since those are properties of
// the packet, not of a player's identity. Accept returns the admitted (or
// refreshed) player, or (nil, false) if the packet must be dropped.
func (r *Registry) Accept(id string, addr *net.UDPAddr, session uint64, turn sim.TurnDirection, name string, now time.Time) (*Player, bool) {
	existing, known := r.byAddr[id]

	switch {
	case known && existing.Session > session:
		return nil, false
	case known && existing.Session == session && existing.Name != name:
		return nil, false
	case known && existing.Session < session:
		// Evict the stale session and re-admit under the new one.
		delete(r.byAddr, id)
		known = false
	case !known && len(r.byAddr) >= Cap:
		return nil, false
	}

	var p *Player
	if known {
		p = existing
	} else {
		p = &Player{Session: session, Name: name, WormNum: -1}
		r.byAddr[id] = p
	}

	p.Addr = addr
	p.Turn = turn
	if name != "" && turn != sim.Straight {
		p.Ready = true
	}
	p.Deadline = now.Add(Timeout)

	return p, true
}

// EvictExpired removes every player whose deadline has passed and returns
// them. Eviction never touches an in-flight game's worms (§5): a
// disconnected player's worm, if any, keeps moving under its last known
// turn direction until eliminated or the game ends.
func (r *Registry) EvictExpired(now time.Time) []*Player {
	var evicted []*Player
	for id, p := range r.byAddr {
		if now.After(p.Deadline) {
			evicted = append(evicted, p)
			delete(r.byAddr, id)
		}
	}
	return evicted
}

// ReadyPlayers returns every currently registered player with Ready set.
func (r *Registry) ReadyPlayers() []*Player {
	var ready []*Player
	for _, p := range r.byAddr {
		if p.Ready {
			ready = append(ready, p)
		}
	}
	return ready
}

// AllNamed reports whether every currently registered player with a
// non-empty name is Ready (§4.4's start condition: "no ready=false player
// has a non-empty name").
func (r *Registry) AllNamed() bool {
	for _, p := range r.byAddr {
		if p.Name != "" && !p.Ready {
			return false
		}
	}
	return true
}

// CanStart reports whether a new game may begin: at least two ready
// players, and no named player is still unready (§4.4).
func (r *Registry) CanStart() bool {
	return len(r.ReadyPlayers()) >= 2 && r.AllNamed()
}

// CanonicalOrder returns the ready players sorted ascending by name,
// byte-wise, the sort that fixes worm indexing for a new game (§4.4).
func CanonicalOrder(ready []*Player) []*Player {
	sorted := make([]*Player, len(ready))
	copy(sorted, ready)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// All returns every registered player, observers included, for broadcast
// fan-out.
func (r *Registry) All() []*Player {
	all := make([]*Player, 0, len(r.byAddr))
	for _, p := range r.byAddr {
		all = append(all, p)
	}
	return all
}

// ClearReady resets every player's Ready flag and worm assignment, the
// transition a game's GAME_OVER makes back to lobby state (§3).
func (r *Registry) ClearReady() {
	for _, p := range r.byAddr {
		p.Ready = false
		p.WormNum = -1
	}
}
