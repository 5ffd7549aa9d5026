// Datagram I/O loop and game orchestration

package main

import (
	"log"
	"net"
	"time"

	"screenworms/event"
	"screenworms/player"
	"screenworms/sim"
)

// clientsAtOnce is the number of inbound datagrams drained per loop
// iteration, fixed by the original implementation's CLIENTS_AT_ONCE
// constant (SPEC_FULL.md §C) and restated by spec.md §5.
const clientsAtOnce = 10

// recvWait bounds how long a single non-blocking read attempt may block,
// standing in for the original's SO_RCVTIMEO (SPEC_FULL.md §C).
const recvWait = 2 * time.Millisecond

// Server owns every piece of mutable state for one running game server:
// the registry, the in-progress (or just-finished) game, and the socket.
// There is exactly one Server per process and no global mutable state
// (Design Notes).
type Server struct {
	conf Conf
	conn *net.UDPConn

	registry *player.Registry
	rng      *sim.RNG

	game          *sim.Game
	gameID        uint32
	lastBroadcast int

	tickInterval time.Duration
	nextTick     time.Time
}

// NewServer constructs a server bound to conn, ready to run.
func NewServer(conf Conf, conn *net.UDPConn) *Server {
	now := time.Now()
	return &Server{
		conf:         conf,
		conn:         conn,
		registry:     player.NewRegistry(),
		rng:          sim.NewRNG(conf.Seed),
		tickInterval: time.Second / time.Duration(conf.RoundsPerSec),
		nextTick:     now,
	}
}

// inLobby reports whether the server currently has no game to advance:
// either none has ever started, or the last one reached GAME_OVER.
func (s *Server) inLobby() bool {
	return s.game == nil || s.game.Over
}

// Run is the cooperative, single-threaded loop of §5: on each iteration,
// catch up any due ticks, evict silent players, then drain a bounded
// number of inbound datagrams.
func (s *Server) Run() {
	buf := make([]byte, 2048)
	for {
		now := time.Now()
		for !s.nextTick.After(now) {
			s.runTick()
			s.nextTick = s.nextTick.Add(s.tickInterval)
			now = time.Now()
		}

		s.evictExpired(now)

		for i := 0; i < clientsAtOnce; i++ {
			n, addr, err := s.readOne(buf)
			if err != nil {
				break
			}
			s.handlePacket(buf[:n], addr, time.Now())
		}
	}
}

// readOne performs one bounded, non-blocking-equivalent read.
func (s *Server) readOne(buf []byte) (int, *net.UDPAddr, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(recvWait)); err != nil {
		log.Fatalf("set read deadline: %v", err)
	}
	return s.conn.ReadFromUDP(buf)
}

// runTick advances the active game by one simulation step, broadcasts any
// events it produced, and returns the registry to lobby state if the game
// just ended. A tick with no game in progress advances no simulation
// (before the first game it only checks whether one can start): the
// deadline still advances so the schedule doesn't drift once a game does
// start.
func (s *Server) runTick() {
	if s.game == nil {
		s.maybeStartGame()
		return
	}
	if s.game.Over {
		return
	}

	s.game.Tick()
	s.broadcastNewEvents()

	if s.game.Over {
		s.registry.ClearReady()
	}

	s.maybeStartGame()
}

// maybeStartGame begins a new game if the lobby condition of §4.4 holds.
func (s *Server) maybeStartGame() {
	if !s.inLobby() || !s.registry.CanStart() {
		return
	}

	ready := player.CanonicalOrder(s.registry.ReadyPlayers())
	names := make([]string, len(ready))
	for i, p := range ready {
		names[i] = p.Name
	}

	s.gameID = s.rng.Next()
	g := sim.NewGame(uint32(s.conf.Width), uint32(s.conf.Height), int(s.conf.TurningSpeed))
	if err := g.Start(s.rng, names); err != nil {
		debug.Printf("start game: %v", err)
		return
	}

	for i, p := range ready {
		p.WormNum = i
	}

	s.game = g
	s.lastBroadcast = 0
	s.broadcastNewEvents()

	if s.game.Over {
		s.registry.ClearReady()
	}
}

// broadcastNewEvents sends every event appended since the last broadcast
// to every connected player (§4.6).
func (s *Server) broadcastNewEvents() {
	fresh := s.game.Log.Slice(s.lastBroadcast)
	if len(fresh) == 0 {
		return
	}
	datagrams := event.Pack(s.gameID, fresh)
	for _, p := range s.registry.All() {
		s.sendAll(p.Addr, datagrams)
	}
	s.lastBroadcast = s.game.Log.Len()
}

// sendAll writes a sequence of already-packed datagrams to addr.
func (s *Server) sendAll(addr *net.UDPAddr, datagrams [][]byte) {
	for _, d := range datagrams {
		if _, err := s.conn.WriteToUDP(d, addr); err != nil {
			log.Fatalf("send to %s: %v", addr, err)
		}
	}
}

// evictExpired drops every player silent for more than player.Timeout.
func (s *Server) evictExpired(now time.Time) {
	for _, p := range s.registry.EvictExpired(now) {
		// Eviction frees the identity slot; an in-flight worm, if any,
		// is left exactly as it was (§5) and simply has no owner left
		// to update its turn direction.
		debug.Printf("evicted %s after %s of silence", p.Name, player.Timeout)
	}
}

// handlePacket validates and applies one inbound control datagram (§4.5),
// then replies with any events the sender is missing.
func (s *Server) handlePacket(buf []byte, addr *net.UDPAddr, now time.Time) {
	pkt, ok := parseControlPacket(buf)
	if !ok {
		return
	}

	id := player.Identity(addr)
	p, ok := s.registry.Accept(id, addr, pkt.Session, pkt.Turn, pkt.Name, now)
	if !ok {
		debug.Printf("drop control packet from %s: rejected by registry admission rules", id)
		return
	}

	if p.WormNum >= 0 && s.game != nil {
		s.game.SetTurn(p.WormNum, pkt.Turn)
	}

	if s.game != nil {
		replay := s.game.Log.Slice(int(pkt.NextExpected))
		s.sendAll(addr, event.Pack(s.gameID, replay))
	}

	s.maybeStartGame()
}
