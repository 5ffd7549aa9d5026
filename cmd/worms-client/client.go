// Main loop: control packet transmission and datagram polling

package main

import (
	"log"
	"net"
	"time"

	"screenworms/wire"
)

// sendInterval is the wall-clock cadence of outbound control packets (§4.9).
const sendInterval = 30 * time.Millisecond

// serverReadsAtOnce bounds server-socket drains per loop iteration, mirroring
// the server's clientsAtOnce (§5).
const serverReadsAtOnce = 10

// recvWait bounds a single non-blocking read attempt.
const recvWait = 2 * time.Millisecond

// Client owns the UDP connection to the server and the TCP connection to
// the local front-end, plus all per-session mutable state (Design Notes:
// one owned context value per process).
type Client struct {
	conn     *net.UDPConn
	frontEnd net.Conn
	pending  []byte // bytes read from frontEnd not yet forming a full line

	sessionID uint64
	name      string

	keys  KeyTranslator
	state *GameState
	emit  *FrontEnd

	nextSend time.Time
}

// NewClient wires a ready-to-run client out of its two sockets.
func NewClient(conn *net.UDPConn, frontEnd net.Conn, name string) *Client {
	state := NewGameState()
	return &Client{
		conn:      conn,
		frontEnd:  frontEnd,
		sessionID: uint64(time.Now().UnixMicro()),
		name:      name,
		state:     state,
		emit:      NewFrontEnd(frontEnd, state),
		nextSend:  time.Now(),
	}
}

// Run is the single-threaded cooperative loop of §5.
func (c *Client) Run() {
	buf := make([]byte, 2048)
	for {
		now := time.Now()
		for !c.nextSend.After(now) {
			c.sendControlPacket()
			c.nextSend = c.nextSend.Add(sendInterval)
			now = time.Now()
		}

		if line, ok := c.pollFrontEnd(); ok {
			c.keys.Apply(line)
		}

		for i := 0; i < serverReadsAtOnce; i++ {
			n, err := c.readServer(buf)
			if err != nil {
				break
			}
			if err := c.state.Feed(buf[:n], c.emit.Emit); err != nil {
				log.Fatalf("worms client: %v", err)
			}
		}
	}
}

// sendControlPacket builds and transmits one client->server datagram (§6).
func (c *Client) sendControlPacket() {
	buf := make([]byte, 0, 13+len(c.name))
	buf = wire.PutUint64(buf, c.sessionID)
	buf = append(buf, byte(c.keys.Direction()))
	buf = wire.PutUint32(buf, c.state.nextEventNo)
	buf = append(buf, c.name...)

	if _, err := c.conn.Write(buf); err != nil {
		log.Fatalf("worms client: send control packet: %v", err)
	}
}

// pollFrontEnd performs one non-blocking-equivalent read from the
// front-end and returns one completed line, if the accumulated buffer now
// holds one. A front-end I/O failure other than a read timeout is fatal
// (§7d); unlike bufio.Scanner, a timeout here must not be sticky, since
// the loop calls this once per iteration for the life of the process.
func (c *Client) pollFrontEnd() (string, bool) {
	if line, ok := takeLine(&c.pending); ok {
		return line, true
	}

	if err := c.frontEnd.SetReadDeadline(time.Now().Add(recvWait)); err != nil {
		log.Fatalf("worms client: set front-end deadline: %v", err)
	}

	buf := make([]byte, 512)
	n, err := c.frontEnd.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return "", false
		}
		log.Fatalf("worms client: front-end read: %v", err)
	}
	c.pending = append(c.pending, buf[:n]...)

	return takeLine(&c.pending)
}

// takeLine extracts and removes the first newline-terminated line from
// *buf, if one is present.
func takeLine(buf *[]byte) (string, bool) {
	for i, b := range *buf {
		if b == '\n' {
			line := string((*buf)[:i])
			*buf = (*buf)[i+1:]
			return trimCR(line), true
		}
	}
	return "", false
}

// trimCR strips a trailing carriage return, for front-ends that send CRLF.
func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

// readServer performs one bounded read from the server socket.
func (c *Client) readServer(buf []byte) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(recvWait)); err != nil {
		log.Fatalf("worms client: set server read deadline: %v", err)
	}
	return c.conn.Read(buf)
}
