package player

import (
	"net"
	"testing"
	"time"

	"screenworms/sim"
)

func addr(port int) *net.UDPAddr {
	return &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: port}
}

func TestLobbyGating(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	r.Accept("a", addr(1), 1, sim.Straight, "A", now)
	r.Accept("b", addr(2), 2, sim.Straight, "B", now)
	if r.CanStart() {
		t.Fatalf("expected no game: neither player is ready yet")
	}

	r.Accept("a", addr(1), 1, sim.Right, "A", now)
	if r.CanStart() {
		t.Fatalf("expected no game: B is still unready")
	}

	r.Accept("b", addr(2), 2, sim.Left, "B", now)
	if !r.CanStart() {
		t.Fatalf("expected game to start: both A and B are ready")
	}

	ready := CanonicalOrder(r.ReadyPlayers())
	if len(ready) != 2 || ready[0].Name != "A" || ready[1].Name != "B" {
		t.Fatalf("got %v, want [A B]", names(ready))
	}
}

func TestCanonicalOrderSortsLexicographically(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	for i, n := range []string{"zoe", "alice", "bob"} {
		r.Accept(n, addr(100+i), 1, sim.Right, n, now)
	}
	got := names(CanonicalOrder(r.ReadyPlayers()))
	want := []string{"alice", "bob", "zoe"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSessionOrderingRules(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	if _, ok := r.Accept("x", addr(1), 5, sim.Straight, "A", now); !ok {
		t.Fatalf("first packet for an unknown identity must be admitted")
	}

	if _, ok := r.Accept("x", addr(1), 3, sim.Straight, "A", now); ok {
		t.Fatalf("a lower session_id than the stored one must be dropped")
	}

	if _, ok := r.Accept("x", addr(1), 5, sim.Straight, "B", now); ok {
		t.Fatalf("same session_id but a different name must be dropped")
	}

	if _, ok := r.Accept("x", addr(1), 5, sim.Straight, "A", now); !ok {
		t.Fatalf("same session_id, same name must refresh")
	}

	if _, ok := r.Accept("x", addr(1), 9, sim.Straight, "A", now); !ok {
		t.Fatalf("a strictly higher session_id must evict and re-admit")
	}
}

func TestTimeoutEviction(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	r.Accept("a", addr(1), 1, sim.Straight, "A", now)

	evicted := r.EvictExpired(now.Add(2100 * time.Millisecond))
	if len(evicted) != 1 {
		t.Fatalf("expected 1 eviction, got %d", len(evicted))
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry after eviction")
	}

	if _, ok := r.Accept("a", addr(1), 2, sim.Straight, "A", now); !ok {
		t.Fatalf("reconnecting with a higher session_id after eviction must be admitted")
	}
}

func TestRegistryCap(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	for i := 0; i < Cap; i++ {
		id := string(rune('a' + i))
		if _, ok := r.Accept(id, addr(i), 1, sim.Straight, "", now); !ok {
			t.Fatalf("player %d should have been admitted under the cap", i)
		}
	}
	if _, ok := r.Accept("overflow", addr(999), 1, sim.Straight, "", now); ok {
		t.Fatalf("a new identity past the cap must be dropped")
	}
}

func names(ps []*Player) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
