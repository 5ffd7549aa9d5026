// Deterministic world generator

// Package sim implements the authoritative worms simulation: the
// deterministic RNG, the board, worm kinematics and the per-tick game
// loop (§4.3, §4.4 of the protocol).
package sim

const (
	randMult = 279410273
	randMod  = 4294967291
)

// RNG is the linear congruential generator fixed by §4.3: r0 = seed, and
// each call returns the current value before advancing
// r(n+1) = r(n) * 279410273 mod 4294967291. Two RNGs seeded identically
// and called the same number of times produce identical sequences,
// regardless of platform - this is plain 64-bit integer arithmetic.
type RNG struct {
	state uint64
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: uint64(seed)}
}

// Next returns the next value in the sequence.
func (r *RNG) Next() uint32 {
	result := uint32(r.state)
	r.state = (r.state * randMult) % randMod
	return result
}
