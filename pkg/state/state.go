// Package state holds the VLIW-470 architectural state — PC, LC, EC, RBB,
// the 96-entry general register file and the 96-entry predicate register
// file — and the register renamer that maps an architectural index to a
// physical index against the current rotating-register base (RBB).
package state

const (
	// NumGeneralRegisters is the size of the physical general register file.
	NumGeneralRegisters = 96
	// NumPredicateRegisters is the size of the physical predicate register file.
	NumPredicateRegisters = 96
	// StaticRegionSize is the number of low, non-rotating architectural
	// (and physical) indices: 0..31.
	StaticRegionSize = 32
	// RotatingWindowSize is the number of architectural indices (32..95)
	// that rotate against RBB.
	RotatingWindowSize = 64
	// MaxRBB is the largest legal RBB value.
	MaxRBB = 63
)

// State is the full programmer-visible architectural state of one VLIW-470
// core. All general register values wrap modulo 2^64; RBB is held in
// [0, MaxRBB].
type State struct {
	PC  uint64
	LC  uint64
	EC  uint64
	RBB uint64

	General   [NumGeneralRegisters]uint64
	Predicate [NumPredicateRegisters]bool
}

// New returns a zeroed architectural state: PC=0, LC=0, EC=0, RBB=0, all
// registers 0/false.
func New() *State {
	return &State{}
}

// Rename maps an architectural register index a (general or predicate,
// both partitioned identically) to its physical index under the given
// rotating-register base rbb.
//
// Indices 0..31 are static and map to themselves. Indices 32..95 form a
// 64-wide rotating window: physical = a - rbb, raised by 64 (landing in
// 33..95) whenever that difference falls below 32. This is
// the literal rule from the spec; it is already range-correct for every
// a in [32, 95] and rbb in [0, 63] without an explicit modulo, since the
// difference a-rbb never leaves [-31, 95].
func Rename(a, rbb uint64) uint64 {
	if a < StaticRegionSize {
		return a
	}
	p := int64(a) - int64(rbb)
	if p < StaticRegionSize {
		return uint64(p + RotatingWindowSize)
	}
	return uint64(p)
}
