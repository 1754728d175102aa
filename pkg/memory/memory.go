// Package memory implements the VLIW-470 data memory: a sparse mapping from
// 64-bit address to 64-bit word. Reads of unset addresses return 0; stores
// are unbounded.
package memory

// Memory is the flat data memory owned by the cycle engine. It is not safe
// for concurrent use — the engine drives it from a single goroutine, one
// tick at a time.
type Memory struct {
	words map[uint64]uint64
}

// New returns an empty memory, all addresses reading as 0.
func New() *Memory {
	return &Memory{words: make(map[uint64]uint64)}
}

// Read returns the word stored at addr, or 0 if never written.
func (m *Memory) Read(addr uint64) uint64 {
	return m.words[addr]
}

// Write stores word at addr, inserting or overwriting as needed.
func (m *Memory) Write(addr, word uint64) {
	m.words[addr] = word
}

// Clone returns a deep copy, so that later writes through m do not alter
// the copy.
func (m *Memory) Clone() *Memory {
	return &Memory{words: m.Snapshot()}
}

// Snapshot returns a deep copy of the underlying address->word map. The
// cycle engine uses it to copy memory into each trace snapshot.
func (m *Memory) Snapshot() map[uint64]uint64 {
	cp := make(map[uint64]uint64, len(m.words))
	for addr, word := range m.words {
		cp[addr] = word
	}
	return cp
}
