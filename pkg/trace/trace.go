// Package trace records the per-cycle snapshots the cycle engine produces
// and serializes them to the pretty-printed JSON trace format described in
// the external interface contract.
package trace

import (
	"encoding/json"
	"os"

	"github.com/oisee/vliw470sim/pkg/latch"
)

// Snapshot is one cycle's visible architectural state plus the contents of
// all five pipeline latches. Field names and order are part of the output
// contract — existing trace consumers depend on this exact shape.
type Snapshot struct {
	PC  uint64 `json:"PC"`
	RBB uint64 `json:"RBB"`
	LC  uint64 `json:"LC"`
	EC  uint64 `json:"EC"`

	PhysicalRegisterFile [96]uint64 `json:"PhysicalRegisterFile"`
	PredicateRegisters   [96]bool   `json:"PredicateRegisters"`

	ALU0     latch.ALULatch           `json:"ALU0"`
	ALU1     latch.ALULatch           `json:"ALU1"`
	Branch   latch.BranchLatch        `json:"Branch"`
	Memory   latch.MemoryLatch        `json:"Memory"`
	Multiply latch.MultiplierPipeline `json:"Multiply"`

	MemoryData map[uint64]uint64 `json:"MemoryData"`
}

// Trace is the ordered sequence of per-cycle snapshots produced by a run.
type Trace []*Snapshot

// Append records one more cycle's snapshot.
func (t *Trace) Append(s *Snapshot) {
	*t = append(*t, s)
}

// WriteFile pretty-prints the trace as JSON to path.
func (t Trace) WriteFile(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
