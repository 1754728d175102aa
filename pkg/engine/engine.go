// Package engine implements the VLIW-470 cycle engine: the tick
// orchestration that drains pipeline latches, issues new decodes, advances
// the program counter, and records a trace snapshot every cycle.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/oisee/vliw470sim/pkg/decode"
	"github.com/oisee/vliw470sim/pkg/latch"
	"github.com/oisee/vliw470sim/pkg/memory"
	"github.com/oisee/vliw470sim/pkg/state"
	"github.com/oisee/vliw470sim/pkg/trace"
)

// Bundle is one VLIW-470 instruction word: five slot texts in ALU0, ALU1,
// Multiplier, Memory, Branch order.
type Bundle [5]string

var nopBundle = Bundle{"nop", "nop", "nop", "nop", "nop"}

// Engine owns the architectural state, data memory, and the five pipeline
// latches, and drives them one cycle at a time. It is single-threaded and
// deterministic: Tick performs one logical cycle atomically.
type Engine struct {
	State   *state.State
	Memory  *memory.Memory
	Program []Bundle
	Verbose bool

	alu0, alu1 latch.ALULatch
	branch     latch.BranchLatch
	mem        latch.MemoryLatch
	mul        latch.MultiplierPipeline

	logger  *slog.Logger
	cycle   int
	written map[string]string
}

// New builds an engine ready to simulate program against the given
// initial memory. A nil logger is replaced by slog.Default().
func New(program []Bundle, mem *memory.Memory, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		State:   state.New(),
		Memory:  mem,
		Program: program,
		logger:  logger,
	}
}

// Run drives Tick until PC first reaches or exceeds len(Program), then
// performs exactly two additional ticks to drain in-flight multiplier
// results and pending writebacks. maxCycles bounds pathological programs
// (e.g. an unconditional backward loop.pip); it is a safety valve and
// does not affect the trace of any program that terminates normally.
//
// The reached check runs before each tick, against the PC left by all
// prior ticks, so a zero-bundle program (PC == bundleCount from the very
// first tick) still drains for exactly two ticks rather than three — the
// post-tick check this used to use can't express "already there before
// tick 0 ever ran".
func (e *Engine) Run(maxCycles int) (trace.Trace, error) {
	var tr trace.Trace
	bundleCount := uint64(len(e.Program))
	reachedAt := -1

	for cyclesRun := 0; ; cyclesRun++ {
		if maxCycles > 0 && cyclesRun >= maxCycles {
			return nil, fmt.Errorf("engine: exceeded max-cycles (%d) without terminating", maxCycles)
		}
		if reachedAt < 0 && e.State.PC >= bundleCount {
			reachedAt = cyclesRun
		}

		snap, err := e.Tick()
		if err != nil {
			return nil, err
		}
		tr.Append(snap)

		if reachedAt >= 0 && cyclesRun == reachedAt+1 {
			return tr, nil
		}
	}
}

// Tick performs one logical cycle: fetch, branch decode, snapshot,
// writeback, multiplier shift, issue, PC update — in that exact order.
func (e *Engine) Tick() (*trace.Snapshot, error) {
	bundle := e.fetch()

	branchLatch, err := decode.Branch(bundle[4], e.State)
	if err != nil {
		return nil, fmt.Errorf("cycle %d: %w", e.cycle, err)
	}
	e.branch = branchLatch

	snap := e.snapshot()

	e.written = make(map[string]string)
	e.commitALU(e.alu0, "ALU0")
	e.commitALU(e.alu1, "ALU1")
	e.commitMemory(e.mem)
	e.commitMultiplier()

	e.mul.Shift()

	newALU0, err := decode.ALU("ALU0", bundle[0], e.State)
	if err != nil {
		return nil, fmt.Errorf("cycle %d: %w", e.cycle, err)
	}
	newALU1, err := decode.ALU("ALU1", bundle[1], e.State)
	if err != nil {
		return nil, fmt.Errorf("cycle %d: %w", e.cycle, err)
	}
	newMul, err := decode.Multiplier(bundle[2], e.State)
	if err != nil {
		return nil, fmt.Errorf("cycle %d: %w", e.cycle, err)
	}
	newMem, err := decode.Memory(bundle[3], e.State)
	if err != nil {
		return nil, fmt.Errorf("cycle %d: %w", e.cycle, err)
	}
	e.alu0, e.alu1, e.mem = newALU0, newALU1, newMem
	e.mul[0] = newMul

	e.updatePC(branchLatch)

	if e.Verbose {
		e.logger.Info("cycle", "n", e.cycle, "pc", snap.PC, "lc", snap.LC, "ec", snap.EC, "rbb", snap.RBB)
	}
	e.cycle++
	return snap, nil
}

func (e *Engine) fetch() Bundle {
	if e.State.PC < uint64(len(e.Program)) {
		return e.Program[e.State.PC]
	}
	return nopBundle
}

func (e *Engine) snapshot() *trace.Snapshot {
	var gen [96]uint64
	copy(gen[:], e.State.General[:])
	var pred [96]bool
	copy(pred[:], e.State.Predicate[:])

	return &trace.Snapshot{
		PC:                   e.State.PC,
		RBB:                  e.State.RBB,
		LC:                   e.State.LC,
		EC:                   e.State.EC,
		PhysicalRegisterFile: gen,
		PredicateRegisters:   pred,
		ALU0:                 e.alu0,
		ALU1:                 e.alu1,
		Branch:               e.branch,
		Memory:               e.mem,
		Multiply:             e.mul,
		MemoryData:           e.Memory.Snapshot(),
	}
}

// markWrite records that writer committed to name this cycle, logging a
// non-fatal diagnostic if another writer already claimed it. Commits
// proceed regardless — last writer wins, in ALU0, ALU1, Memory,
// Multiplier commit order.
func (e *Engine) markWrite(name, writer string) {
	if prev, ok := e.written[name]; ok {
		e.logger.Warn("duplicate writeback target", "cycle", e.cycle, "target", name, "first", prev, "winner", writer)
	}
	e.written[name] = writer
}

func (e *Engine) commitALU(l latch.ALULatch, writer string) {
	if !l.Predicate {
		return
	}
	switch l.Op {
	case latch.OpALU:
		e.markWrite(fmt.Sprintf("gen:%d", l.TargetIndex), writer)
		e.State.General[l.TargetIndex] = l.Value
	case latch.OpUpdateLC:
		e.markWrite("LC", writer)
		e.State.LC = l.Value
	case latch.OpUpdateEC:
		e.markWrite("EC", writer)
		e.State.EC = l.Value
	case latch.OpUpdateRBB:
		e.markWrite("RBB", writer)
		e.State.RBB = l.Value
	case latch.OpUpdatePredicate:
		e.markWrite(fmt.Sprintf("pred:%d", l.TargetIndex), writer)
		e.State.Predicate[l.TargetIndex] = l.Value != 0
	}
}

func (e *Engine) commitMemory(l latch.MemoryLatch) {
	if !l.Predicate {
		return
	}
	switch l.Op {
	case latch.OpLoad:
		e.markWrite(fmt.Sprintf("gen:%d", l.LoadDest), "Memory")
		e.State.General[l.LoadDest] = e.Memory.Read(l.Address)
	case latch.OpStore:
		e.Memory.Write(l.Address, l.Data)
	}
}

func (e *Engine) commitMultiplier() {
	stage := e.mul[2]
	if !stage.Predicate {
		return
	}
	e.markWrite(fmt.Sprintf("gen:%d", stage.TargetIndex), "Multiplier")
	e.State.General[stage.TargetIndex] = stage.Result
}

// updatePC advances PC by one (holding once past the program), then
// applies the branch transitions of the decoded Branch latch: the
// LC/EC-driven case selection happens here, against the current
// (post-writeback) state, not at decode time.
func (e *Engine) updatePC(b latch.BranchLatch) {
	bundleCount := uint64(len(e.Program))
	if e.State.PC < bundleCount {
		e.State.PC++
	}

	if !b.Predicate {
		return
	}

	switch b.Op {
	case latch.OpLoop:
		if e.State.LC > 0 {
			e.State.LC--
			e.State.PC = b.TargetPC
		}
	case latch.OpPipelinedLoop:
		switch {
		case e.State.LC > 0:
			e.State.LC--
			e.State.RBB = (e.State.RBB + 1) % state.RotatingWindowSize
			e.State.Predicate[state.Rename(32, e.State.RBB)] = true
			e.State.PC = b.TargetPC
		case e.State.EC > 0:
			e.State.EC--
			e.State.RBB = (e.State.RBB + 1) % state.RotatingWindowSize
			e.State.Predicate[state.Rename(32, e.State.RBB)] = false
			e.State.PC = b.TargetPC
		default:
			e.State.Predicate[state.Rename(32, e.State.RBB)] = false
		}
	}
}
