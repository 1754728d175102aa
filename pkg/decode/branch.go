package decode

import (
	"github.com/oisee/vliw470sim/pkg/latch"
	"github.com/oisee/vliw470sim/pkg/state"
)

// Branch decodes the Branch slot (loop, loop.pip, nop). Branch is
// zero-latency: it is decoded and consumed within the same cycle it is
// fetched, before any writeback for that cycle.
//
// Only the static shape of the instruction is resolved here (its opcode
// and target PC, after renaming the optional predicate). The dynamic
// LC/EC-driven case selection that loop and loop.pip perform is evaluated
// when the latch is applied (engine.Tick, PC-update step), against
// whatever LC/EC/RBB the state holds at that point — see DESIGN.md.
func Branch(text string, st *state.State) (latch.BranchLatch, error) {
	p, err := parseInstruction("Branch", text, st)
	if err != nil {
		return latch.BranchLatch{}, err
	}

	switch p.opcode {
	case "nop":
		return latch.InertBranch(), nil
	case "loop":
		target, err := branchTarget("loop", text, p)
		if err != nil {
			return latch.BranchLatch{}, err
		}
		return latch.BranchLatch{Predicate: predicateValue(p, st), Op: latch.OpLoop, TargetPC: target}, nil
	case "loop.pip":
		target, err := branchTarget("loop.pip", text, p)
		if err != nil {
			return latch.BranchLatch{}, err
		}
		return latch.BranchLatch{Predicate: predicateValue(p, st), Op: latch.OpPipelinedLoop, TargetPC: target}, nil
	default:
		return latch.BranchLatch{}, newError("Branch", text, "unknown Branch opcode %q", p.opcode)
	}
}

func branchTarget(opcode, text string, p parsedInstruction) (uint64, error) {
	if len(p.operands) != 1 {
		return 0, newError("Branch", text, "%s expects 1 operand, got %d", opcode, len(p.operands))
	}
	target, err := ParseImmediate(p.operands[0])
	if err != nil {
		return 0, newError("Branch", text, "bad target %q: %v", p.operands[0], err)
	}
	return target, nil
}
