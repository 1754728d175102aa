package decode

import (
	"github.com/oisee/vliw470sim/pkg/latch"
	"github.com/oisee/vliw470sim/pkg/state"
)

// Memory decodes the Memory slot (ld, st, nop). Operand shape is
// "xD, imm(xA)"; imm may be empty, meaning 0.
//
// For "st", the word written to memory is read from the renamed
// *destination* operand, not a conventional source register — an unusual
// convention preserved verbatim from the reference simulator (see
// DESIGN.md open question 1).
func Memory(text string, st *state.State) (latch.MemoryLatch, error) {
	p, err := parseInstruction("Memory", text, st)
	if err != nil {
		return latch.MemoryLatch{}, err
	}

	switch p.opcode {
	case "nop":
		return latch.InertMemory(), nil
	case "ld", "st":
		if len(p.operands) != 2 {
			return latch.MemoryLatch{}, newError("Memory", text, "%s expects 2 operands, got %d", p.opcode, len(p.operands))
		}
		d, err := parseRegisterToken(p.operands[0])
		if err != nil {
			return latch.MemoryLatch{}, newError("Memory", text, "%v", err)
		}
		imm, base, err := parseMemoryOperand(p.operands[1])
		if err != nil {
			return latch.MemoryLatch{}, newError("Memory", text, "%v", err)
		}

		renamedD := state.Rename(d, st.RBB)
		address := st.General[state.Rename(base, st.RBB)] + imm

		if p.opcode == "ld" {
			return latch.MemoryLatch{
				Predicate: predicateValue(p, st),
				Op:        latch.OpLoad,
				Address:   address,
				LoadDest:  renamedD,
			}, nil
		}
		return latch.MemoryLatch{
			Predicate: predicateValue(p, st),
			Op:        latch.OpStore,
			Address:   address,
			Data:      st.General[renamedD],
		}, nil
	default:
		return latch.MemoryLatch{}, newError("Memory", text, "unknown Memory opcode %q", p.opcode)
	}
}
