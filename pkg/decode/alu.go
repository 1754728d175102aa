package decode

import (
	"strings"

	"github.com/oisee/vliw470sim/pkg/latch"
	"github.com/oisee/vliw470sim/pkg/state"
)

// ALU decodes an ALU0/ALU1 slot instruction: add, addi, sub, mov, nop.
// Register reads (for add/addi/sub, and for "mov xD, xS") sample st at the
// moment ALU is called — the engine always calls this against the
// post-writeback register file for the current cycle's issue, per the
// cycle engine's step ordering.
func ALU(slotName, text string, st *state.State) (latch.ALULatch, error) {
	p, err := parseInstruction(slotName, text, st)
	if err != nil {
		return latch.ALULatch{}, err
	}

	switch p.opcode {
	case "nop":
		return latch.Inert(), nil
	case "add", "sub":
		return aluBinaryReg(slotName, text, p, st)
	case "addi":
		return aluImmediate(slotName, text, p, st)
	case "mov":
		return aluMov(slotName, text, p, st)
	default:
		return latch.ALULatch{}, newError(slotName, text, "unknown ALU opcode %q", p.opcode)
	}
}

func aluBinaryReg(slotName, text string, p parsedInstruction, st *state.State) (latch.ALULatch, error) {
	if len(p.operands) != 3 {
		return latch.ALULatch{}, newError(slotName, text, "%s expects 3 operands, got %d", p.opcode, len(p.operands))
	}
	dest, err := parseRegisterToken(p.operands[0])
	if err != nil {
		return latch.ALULatch{}, newError(slotName, text, "%v", err)
	}
	a, err := parseRegisterToken(p.operands[1])
	if err != nil {
		return latch.ALULatch{}, newError(slotName, text, "%v", err)
	}
	b, err := parseRegisterToken(p.operands[2])
	if err != nil {
		return latch.ALULatch{}, newError(slotName, text, "%v", err)
	}

	av := st.General[state.Rename(a, st.RBB)]
	bv := st.General[state.Rename(b, st.RBB)]

	var value uint64
	if p.opcode == "add" {
		value = av + bv // wraps mod 2^64
	} else {
		value = av - bv // two's-complement wraparound, same as mod 2^64
	}

	return latch.ALULatch{
		Predicate:   predicateValue(p, st),
		Op:          latch.OpALU,
		TargetIndex: state.Rename(dest, st.RBB),
		Value:       value,
	}, nil
}

func aluImmediate(slotName, text string, p parsedInstruction, st *state.State) (latch.ALULatch, error) {
	if len(p.operands) != 3 {
		return latch.ALULatch{}, newError(slotName, text, "addi expects 3 operands, got %d", len(p.operands))
	}
	dest, err := parseRegisterToken(p.operands[0])
	if err != nil {
		return latch.ALULatch{}, newError(slotName, text, "%v", err)
	}
	a, err := parseRegisterToken(p.operands[1])
	if err != nil {
		return latch.ALULatch{}, newError(slotName, text, "%v", err)
	}
	imm, err := ParseImmediate(p.operands[2])
	if err != nil {
		return latch.ALULatch{}, newError(slotName, text, "bad immediate %q: %v", p.operands[2], err)
	}

	av := st.General[state.Rename(a, st.RBB)]
	return latch.ALULatch{
		Predicate:   predicateValue(p, st),
		Op:          latch.OpALU,
		TargetIndex: state.Rename(dest, st.RBB),
		Value:       av + imm,
	}, nil
}

// aluMov handles every "mov" destination form: general register, predicate
// register, or the LC/EC/RBB special registers.
func aluMov(slotName, text string, p parsedInstruction, st *state.State) (latch.ALULatch, error) {
	if len(p.operands) != 2 {
		return latch.ALULatch{}, newError(slotName, text, "mov expects 2 operands, got %d", len(p.operands))
	}
	dest, src := p.operands[0], p.operands[1]
	pred := predicateValue(p, st)

	switch {
	case strings.HasPrefix(dest, "x"):
		idx, err := parseRegisterToken(dest)
		if err != nil {
			return latch.ALULatch{}, newError(slotName, text, "%v", err)
		}
		value, err := movSourceValue(src, st)
		if err != nil {
			return latch.ALULatch{}, newError(slotName, text, "%v", err)
		}
		return latch.ALULatch{Predicate: pred, Op: latch.OpALU, TargetIndex: state.Rename(idx, st.RBB), Value: value}, nil

	case strings.HasPrefix(dest, "p"):
		idx, err := parsePredicateToken(dest)
		if err != nil {
			return latch.ALULatch{}, newError(slotName, text, "%v", err)
		}
		if idx >= state.NumPredicateRegisters {
			return latch.ALULatch{}, newError(slotName, text, "predicate index %d out of range [0, %d]", idx, state.NumPredicateRegisters-1)
		}
		var value uint64
		switch src {
		case "true":
			value = 1
		case "false":
			value = 0
		default:
			return latch.ALULatch{}, newError(slotName, text, "mov pD source must be true/false, got %q", src)
		}
		return latch.ALULatch{Predicate: pred, Op: latch.OpUpdatePredicate, TargetIndex: state.Rename(idx, st.RBB), Value: value}, nil

	case dest == "LC":
		imm, err := ParseImmediate(src)
		if err != nil {
			return latch.ALULatch{}, newError(slotName, text, "bad LC immediate %q: %v", src, err)
		}
		return latch.ALULatch{Predicate: pred, Op: latch.OpUpdateLC, Value: imm}, nil

	case dest == "EC":
		imm, err := ParseImmediate(src)
		if err != nil {
			return latch.ALULatch{}, newError(slotName, text, "bad EC immediate %q: %v", src, err)
		}
		return latch.ALULatch{Predicate: pred, Op: latch.OpUpdateEC, Value: imm}, nil

	case dest == "RBB":
		imm, err := ParseImmediate(src)
		if err != nil {
			return latch.ALULatch{}, newError(slotName, text, "bad RBB immediate %q: %v", src, err)
		}
		if imm >= state.RotatingWindowSize {
			return latch.ALULatch{}, newError(slotName, text, "RBB immediate %d must be < %d", imm, state.RotatingWindowSize)
		}
		return latch.ALULatch{Predicate: pred, Op: latch.OpUpdateRBB, Value: imm}, nil

	default:
		return latch.ALULatch{}, newError(slotName, text, "unknown mov destination %q", dest)
	}
}

func movSourceValue(src string, st *state.State) (uint64, error) {
	if strings.HasPrefix(src, "x") {
		idx, err := parseRegisterToken(src)
		if err != nil {
			return 0, err
		}
		return st.General[state.Rename(idx, st.RBB)], nil
	}
	return ParseImmediate(src)
}
