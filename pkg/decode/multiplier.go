package decode

import (
	"github.com/oisee/vliw470sim/pkg/latch"
	"github.com/oisee/vliw470sim/pkg/state"
)

// Multiplier decodes the Multiplier slot (mulu, nop), computing the
// product at decode time. The result enters stage 0 of the pipeline and
// commits three cycles later when it drains from stage 2.
func Multiplier(text string, st *state.State) (latch.MultiplierStage, error) {
	p, err := parseInstruction("Multiplier", text, st)
	if err != nil {
		return latch.MultiplierStage{}, err
	}

	switch p.opcode {
	case "nop":
		return latch.InertMultiplier(), nil
	case "mulu":
		if len(p.operands) != 3 {
			return latch.MultiplierStage{}, newError("Multiplier", text, "mulu expects 3 operands, got %d", len(p.operands))
		}
		dest, err := parseRegisterToken(p.operands[0])
		if err != nil {
			return latch.MultiplierStage{}, newError("Multiplier", text, "%v", err)
		}
		a, err := parseRegisterToken(p.operands[1])
		if err != nil {
			return latch.MultiplierStage{}, newError("Multiplier", text, "%v", err)
		}
		b, err := parseRegisterToken(p.operands[2])
		if err != nil {
			return latch.MultiplierStage{}, newError("Multiplier", text, "%v", err)
		}
		av := st.General[state.Rename(a, st.RBB)]
		bv := st.General[state.Rename(b, st.RBB)]
		return latch.MultiplierStage{
			Predicate:   predicateValue(p, st),
			TargetIndex: state.Rename(dest, st.RBB),
			Result:      av * bv, // wraps mod 2^64
		}, nil
	default:
		return latch.MultiplierStage{}, newError("Multiplier", text, "unknown Multiplier opcode %q", p.opcode)
	}
}
