package decode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oisee/vliw470sim/pkg/state"
)

// parsedInstruction is the common shape every slot decoder starts from:
// an optional renamed gating predicate, the opcode mnemonic, and the raw
// comma-separated operand tokens.
type parsedInstruction struct {
	hasPredicate bool
	predicateIdx uint64 // physical, already renamed
	opcode       string
	operands     []string
}

func parseInstruction(slot, text string, st *state.State) (parsedInstruction, error) {
	rest := strings.TrimSpace(text)
	var p parsedInstruction

	if strings.HasPrefix(rest, "(") {
		close := strings.IndexByte(rest, ')')
		if close < 0 {
			return p, newError(slot, text, "unterminated predicate prefix")
		}
		predTok := strings.TrimSpace(rest[1:close])
		idx, err := parsePredicateToken(predTok)
		if err != nil {
			return p, newError(slot, text, "%v", err)
		}
		if idx >= state.NumPredicateRegisters {
			return p, newError(slot, text, "predicate index %d out of range [0, %d]", idx, state.NumPredicateRegisters-1)
		}
		p.hasPredicate = true
		p.predicateIdx = state.Rename(idx, st.RBB)
		rest = strings.TrimSpace(rest[close+1:])
	}

	fields := strings.SplitN(rest, " ", 2)
	p.opcode = strings.TrimSpace(fields[0])
	if len(fields) == 2 {
		for _, operand := range strings.Split(fields[1], ",") {
			operand = strings.TrimSpace(operand)
			if operand != "" {
				p.operands = append(p.operands, operand)
			}
		}
	}
	return p, nil
}

// predicateValue resolves the instruction's gating predicate: the renamed
// predicate register's current value, or true if the instruction had no
// "(pN)" prefix.
func predicateValue(p parsedInstruction, st *state.State) bool {
	if !p.hasPredicate {
		return true
	}
	return st.Predicate[p.predicateIdx]
}

func parsePredicateToken(tok string) (uint64, error) {
	if !strings.HasPrefix(tok, "p") {
		return 0, newParseError("predicate operand %q must start with 'p'", tok)
	}
	return strconv.ParseUint(tok[1:], 10, 64)
}

// parseRegisterToken parses a general-register operand ("xN") and returns
// its architectural index, unrenamed.
func parseRegisterToken(tok string) (uint64, error) {
	if !strings.HasPrefix(tok, "x") {
		return 0, newParseError("register operand %q must start with 'x'", tok)
	}
	idx, err := strconv.ParseUint(tok[1:], 10, 64)
	if err != nil {
		return 0, err
	}
	if idx >= state.NumGeneralRegisters {
		return 0, newParseError("register index %d out of range [0, %d]", idx, state.NumGeneralRegisters-1)
	}
	return idx, nil
}

// ParseImmediate parses a decimal or 0x-prefixed hexadecimal literal.
// Other bases are not accepted (spec open question: undefined behavior).
func ParseImmediate(tok string) (uint64, error) {
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		return strconv.ParseUint(tok[2:], 16, 64)
	}
	return strconv.ParseUint(tok, 10, 64)
}

// parseMemoryOperand splits "imm(xA)" into the immediate (0 if empty) and
// the base register's architectural index.
func parseMemoryOperand(tok string) (imm uint64, base uint64, err error) {
	open := strings.IndexByte(tok, '(')
	closeIdx := strings.IndexByte(tok, ')')
	if open < 0 || closeIdx < 0 || closeIdx < open {
		return 0, 0, newParseError("malformed memory operand %q, want imm(xA)", tok)
	}
	immTok := strings.TrimSpace(tok[:open])
	if immTok != "" {
		imm, err = ParseImmediate(immTok)
		if err != nil {
			return 0, 0, err
		}
	}
	base, err = parseRegisterToken(strings.TrimSpace(tok[open+1 : closeIdx]))
	if err != nil {
		return 0, 0, err
	}
	return imm, base, nil
}

type parseError struct {
	msg string
}

func newParseError(format string, args ...any) *parseError {
	return &parseError{msg: fmt.Sprintf(format, args...)}
}

func (e *parseError) Error() string {
	return e.msg
}
