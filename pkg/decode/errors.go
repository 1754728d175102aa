package decode

import "fmt"

// Error reports a malformed instruction: a bad operand prefix, a predicate
// index out of [0, 95], an RBB immediate >= 64, or an unrecognized "mov"
// form. Decode errors are fatal — the simulator aborts before emitting a
// trace.
type Error struct {
	Slot string // "ALU0", "ALU1", "Multiplier", "Memory", "Branch"
	Text string // the offending instruction text
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode: %s %q: %s", e.Slot, e.Text, e.Msg)
}

func newError(slot, text, format string, args ...any) *Error {
	return &Error{Slot: slot, Text: text, Msg: fmt.Sprintf(format, args...)}
}
