// Package program loads the two JSON input files the simulator consumes:
// the bundle program itself and an optional initial-memory image.
package program

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oisee/vliw470sim/pkg/engine"
	"github.com/oisee/vliw470sim/pkg/memory"
)

// StructuralError reports a malformed program or memory-init file: bad
// JSON shape, a bundle whose slot count isn't 5, or a memory key that
// isn't a decimal or 0x-hex address. Structural errors are fatal — the
// simulator never guesses at a malformed input.
type StructuralError struct {
	Path string
	Msg  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("program: %s: %s", e.Path, e.Msg)
}

func newStructuralError(path, format string, args ...any) *StructuralError {
	return &StructuralError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// LoadProgram reads a program.json file: a JSON array of bundles, each a
// 5-element array of slot texts in ALU0, ALU1, Multiplier, Memory, Branch
// order.
func LoadProgram(path string) ([]engine.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw [][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, newStructuralError(path, "invalid JSON array of bundles: %v", err)
	}

	bundles := make([]engine.Bundle, len(raw))
	for i, slots := range raw {
		if len(slots) != 5 {
			return nil, newStructuralError(path, "bundle %d has %d slots, want 5", i, len(slots))
		}
		var b engine.Bundle
		copy(b[:], slots)
		bundles[i] = b
	}
	return bundles, nil
}

// LoadMemory reads a memory-init file: a JSON object mapping decimal or
// 0x-hex address strings to decimal word values. A blank path produces an
// empty memory.
func LoadMemory(path string) (*memory.Memory, error) {
	mem := memory.New()
	if path == "" {
		return mem, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, newStructuralError(path, "invalid JSON object of address -> word: %v", err)
	}

	for key, word := range raw {
		addr, err := parseAddress(key)
		if err != nil {
			return nil, newStructuralError(path, "address %q: %v", key, err)
		}
		mem.Write(addr, word)
	}
	return mem, nil
}

func parseAddress(tok string) (uint64, error) {
	tok = strings.TrimSpace(tok)
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		return strconv.ParseUint(tok[2:], 16, 64)
	}
	return strconv.ParseUint(tok, 10, 64)
}
