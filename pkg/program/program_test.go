package program

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadProgramValid(t *testing.T) {
	path := writeTemp(t, "program.json", `[
		["addi x1, x0, 7", "nop", "nop", "nop", "nop"],
		["nop", "nop", "nop", "nop", "nop"]
	]`)
	bundles, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if len(bundles) != 2 {
		t.Fatalf("len(bundles) = %d, want 2", len(bundles))
	}
	if bundles[0][0] != "addi x1, x0, 7" {
		t.Fatalf("bundles[0][0] = %q", bundles[0][0])
	}
}

func TestLoadProgramWrongSlotCount(t *testing.T) {
	path := writeTemp(t, "program.json", `[["nop", "nop", "nop"]]`)
	if _, err := LoadProgram(path); err == nil {
		t.Fatal("expected structural error for 3-slot bundle")
	}
}

func TestLoadProgramMalformedJSON(t *testing.T) {
	path := writeTemp(t, "program.json", `{not valid json`)
	if _, err := LoadProgram(path); err == nil {
		t.Fatal("expected structural error for malformed JSON")
	}
}

// TestLoadProgramZeroBundles checks that an empty program is accepted:
// spec.md §4.5 step 1 defines PC >= bundleCount (true immediately when
// bundleCount is 0) as a valid nop-fetch case, so a zero-bundle program is
// not a structural error.
func TestLoadProgramZeroBundles(t *testing.T) {
	path := writeTemp(t, "program.json", `[]`)
	bundles, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if len(bundles) != 0 {
		t.Fatalf("len(bundles) = %d, want 0", len(bundles))
	}
}

func TestLoadMemoryDecimalAndHexKeys(t *testing.T) {
	path := writeTemp(t, "mem.json", `{"4096": 7, "0x2000": 99}`)
	mem, err := LoadMemory(path)
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	if got := mem.Read(4096); got != 7 {
		t.Fatalf("mem[4096] = %d, want 7", got)
	}
	if got := mem.Read(0x2000); got != 99 {
		t.Fatalf("mem[0x2000] = %d, want 99", got)
	}
}

func TestLoadMemoryEmptyPath(t *testing.T) {
	mem, err := LoadMemory("")
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	if got := mem.Read(0); got != 0 {
		t.Fatalf("mem[0] = %d, want 0", got)
	}
}

func TestLoadMemoryBadAddressKey(t *testing.T) {
	path := writeTemp(t, "mem.json", `{"not-an-address": 1}`)
	if _, err := LoadMemory(path); err == nil {
		t.Fatal("expected structural error for malformed address key")
	}
}
