package memory

import "testing"

func TestReadDefaultsToZero(t *testing.T) {
	m := New()
	if got := m.Read(0x1000); got != 0 {
		t.Fatalf("Read(unset) = %d, want 0", got)
	}
}

func TestWriteThenRead(t *testing.T) {
	m := New()
	m.Write(0x400, 42)
	if got := m.Read(0x400); got != 42 {
		t.Fatalf("Read(0x400) = %d, want 42", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New()
	m.Write(1, 1)
	clone := m.Clone()
	m.Write(1, 2)
	m.Write(2, 99)

	if got := clone.Read(1); got != 1 {
		t.Fatalf("clone.Read(1) = %d, want 1 (clone must not see later writes)", got)
	}
	if got := clone.Read(2); got != 0 {
		t.Fatalf("clone.Read(2) = %d, want 0", got)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := New()
	m.Write(5, 5)
	snap := m.Snapshot()
	snap[5] = 500
	if got := m.Read(5); got != 5 {
		t.Fatalf("mutating snapshot affected memory: Read(5) = %d, want 5", got)
	}
}
