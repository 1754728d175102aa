package state

import "testing"

func TestRenameStaticRegionIsIdentity(t *testing.T) {
	for rbb := uint64(0); rbb <= MaxRBB; rbb++ {
		for a := uint64(0); a < StaticRegionSize; a++ {
			if got := Rename(a, rbb); got != a {
				t.Fatalf("Rename(%d, rbb=%d) = %d, want %d", a, rbb, got, a)
			}
		}
	}
}

func TestRenameIsBijectionPerRBB(t *testing.T) {
	for rbb := uint64(0); rbb <= MaxRBB; rbb++ {
		seen := make(map[uint64]bool)
		for a := uint64(StaticRegionSize); a < StaticRegionSize+RotatingWindowSize; a++ {
			p := Rename(a, rbb)
			if p < StaticRegionSize || p >= StaticRegionSize+RotatingWindowSize {
				t.Fatalf("Rename(%d, rbb=%d) = %d out of rotating range", a, rbb, p)
			}
			if seen[p] {
				t.Fatalf("Rename(_, rbb=%d) collides at physical %d", rbb, p)
			}
			seen[p] = true
		}
		if len(seen) != RotatingWindowSize {
			t.Fatalf("rbb=%d: only %d distinct physical indices, want %d", rbb, len(seen), RotatingWindowSize)
		}
	}
}

func TestRenameKnownCases(t *testing.T) {
	cases := []struct {
		a, rbb, want uint64
	}{
		{32, 0, 32},
		{95, 0, 95},
		{32, 1, 95},
		{33, 1, 32},
		{32, 63, 33},
	}
	for _, c := range cases {
		if got := Rename(c.a, c.rbb); got != c.want {
			t.Errorf("Rename(%d, %d) = %d, want %d", c.a, c.rbb, got, c.want)
		}
	}
}
