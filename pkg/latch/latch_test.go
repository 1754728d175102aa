package latch

import "testing"

func TestMultiplierPipelineShift(t *testing.T) {
	var p MultiplierPipeline
	p[0] = MultiplierStage{Predicate: true, TargetIndex: 5, Result: 12}

	p.Shift()
	if p[1] != (MultiplierStage{Predicate: true, TargetIndex: 5, Result: 12}) {
		t.Fatalf("stage 0 did not shift into stage 1: %+v", p[1])
	}
	if p[0] != (MultiplierStage{}) {
		t.Fatalf("stage 0 not cleared after shift: %+v", p[0])
	}

	p.Shift()
	if p[2] != (MultiplierStage{Predicate: true, TargetIndex: 5, Result: 12}) {
		t.Fatalf("stage 1 did not shift into stage 2: %+v", p[2])
	}

	p.Shift()
	if p[2] != (MultiplierStage{}) {
		t.Fatalf("drained stage 2 should be dropped, got %+v", p[2])
	}
}

func TestOpStringsMatchSpecVocabulary(t *testing.T) {
	aluWant := map[ALUOp]string{
		OpALU: "alu", OpUpdateLC: "updateLC", OpUpdateEC: "updateEC",
		OpUpdateRBB: "updateRBB", OpUpdatePredicate: "updatePredicate",
	}
	for op, want := range aluWant {
		if got := op.String(); got != want {
			t.Errorf("ALUOp(%d).String() = %q, want %q", op, got, want)
		}
	}

	branchWant := map[BranchOp]string{OpInert: "inert", OpLoop: "loop", OpPipelinedLoop: "pipelined-loop"}
	for op, want := range branchWant {
		if got := op.String(); got != want {
			t.Errorf("BranchOp(%d).String() = %q, want %q", op, got, want)
		}
	}

	memWant := map[MemoryOp]string{OpLoad: "load", OpStore: "store"}
	for op, want := range memWant {
		if got := op.String(); got != want {
			t.Errorf("MemoryOp(%d).String() = %q, want %q", op, got, want)
		}
	}
}
