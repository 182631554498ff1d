package vm

import (
	"testing"

	"github.com/benjcooley/milo832/isa"
)

func assemble(words ...isa.Word) []uint64 {
	out := make([]uint64, len(words))
	for i, w := range words {
		out[i] = uint64(w)
	}
	return out
}

func TestStepArithmeticAndExit(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(
		isa.Encode(isa.OpAdd, 1, 0, 0, 0, 0, 40),
		isa.Encode(isa.OpAdd, 1, 1, 0, 0, 0, 2),
		isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0),
	))
	status := v.Run()
	if status != StatusHalted {
		t.Fatalf("expected halted, got %v (%v)", status, v.LastError)
	}
	if v.Regs[1].I() != 42 {
		t.Fatalf("expected r1=42, got %d", v.Regs[1].I())
	}
}

func TestR0AlwaysZero(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(
		isa.Encode(isa.OpAdd, 0, 0, 0, 0, 0, 99),
		isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0),
	))
	v.Run()
	if v.Regs[0] != 0 {
		t.Fatalf("r0 should remain zero, got %d", v.Regs[0].I())
	}
}

func TestDivisionByZeroYieldsZero(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(
		isa.Encode(isa.OpAdd, 1, 0, 0, 0, 0, 5),
		isa.Encode(isa.OpIdiv, 2, 1, 0, 0, 0, 0), // r0 == 0 divisor
		isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0),
	))
	v.Run()
	if v.Regs[2].I() != 0 {
		t.Fatalf("expected 0 on div-by-zero, got %d", v.Regs[2].I())
	}
}

func TestBranchAndLabelsBEQ(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(
		isa.Encode(isa.OpAdd, 1, 0, 0, 0, 0, 7),
		isa.Encode(isa.OpAdd, 2, 0, 0, 0, 0, 7),
		isa.Encode(isa.OpBeq, 0, 1, 2, 0, 0, 4), // jump to pc=4 if equal
		isa.Encode(isa.OpAdd, 3, 0, 0, 0, 0, 111),
		isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0),
	))
	v.Run()
	if v.Regs[3].I() != 0 {
		t.Fatalf("branch should have skipped the not-taken path, r3=%d", v.Regs[3].I())
	}
}

func TestCallReturn(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(
		isa.Encode(isa.OpCall, 0, 0, 0, 0, 0, 3), // pc=0 -> call func at 3
		isa.Encode(isa.OpAdd, 2, 0, 0, 0, 0, 5),
		isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0),
		isa.Encode(isa.OpAdd, 1, 0, 0, 0, 0, 1), // func body at pc=3
		isa.Encode(isa.OpRet, 0, 0, 0, 0, 0, 0),
	))
	v.Run()
	if v.Regs[1].I() != 1 || v.Regs[2].I() != 5 {
		t.Fatalf("call/ret did not resume correctly: r1=%d r2=%d", v.Regs[1].I(), v.Regs[2].I())
	}
}

func TestRetWithEmptyStackHalts(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(isa.Encode(isa.OpRet, 0, 0, 0, 0, 0, 0)))
	status := v.Run()
	if status != StatusHalted {
		t.Fatalf("expected halted on unbalanced ret, got %v", status)
	}
}

func TestWatchdogTripsOnInfiniteLoop(t *testing.T) {
	v := New()
	v.MaxCycles = 10
	v.LoadProgram(assemble(
		isa.Encode(isa.OpBra, 0, 0, 0, 0, 0, 0),
	))
	status := v.Run()
	if status != StatusError {
		t.Fatalf("expected watchdog error, got %v", status)
	}
}

func TestUnknownOpcodeErrors(t *testing.T) {
	v := New()
	v.LoadProgram([]uint64{uint64(isa.Encode(isa.OpIsetp, 0, 0, 0, 0, 0, 0))})
	status := v.Run()
	if status != StatusError {
		t.Fatalf("expected error status for unimplemented opcode, got %v", status)
	}
}

func TestMemoryLoadStoreRoundTrip(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(
		isa.Encode(isa.OpAdd, 1, 0, 0, 0, 0, 100), // r1 = base addr
		isa.Encode(isa.OpAdd, 2, 0, 0, 0, 0, 77),  // r2 = value
		isa.Encode(isa.OpStr, 0, 1, 2, 0, 0, 0),
		isa.Encode(isa.OpLdr, 3, 1, 0, 0, 0, 0),
		isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0),
	))
	v.Run()
	if v.Regs[3].I() != 77 {
		t.Fatalf("expected loaded value 77, got %d", v.Regs[3].I())
	}
}

func TestMemoryOutOfRangeReadsZero(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(
		isa.Encode(isa.OpLdr, 1, 0, 0, 0, 0, 1<<19-4), // far beyond MemorySize
		isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0),
	))
	v.Run()
	if v.Regs[1].I() != 0 {
		t.Fatalf("expected 0 for out-of-range read, got %d", v.Regs[1].I())
	}
}

func TestTexMissingUnitFallsBackToMagentaWhite(t *testing.T) {
	v := New()
	v.LoadProgram(assemble(
		isa.Encode(isa.OpTex, 4, 0, 1, 0, 0, 0), // unit=r0=0 (unbound), u=r1=0, v=r2
		isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0),
	))
	v.Run()
	if v.Regs[4].F() != 1 || v.Regs[5].F() != 0 || v.Regs[6].F() != 1 || v.Regs[7].F() != 1 {
		t.Fatalf("expected fallback (1,0,1,1), got (%v,%v,%v,%v)",
			v.Regs[4].F(), v.Regs[5].F(), v.Regs[6].F(), v.Regs[7].F())
	}
}
