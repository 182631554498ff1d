package vm

import (
	"testing"

	"github.com/benjcooley/milo832/isa"
)

func TestFragmentGradientScenario(t *testing.T) {
	v := New()
	// fragColor = vec4(v_texcoord.x, v_texcoord.y, 0.5, 1.0)
	v.LoadProgram([]uint64{
		uint64(isa.Encode(isa.OpMov, 4, 2, 0, 0, 0, 0)),
		uint64(isa.Encode(isa.OpMov, 5, 3, 0, 0, 0, 0)),
		uint64(isa.Encode(isa.OpNop, 0, 0, 0, 0, 0, 0)), // placeholder; r6 and r7 are preset below
		uint64(isa.Encode(isa.OpExit, 0, 0, 0, 0, 0, 0)),
	})
	v.BindFragmentInputs(FragmentInputs{Texcoord: [2]float32{0.25, 0.75}})
	v.Regs[6] = RegFromF(0.5)
	v.Regs[7] = RegFromF(1.0)
	v.Run()
	r, g, b, a := v.ExtractFragmentOutput()
	if r != 0.25 || g != 0.75 {
		t.Fatalf("expected (0.25, 0.75, ...), got (%v, %v, %v, %v)", r, g, b, a)
	}
}

func TestVertexOutputExtraction(t *testing.T) {
	v := New()
	v.Regs[1] = RegFromF(1)
	v.Regs[2] = RegFromF(2)
	v.Regs[3] = RegFromF(3)
	v.Regs[4] = RegFromF(4)
	x, y, z, w := v.ExtractVertexOutput()
	if x != 1 || y != 2 || z != 3 || w != 4 {
		t.Fatalf("unexpected vertex output: %v %v %v %v", x, y, z, w)
	}
}
