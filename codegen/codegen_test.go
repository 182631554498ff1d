package codegen_test

import (
	"testing"

	"github.com/benjcooley/milo832/asm"
	"github.com/benjcooley/milo832/codegen"
	"github.com/benjcooley/milo832/lang/parser"
	"github.com/benjcooley/milo832/vm"
)

// assembleAndRun runs source through the full parser -> codegen -> asm ->
// vm pipeline, returning the VM ready to bind stage inputs and execute.
func assembleAndRun(t *testing.T, src string) (*vm.VM, *codegen.Generator) {
	t.Helper()
	p := parser.New(src, "test.glsl")
	prog := p.ParseProgram()
	if p.Errors.HasErrors() {
		t.Fatalf("parse errors: %s", p.Errors.Error())
	}

	g := codegen.New()
	asmText := g.Generate(prog)
	if g.Errors.HasErrors() {
		t.Fatalf("codegen errors: %s", g.Errors.Error())
	}

	a := asm.New("test.glsl")
	words := a.Assemble(asmText)
	if a.Errors.HasErrors() {
		t.Fatalf("assembler errors: %s\n--- generated asm ---\n%s", a.Errors.Error(), asmText)
	}

	machine := vm.New()
	machine.LoadProgram(words)

	bits := make([]uint32, 0, 8)
	for _, e := range g.Pool.Entries() {
		bits = append(bits, e.Bits)
	}
	machine.LoadConstantPool(codegen.DefaultConstantPoolBase, bits)

	return machine, g
}

func TestGradientFragmentShader(t *testing.T) {
	src := `
in vec2 v_texcoord;
out vec4 fragColor;
void main() {
	fragColor = vec4(v_texcoord.x, v_texcoord.y, 0.5, 1.0);
}
`
	machine, _ := assembleAndRun(t, src)
	machine.BindFragmentInputs(vm.FragmentInputs{Texcoord: [2]float32{0.25, 0.75}})

	if status := machine.Run(); status != vm.StatusHalted {
		t.Fatalf("expected halted status, got %v (err=%v)", status, machine.LastError)
	}

	r, g2, b, a := machine.ExtractFragmentOutput()
	want := [4]float32{0.25, 0.75, 0.5, 1.0}
	got := [4]float32{r, g2, b, a}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("component %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestConstantInterningDeduplicates(t *testing.T) {
	src := `
out vec4 fragColor;
void main() {
	fragColor = vec4(1.0, 1.0, 1.0, 1.0);
}
`
	_, g := assembleAndRun(t, src)
	if len(g.Pool.Entries()) != 1 {
		t.Fatalf("expected a single deduplicated constant, got %d", len(g.Pool.Entries()))
	}
}

func TestIfElseSelectsBranch(t *testing.T) {
	src := `
in vec2 v_texcoord;
out vec4 fragColor;
void main() {
	float x = 1.0;
	if (x > 0.5) {
		fragColor = vec4(1.0, 0.0, 0.0, 1.0);
	} else {
		fragColor = vec4(0.0, 1.0, 0.0, 1.0);
	}
}
`
	machine, _ := assembleAndRun(t, src)
	if status := machine.Run(); status != vm.StatusHalted {
		t.Fatalf("expected halted status, got %v (err=%v)", status, machine.LastError)
	}
	r, g2, _, _ := machine.ExtractFragmentOutput()
	if r != 1.0 || g2 != 0.0 {
		t.Fatalf("expected the true branch's red output, got r=%v g=%v", r, g2)
	}
}

func TestSfuBuiltinLowersToSinOpcode(t *testing.T) {
	src := `
in vec2 v_texcoord;
out vec4 fragColor;
void main() {
	float s = sin(0.0);
	fragColor = vec4(s, s, s, 1.0);
}
`
	machine, _ := assembleAndRun(t, src)
	if status := machine.Run(); status != vm.StatusHalted {
		t.Fatalf("expected halted status, got %v (err=%v)", status, machine.LastError)
	}
	r, _, _, _ := machine.ExtractFragmentOutput()
	if r < -1e-6 || r > 1e-6 {
		t.Fatalf("expected sin(0)=0, got %v", r)
	}
}
