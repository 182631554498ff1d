package vm

// FragmentInputs is the register-bound set of values a fragment-stage
// program reads: v_texcoord at r2-r3, v_normal at r4-r6, v_color at
// r7-r10, matching the reference VM's milo_vm_exec_fragment layout.
type FragmentInputs struct {
	Texcoord [2]float32
	Normal   [3]float32
	Color    [4]float32
}

// BindFragmentInputs writes a fragment program's stage inputs into their
// fixed register slots.
func (v *VM) BindFragmentInputs(in FragmentInputs) {
	v.Regs[2] = RegFromF(in.Texcoord[0])
	v.Regs[3] = RegFromF(in.Texcoord[1])
	v.Regs[4] = RegFromF(in.Normal[0])
	v.Regs[5] = RegFromF(in.Normal[1])
	v.Regs[6] = RegFromF(in.Normal[2])
	v.Regs[7] = RegFromF(in.Color[0])
	v.Regs[8] = RegFromF(in.Color[1])
	v.Regs[9] = RegFromF(in.Color[2])
	v.Regs[10] = RegFromF(in.Color[3])
}

// ExtractFragmentOutput reads fragColor from r4-r7 after execution. These
// registers alias the v_normal/v_color input slots by construction — the
// open question spec.md flags about output-register aliasing — so callers
// with fragment programs that also declare v_normal must keep the layout
// simple enough that normal reads happen before fragColor is written.
func (v *VM) ExtractFragmentOutput() (r, g, b, a float32) {
	return v.Regs[4].F(), v.Regs[5].F(), v.Regs[6].F(), v.Regs[7].F()
}

// VertexInputs is the register-bound set of values a vertex-stage program
// reads: position at r2-r4, texcoord at r5-r6, color at r7-r10, normal at
// r11-r13, matching milo_vm_exec_vertex.
type VertexInputs struct {
	Position [3]float32
	Texcoord [2]float32
	Color    [4]float32
	Normal   [3]float32
}

// BindVertexInputs writes a vertex program's stage inputs into their fixed
// register slots.
func (v *VM) BindVertexInputs(in VertexInputs) {
	v.Regs[2] = RegFromF(in.Position[0])
	v.Regs[3] = RegFromF(in.Position[1])
	v.Regs[4] = RegFromF(in.Position[2])
	v.Regs[5] = RegFromF(in.Texcoord[0])
	v.Regs[6] = RegFromF(in.Texcoord[1])
	v.Regs[7] = RegFromF(in.Color[0])
	v.Regs[8] = RegFromF(in.Color[1])
	v.Regs[9] = RegFromF(in.Color[2])
	v.Regs[10] = RegFromF(in.Color[3])
	v.Regs[11] = RegFromF(in.Normal[0])
	v.Regs[12] = RegFromF(in.Normal[1])
	v.Regs[13] = RegFromF(in.Normal[2])
}

// ExtractVertexOutput reads the vertex program's vec4 return value from
// r1-r4, with r1 holding the function-return slot per the reference
// calling convention.
func (v *VM) ExtractVertexOutput() (x, y, z, w float32) {
	return v.Regs[1].F(), v.Regs[2].F(), v.Regs[3].F(), v.Regs[4].F()
}
