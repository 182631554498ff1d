package vm

import (
	"fmt"
	"math"

	"github.com/benjcooley/milo832/isa"
	"github.com/benjcooley/milo832/sampler"
)

// Step decodes and executes a single instruction. It returns false once the
// VM has stopped running (EXIT, an unbalanced RET, a watchdog trip, or a
// decode/runtime error) — callers drive Run with a Step loop.
func (v *VM) Step() bool {
	if v.Status != StatusRunning {
		return false
	}
	if v.Cycles >= v.MaxCycles {
		v.fail(fmt.Errorf("watchdog: exceeded max_cycles (%d)", v.MaxCycles))
		return false
	}
	if int(v.PC) >= len(v.Code) {
		v.fail(fmt.Errorf("pc out of bounds: %d", v.PC))
		return false
	}

	w := isa.Word(v.Code[v.PC])
	op := w.Opcode()
	rd, rs1, rs2, rs3 := w.Rd(), w.Rs1(), w.Rs2(), w.Rs3()
	imm := w.Imm()

	v.Regs[0] = 0

	f1 := v.Regs[rs1].F()
	f2 := v.Regs[rs2].F()
	i1 := v.Regs[rs1].I()
	i2 := v.Regs[rs2].I()
	u1 := v.Regs[rs1].U()
	u2 := v.Regs[rs2].U()

	v.PC++
	v.Cycles++

	switch op {
	case isa.OpNop:
		// nothing

	case isa.OpExit:
		v.Status = StatusHalted
		return false

	case isa.OpMov:
		v.setU(rd, u1)

	case isa.OpAdd:
		if imm != 0 {
			v.setI(rd, i1+imm)
		} else {
			v.setI(rd, i1+i2)
		}

	case isa.OpSub:
		v.setI(rd, i1-i2)

	case isa.OpMul:
		v.setI(rd, i1*i2)

	case isa.OpNeg:
		v.setI(rd, -i1)

	case isa.OpIdiv:
		if i2 == 0 {
			v.setI(rd, 0)
		} else {
			v.setI(rd, i1/i2)
		}

	case isa.OpIrem:
		if i2 == 0 {
			v.setI(rd, 0)
		} else {
			v.setI(rd, i1%i2)
		}

	case isa.OpIabs:
		if i1 < 0 {
			v.setI(rd, -i1)
		} else {
			v.setI(rd, i1)
		}

	case isa.OpImin:
		if i1 < i2 {
			v.setI(rd, i1)
		} else {
			v.setI(rd, i2)
		}

	case isa.OpImax:
		if i1 > i2 {
			v.setI(rd, i1)
		} else {
			v.setI(rd, i2)
		}

	case isa.OpImad:
		v.setI(rd, i1*i2+v.Regs[rs3].I())

	case isa.OpSlt:
		v.setBool(rd, i1 < i2)

	case isa.OpSle:
		v.setBool(rd, i1 <= i2)

	case isa.OpSeq:
		v.setBool(rd, i1 == i2)

	case isa.OpAnd:
		v.setU(rd, u1&u2)

	case isa.OpOr:
		v.setU(rd, u1|u2)

	case isa.OpXor:
		v.setU(rd, u1^u2)

	case isa.OpNot:
		v.setU(rd, ^u1)

	case isa.OpShl:
		v.setU(rd, u1<<(u2&31))

	case isa.OpShr:
		v.setU(rd, u1>>(u2&31))

	case isa.OpSha:
		v.setI(rd, i1>>(u2&31))

	case isa.OpFadd:
		v.setF(rd, f1+f2)

	case isa.OpFsub:
		v.setF(rd, f1-f2)

	case isa.OpFmul:
		v.setF(rd, f1*f2)

	case isa.OpFdiv:
		if f2 != 0 {
			v.setF(rd, f1/f2)
		} else {
			v.setF(rd, 0)
		}

	case isa.OpFfma:
		v.setF(rd, f1*f2+v.Regs[rs3].F())

	case isa.OpFneg:
		v.setF(rd, -f1)

	case isa.OpFabs:
		v.setF(rd, float32(math.Abs(float64(f1))))

	case isa.OpFmin:
		v.setF(rd, minf32(f1, f2))

	case isa.OpFmax:
		v.setF(rd, maxf32(f1, f2))

	case isa.OpFtoi:
		v.setI(rd, int32(f1))

	case isa.OpItof:
		v.setF(rd, float32(i1))

	case isa.OpFslt:
		v.setBool(rd, f1 < f2)

	case isa.OpFsle:
		v.setBool(rd, f1 <= f2)

	case isa.OpFseq:
		v.setBool(rd, f1 == f2)

	case isa.OpSfuSin:
		v.setF(rd, float32(math.Sin(float64(f1))))

	case isa.OpSfuCos:
		v.setF(rd, float32(math.Cos(float64(f1))))

	case isa.OpSfuEx2:
		v.setF(rd, float32(math.Exp2(float64(f1))))

	case isa.OpSfuLg2:
		if f1 <= 0 {
			v.setF(rd, float32(math.Inf(-1)))
		} else {
			v.setF(rd, float32(math.Log2(float64(f1))))
		}

	case isa.OpSfuRcp:
		if f1 == 0 {
			v.setF(rd, float32(math.Inf(1)))
		} else {
			v.setF(rd, 1.0/f1)
		}

	case isa.OpSfuRsq:
		if f1 <= 0 {
			v.setF(rd, float32(math.Inf(1)))
		} else {
			v.setF(rd, float32(1.0/math.Sqrt(float64(f1))))
		}

	case isa.OpSfuSqrt:
		if f1 < 0 {
			v.setF(rd, 0)
		} else {
			v.setF(rd, float32(math.Sqrt(float64(f1))))
		}

	case isa.OpSfuTanh:
		v.setF(rd, float32(math.Tanh(float64(f1))))

	case isa.OpPopc:
		v.setI(rd, int32(popcount(u1)))

	case isa.OpClz:
		v.setI(rd, int32(clz(u1)))

	case isa.OpBrev:
		v.setU(rd, bitReverse(u1))

	case isa.OpCnot:
		v.setBool(rd, u1 == 0)

	case isa.OpSelp:
		if v.Regs[rs3].I() != 0 {
			v.setU(rd, u1)
		} else {
			v.setU(rd, u2)
		}

	case isa.OpBra:
		v.PC = uint32(imm)

	case isa.OpBeq:
		if i1 == i2 {
			v.PC = uint32(imm)
		}

	case isa.OpBne:
		if i1 != i2 {
			v.PC = uint32(imm)
		}

	case isa.OpSsy:
		v.DivergenceStack.Push(uint32(imm))

	case isa.OpJoin:
		v.DivergenceStack.Pop()

	case isa.OpCall:
		v.ReturnStack.Push(v.PC)
		v.PC = uint32(imm)

	case isa.OpRet:
		addr, ok := v.ReturnStack.Pop()
		if !ok {
			v.Status = StatusHalted
			return false
		}
		v.PC = addr

	case isa.OpTid:
		// Single-lane reference model: there is always exactly one
		// thread, so TID always reads as 0.
		v.setI(rd, 0)

	case isa.OpBar:
		// No-op: a single lane never waits on siblings.

	case isa.OpTex:
		unit := int(i1)
		u := f2
		vc := v.Regs[rs2+1].F()
		if unit >= 0 && unit < NumTextures && v.Textures[unit] != nil {
			rgba := sampler.Sample(v.Textures[unit], u, vc)
			r, g, b, a := sampler.Unpack(rgba)
			v.setF(rd, r)
			v.setF(rd+1, g)
			v.setF(rd+2, b)
			v.setF(rd+3, a)
		} else {
			v.setF(rd, 1)
			v.setF(rd+1, 0)
			v.setF(rd+2, 1)
			v.setF(rd+3, 1)
		}

	case isa.OpLdr:
		addr := u1 + uint32(imm)
		if addr < MemorySize {
			v.setU(rd, v.ReadWord(addr))
		} else {
			v.setU(rd, 0)
		}

	case isa.OpStr:
		addr := u1 + uint32(imm)
		if addr < MemorySize {
			v.WriteWord(addr, u2)
		}

	case isa.OpLds, isa.OpSts:
		// Shared memory: reserved, no-op in the reference model.

	default:
		v.fail(fmt.Errorf("unknown opcode %#02x at pc %d", uint8(op), v.PC-1))
		return false
	}

	v.Regs[0] = 0
	return v.Status == StatusRunning
}

// Run steps the VM until it stops running, returning the final status.
func (v *VM) Run() Status {
	for v.Step() {
	}
	return v.Status
}

func (v *VM) fail(err error) {
	v.Status = StatusError
	v.LastError = err
}

func (v *VM) setI(r uint8, val int32) { v.Regs[r] = RegFromI(val) }
func (v *VM) setU(r uint8, val uint32) { v.Regs[r] = Reg(val) }
func (v *VM) setF(r uint8, val float32) { v.Regs[r] = RegFromF(val) }
func (v *VM) setBool(r uint8, b bool) {
	if b {
		v.setI(r, 1)
	} else {
		v.setI(r, 0)
	}
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func popcount(v uint32) int {
	count := 0
	for v != 0 {
		count += int(v & 1)
		v >>= 1
	}
	return count
}

func clz(v uint32) int {
	count := 0
	for i := 31; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			break
		}
		count++
	}
	return count
}

func bitReverse(v uint32) uint32 {
	var r uint32
	for i := uint(0); i < 32; i++ {
		r |= ((v >> i) & 1) << (31 - i)
	}
	return r
}
