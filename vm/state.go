// Package vm implements the Milo832 reference interpreter: a single-lane,
// bit-exact model of the register file, divergence/reconvergence stacks,
// linear memory, uniforms, and texture slots described by the instruction
// set in package isa.
package vm

import "github.com/benjcooley/milo832/sampler"

// Status is the VM's execution status.
type Status int

const (
	StatusRunning Status = iota
	StatusDiscarded
	StatusHalted
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusDiscarded:
		return "discarded"
	case StatusHalted:
		return "halted"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	NumRegisters  = 64
	StackDepth    = 256
	MemorySize    = 8192
	NumUniforms   = 32
	NumTextures   = 8
	DefaultMaxCycles = 100000
)

// Reg is a general-purpose register: a raw 32-bit slot that can be read or
// written as either a signed integer or an IEEE-754 float, matching the
// reference model's tagged union.
type Reg uint32

// I reads the register as a signed 32-bit integer.
func (r Reg) I() int32 { return int32(r) }

// U reads the register as an unsigned 32-bit integer.
func (r Reg) U() uint32 { return uint32(r) }

// F reads the register as an IEEE-754 float.
func (r Reg) F() float32 { return f32frombits(uint32(r)) }

// RegFromI builds a register from a signed integer.
func RegFromI(v int32) Reg { return Reg(uint32(v)) }

// RegFromF builds a register from a float.
func RegFromF(v float32) Reg { return Reg(f32bits(v)) }

// Uniform is one slot of the 32-entry uniform array: a tagged bag that can
// hold a scalar, vector (up to 4), or matrix (up to 16) of floats or a
// single integer.
type Uniform struct {
	Kind UniformKind
	I    int32
	F    [16]float32 // scalar uses F[0]; vec2/3/4 use F[0:N]; mat3/mat4 row-major
}

// UniformKind tags the shape of data held in a Uniform slot.
type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformInt
	UniformVec2
	UniformVec3
	UniformVec4
	UniformMat3
	UniformMat4
)

// VM is the complete architectural state of a Milo832 lane.
type VM struct {
	Regs [NumRegisters]Reg
	PC   uint32

	DivergenceStack Stack
	ReturnStack     Stack

	Memory [MemorySize]byte

	Uniforms [NumUniforms]Uniform
	Textures [NumTextures]*sampler.Texture

	Code []uint64 // the loaded, assembled program

	Status Status
	Cycles uint64

	MaxCycles uint64

	// LastError is set when Status transitions to StatusError.
	LastError error
}

// New returns a VM with MaxCycles set to the reference default and r0
// hardwired to zero.
func New() *VM {
	v := &VM{MaxCycles: DefaultMaxCycles}
	v.Reset()
	return v
}

// Reset clears all architectural state back to power-on values, preserving
// the loaded program and MaxCycles.
func (v *VM) Reset() {
	for i := range v.Regs {
		v.Regs[i] = 0
	}
	v.PC = 0
	v.DivergenceStack.Reset()
	v.ReturnStack.Reset()
	for i := range v.Memory {
		v.Memory[i] = 0
	}
	for i := range v.Uniforms {
		v.Uniforms[i] = Uniform{}
	}
	v.Status = StatusRunning
	v.Cycles = 0
	v.LastError = nil
}

// LoadProgram installs an assembled word stream and resets execution state.
func (v *VM) LoadProgram(words []uint64) {
	v.Code = words
	v.Reset()
}
