package codegen

import "math"

// DefaultConstantPoolBase is where `.data` entries are emitted unless the
// caller overrides it, matching the reference assembler's fixed base.
const DefaultConstantPoolBase = 0x1000

// ConstantPool deduplicates literal values by bit pattern and assigns each
// a unique address in the `.data` region.
type ConstantPool struct {
	Base    uint32
	order   []uint32 // bit patterns in first-seen order
	addrOf  map[uint32]uint32
}

// NewConstantPool creates an empty pool emitted starting at base.
func NewConstantPool(base uint32) *ConstantPool {
	return &ConstantPool{Base: base, addrOf: make(map[uint32]uint32)}
}

// InternFloat returns the address of v's bit pattern, allocating a new
// 4-byte-aligned slot if this exact value hasn't been interned yet.
func (c *ConstantPool) InternFloat(v float32) uint32 {
	return c.intern(math.Float32bits(v))
}

// InternInt returns the address of v's bit pattern, allocating a new slot
// if needed.
func (c *ConstantPool) InternInt(v int32) uint32 {
	return c.intern(uint32(v))
}

func (c *ConstantPool) intern(bits uint32) uint32 {
	if addr, ok := c.addrOf[bits]; ok {
		return addr
	}
	addr := c.Base + uint32(len(c.order))*4
	c.addrOf[bits] = addr
	c.order = append(c.order, bits)
	return addr
}

// Entries returns the pool's (address, value) pairs in allocation order,
// ready to emit as `.data ADDR, VALUE` directives.
func (c *ConstantPool) Entries() []ConstEntry {
	entries := make([]ConstEntry, len(c.order))
	for i, bits := range c.order {
		entries[i] = ConstEntry{Addr: c.Base + uint32(i)*4, Bits: bits}
	}
	return entries
}

// ConstEntry is one resolved constant-pool slot.
type ConstEntry struct {
	Addr uint32
	Bits uint32
}
