package asm

import "math"

// floatBits returns a float32's raw bit pattern, used to encode `.data`
// directive float literals into the word the VM will later reinterpret.
func floatBits(f float32) uint32 {
	return math.Float32bits(f)
}
