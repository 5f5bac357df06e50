// Package codec converts floating-point values to and from the unsigned
// integer words stored in the shared region.
//
// Shared fields must be lock-free atomic words, so every float is kept as its
// raw IEEE-754 bit pattern. The conversion is a pure representation change:
// no rounding, no clamping, and NaN payloads survive the round trip. Range
// validation of application quantities is the caller's job.
package codec

import "math"

// EncodeF32 returns the bit pattern of f.
func EncodeF32(f float32) uint32 {
	return math.Float32bits(f)
}

// DecodeF32 returns the float whose bit pattern is bits.
func DecodeF32(bits uint32) float32 {
	return math.Float32frombits(bits)
}

// EncodeF64 returns the bit pattern of f.
func EncodeF64(f float64) uint64 {
	return math.Float64bits(f)
}

// DecodeF64 returns the float whose bit pattern is bits.
func DecodeF64(bits uint64) float64 {
	return math.Float64frombits(bits)
}
