package layout

import (
	"sync/atomic"

	"github.com/vstrozzi/monkey-3d-game/internal/codec"
)

// Float32 is an atomic float slot stored as its bit pattern.
type Float32 struct {
	bits atomic.Uint32
}

// Load atomically reads the value.
func (f *Float32) Load() float32 {
	return codec.DecodeF32(f.bits.Load())
}

// Store atomically writes v.
func (f *Float32) Store(v float32) {
	f.bits.Store(codec.EncodeF32(v))
}

// LoadBits atomically reads the raw bit pattern.
func (f *Float32) LoadBits() uint32 {
	return f.bits.Load()
}

// StoreBits atomically writes a raw bit pattern.
func (f *Float32) StoreBits(bits uint32) {
	f.bits.Store(bits)
}
