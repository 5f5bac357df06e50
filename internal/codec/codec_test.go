package codec

import (
	"math"
	"testing"
)

func TestRoundTripSpecialValues(t *testing.T) {
	tests := []struct {
		name string
		bits uint32
	}{
		{"positive zero", 0x00000000},
		{"negative zero", 0x80000000},
		{"smallest subnormal", 0x00000001},
		{"largest subnormal", 0x007fffff},
		{"negative subnormal", 0x80000001},
		{"smallest normal", 0x00800000},
		{"one", 0x3f800000},
		{"max float", 0x7f7fffff},
		{"positive infinity", 0x7f800000},
		{"negative infinity", 0xff800000},
		{"quiet NaN", 0x7fc00000},
		{"NaN with payload", 0x7fc0beef},
		{"negative NaN with payload", 0xffc01234},
		{"signaling NaN", 0x7f800001},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeF32(DecodeF32(tc.bits))
			if got != tc.bits {
				t.Errorf("EncodeF32(DecodeF32(%#08x)) = %#08x", tc.bits, got)
			}
		})
	}
}

func TestRoundTripAllPatterns(t *testing.T) {
	step := uint64(1)
	if testing.Short() {
		step = 4099 // prime stride still hits every exponent
	}

	for b := uint64(0); b <= math.MaxUint32; b += step {
		bits := uint32(b)
		if got := EncodeF32(DecodeF32(bits)); got != bits {
			t.Fatalf("EncodeF32(DecodeF32(%#08x)) = %#08x", bits, got)
		}
	}
}

func TestDecodeEncodeValues(t *testing.T) {
	values := []float32{0, 1, -1, 2.5, 4.0, 0.95, 5_000_000, float32(math.Pi), math.SmallestNonzeroFloat32, math.MaxFloat32}

	for _, v := range values {
		if got := DecodeF32(EncodeF32(v)); got != v {
			t.Errorf("DecodeF32(EncodeF32(%v)) = %v", v, got)
		}
	}

	negZero := float32(math.Copysign(0, -1))
	if got := DecodeF32(EncodeF32(negZero)); !math.Signbit(float64(got)) {
		t.Error("negative zero lost its sign")
	}
}

func TestRoundTrip64(t *testing.T) {
	patterns := []uint64{0, 1 << 63, 1, 0x7ff0000000000000, 0x7ff8000000000001, 0xfff00000deadbeef, math.Float64bits(69)}

	for _, bits := range patterns {
		if got := EncodeF64(DecodeF64(bits)); got != bits {
			t.Errorf("EncodeF64(DecodeF64(%#016x)) = %#016x", bits, got)
		}
	}
}
