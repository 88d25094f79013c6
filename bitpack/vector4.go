package bitpack

import (
	"encoding/binary"
	"math"

	"github.com/mogaika/ganim/internal/invariant"
)

// PackVector4F128 writes x,y,z,w as raw little-endian f32 — the QuatFull
// rotation format's wire representation (§3's "4×f32, 128 bits"), the one
// sample shape not covered by the 3-vector packers.
func PackVector4F128(v [4]float32, out []byte) {
	invariant.Check(len(out) >= 16, "bitpack.PackVector4F128", "out too short: %d", len(out))
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v[i]))
	}
}

// UnpackVector4F128 is the inverse of PackVector4F128.
func UnpackVector4F128(in []byte) [4]float32 {
	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(in[i*4:]))
	}
	return out
}
