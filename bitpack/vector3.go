package bitpack

import (
	"encoding/binary"
	"math"

	"github.com/mogaika/ganim/internal/invariant"
)

// PadBytes is the minimum zero-fill every packed stream buffer must carry
// past its nominal last sample, so UnpackVector3UXXUnsafe's unaligned
// 64-bit gather never reads out of the allocation. See the "unsafe"
// unaligned-read design note: this is an allocator invariant, not an
// accessor one.
const PadBytes = 16

// PackVector3U48 packs x,y,z at 16 bits unsigned each into 6 contiguous
// bytes, little-endian per component (distinct from the big-endian bit
// stream PackVector3UXX uses — this format is always byte-aligned).
func PackVector3U48(v [3]float64, out []byte) {
	invariant.Check(len(out) >= 6, "bitpack.PackVector3U48", "out too short: %d", len(out))
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(PackU(v[i], 16)))
	}
}

// UnpackVector3U48 is the inverse of PackVector3U48.
func UnpackVector3U48(in []byte) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = UnpackU(uint32(binary.LittleEndian.Uint16(in[i*2:])), 16)
	}
	return out
}

// PackVector3F96 writes x,y,z as raw little-endian f32, the "full
// precision" storage every constant/raw fallback path uses.
func PackVector3F96(v [3]float32, out []byte) {
	invariant.Check(len(out) >= 12, "bitpack.PackVector3F96", "out too short: %d", len(out))
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v[i]))
	}
}

// UnpackVector3F96 is the inverse of PackVector3F96.
func UnpackVector3F96(in []byte) [3]float32 {
	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(in[i*4:]))
	}
	return out
}

func maskN(n uint) uint64 {
	return (uint64(1) << n) - 1
}

// PackVector3UXX packs three unsigned n-bit values (n <= MaxComponentBits)
// concatenated most-significant-first into a big-endian bit stream, written
// unaligned starting at bitOffset within data. data must have at least
// PadBytes of zero-filled slack past the nominal end of the stream, and the
// bits at [bitOffset, bitOffset+3n) must be zero before the call (true for
// a freshly allocated, sequentially-packed stream buffer).
func PackVector3UXX(n uint, v [3]uint32, data []byte, bitOffset int) {
	invariant.Check(n >= 1 && n <= MaxComponentBits, "bitpack.PackVector3UXX", "n=%d out of range", n)
	byteOffset := bitOffset / 8
	bitShift := uint(bitOffset % 8)
	invariant.Check(byteOffset+8 <= len(data), "bitpack.PackVector3UXX",
		"write at bit %d needs %d padding bytes, have %d", bitOffset, byteOffset+8, len(data))

	val := (uint64(v[0]&uint32(maskN(n))) << (2 * n)) |
		(uint64(v[1]&uint32(maskN(n))) << n) |
		uint64(v[2]&uint32(maskN(n)))

	totalBits := 3 * n
	window := binary.BigEndian.Uint64(data[byteOffset : byteOffset+8])
	placed := val << (64 - bitShift - totalBits)
	window |= placed
	binary.BigEndian.PutUint64(data[byteOffset:byteOffset+8], window)
}

// UnpackVector3UXXUnsafe is the mirror read of PackVector3UXX: one unaligned
// 64-bit big-endian gather, shift and mask, no branching on bitOffset. It
// is safe to call with bitOffset pointing at the final sample in a stream
// only because data is over-allocated by PadBytes (the caller's contract,
// not this function's).
func UnpackVector3UXXUnsafe(n uint, data []byte, bitOffset int) (x, y, z uint32) {
	byteOffset := bitOffset / 8
	bitShift := uint(bitOffset % 8)

	window := binary.BigEndian.Uint64(data[byteOffset : byteOffset+8])
	window <<= bitShift
	window >>= 64 - 3*n

	mask := uint32(maskN(n))
	x = uint32(window>>(2*n)) & mask
	y = uint32(window>>n) & mask
	z = uint32(window) & mask
	return
}
