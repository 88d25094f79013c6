package bitpack

import (
	"math"
	"testing"
)

func TestPackUnpackURoundTrip(t *testing.T) {
	xs := []float64{0, 0.001, 0.25, 0.5, 0.75, 0.999, 1}
	for n := uint(1); n <= 19; n++ {
		bound := math.Pow(2, -float64(n))
		for _, x := range xs {
			v := PackU(x, n)
			got := UnpackU(v, n)
			if diff := math.Abs(got - x); diff > bound+1e-9 {
				t.Errorf("n=%d x=%v: unpack(pack(x))=%v diff=%v exceeds bound %v", n, x, got, diff, bound)
			}
		}
	}
}

func TestPackUnpackSRoundTrip(t *testing.T) {
	xs := []float64{-1, -0.5, 0, 0.5, 1}
	for n := uint(2); n <= 19; n++ {
		bound := math.Pow(2, -float64(n)) * 2
		for _, x := range xs {
			got := UnpackS(PackS(x, n), n)
			if diff := math.Abs(got - x); diff > bound+1e-9 {
				t.Errorf("n=%d x=%v: got %v diff %v exceeds bound %v", n, x, got, diff, bound)
			}
		}
	}
}

func TestPackUUsesSymmetricRounding(t *testing.T) {
	// 1 bit: [0,1] maps to {0,1} with the midpoint 0.5 rounding away from
	// zero, i.e. up, never truncating toward even.
	if got := PackU(0.5, 1); got != 1 {
		t.Errorf("PackU(0.5, 1) = %d, want 1 (round half away from zero)", got)
	}
}

func TestPackVector3UXXRoundTrip(t *testing.T) {
	for n := uint(1); n <= 19; n++ {
		for bitOffset := 0; bitOffset <= 63; bitOffset++ {
			buf := make([]byte, 16+PadBytes)
			v := [3]uint32{
				uint32(1) & uint32(maskN(n)),
				uint32(maskN(n) / 2),
				uint32(maskN(n)),
			}
			PackVector3UXX(n, v, buf, bitOffset)
			x, y, z := UnpackVector3UXXUnsafe(n, buf, bitOffset)
			if x != v[0] || y != v[1] || z != v[2] {
				t.Fatalf("n=%d bitOffset=%d: got (%d,%d,%d) want (%d,%d,%d)", n, bitOffset, x, y, z, v[0], v[1], v[2])
			}
		}
	}
}

func TestVector3U48RoundTrip(t *testing.T) {
	v := [3]float64{0.1, 0.5, 0.9}
	buf := make([]byte, 6)
	PackVector3U48(v, buf)
	got := UnpackVector3U48(buf)
	for i := range v {
		if math.Abs(got[i]-v[i]) > 1.0/65535.0+1e-9 {
			t.Errorf("component %d: got %v want %v", i, got[i], v[i])
		}
	}
}

func TestVector3F96RoundTrip(t *testing.T) {
	v := [3]float32{1.5, -2.25, 100.125}
	buf := make([]byte, 12)
	PackVector3F96(v, buf)
	got := UnpackVector3F96(buf)
	if got != v {
		t.Errorf("got %v want %v", got, v)
	}
}

func TestScalarUnsigned24RoundTrip(t *testing.T) {
	xs := []float64{0, 0.1, 0.9999, 1}
	for _, x := range xs {
		got := UnpackScalarUnsigned24(PackScalarUnsigned24(x))
		if diff := math.Abs(got - x); diff > 1e-6 {
			t.Errorf("x=%v got=%v diff=%v", x, got, diff)
		}
	}
}
