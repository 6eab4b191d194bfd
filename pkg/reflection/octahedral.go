package reflection

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-hybrid-reflections/pkg/core"
)

// Octahedral direction encoding: a unit vector is projected onto the
// octahedron |x|+|y|+|z|=1, the lower hemisphere is folded over, and the
// result is quantized to two 16-bit channels. Decode(Encode(d)) stays
// within a small bounded error of d for all unit vectors.

// EncodeDirection packs a unit direction into a 32-bit octahedral encoding
// with the u channel in the low 16 bits and the v channel in the high 16
// bits. The input must be a finite unit vector.
func EncodeDirection(d core.Vec3) uint32 {
	sum := math32.Abs(d.X) + math32.Abs(d.Y) + math32.Abs(d.Z)
	if sum == 0 || math32.IsNaN(sum) || math32.IsInf(sum, 0) {
		// Degenerate input: encode as +Z so decode never yields garbage
		d = core.NewVec3(0, 0, 1)
		sum = 1
	}

	u := d.X / sum
	v := d.Y / sum
	if d.Z < 0 {
		// Fold the lower hemisphere over the diagonals
		u, v = (1-math32.Abs(v))*signNotZero(u), (1-math32.Abs(u))*signNotZero(v)
	}

	return uint32(quantizeSnorm(u)) | uint32(quantizeSnorm(v))<<16
}

// DecodeDirection unpacks a 32-bit octahedral encoding back into a unit
// direction.
func DecodeDirection(packed uint32) core.Vec3 {
	u := dequantizeSnorm(uint16(packed & 0xFFFF))
	v := dequantizeSnorm(uint16(packed >> 16))

	z := 1 - math32.Abs(u) - math32.Abs(v)
	if z < 0 {
		u, v = (1-math32.Abs(v))*signNotZero(u), (1-math32.Abs(u))*signNotZero(v)
	}

	return core.NewVec3(u, v, z).Normalize()
}

// quantizeSnorm maps [-1, 1] to a 16-bit unsigned integer
func quantizeSnorm(v float32) uint16 {
	c := max(-1, min(1, v))
	return uint16(math32.Round((c*0.5 + 0.5) * 65535))
}

// dequantizeSnorm maps a 16-bit unsigned integer back to [-1, 1]
func dequantizeSnorm(q uint16) float32 {
	return float32(q)/65535*2 - 1
}

// signNotZero returns ±1, treating zero as positive
func signNotZero(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
