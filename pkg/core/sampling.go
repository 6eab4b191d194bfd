package core

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// RandomUnitVector returns a uniformly distributed unit vector
func RandomUnitVector(random *rand.Rand) Vec3 {
	z := 1 - 2*random.Float32()
	r := math32.Sqrt(max(0, 1-z*z))
	phi := 2 * math32.Pi * random.Float32()
	return Vec3{
		X: r * math32.Cos(phi),
		Y: r * math32.Sin(phi),
		Z: z,
	}
}

// RandomInUnitSphere returns a uniformly distributed point inside the unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	// Cube-root radius scaling of a unit direction gives uniform density
	r := math32.Cbrt(random.Float32())
	return RandomUnitVector(random).Multiply(r)
}
