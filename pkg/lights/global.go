// Package lights defines the global lighting data the reflection core
// consumes. The core only ever sees one dominant directional light; light
// binning and local light evaluation happen in other renderer stages.
package lights

import "github.com/df07/go-hybrid-reflections/pkg/core"

// Global describes the dominant directional light plus ambient term.
type Global struct {
	Direction core.Vec3 // Direction the light travels (toward the scene)
	Color     core.Vec3 // RGB color
	Intensity float32   // Scalar multiplier
	Ambient   core.Vec3 // Flat ambient radiance
}

// NewGlobal creates a global light traveling in the given direction
func NewGlobal(direction, color core.Vec3, intensity float32) Global {
	return Global{
		Direction: direction.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

// DirectionToLight returns the negated, normalized light direction: the
// direction occlusion rays travel from a hit point toward the light.
func (g Global) DirectionToLight() core.Vec3 {
	return g.Direction.Normalize().Negate()
}

// Radiance returns the light color scaled by its intensity
func (g Global) Radiance() core.Vec3 {
	return g.Color.Multiply(g.Intensity)
}
