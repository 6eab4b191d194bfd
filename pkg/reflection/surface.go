package reflection

import "github.com/df07/go-hybrid-reflections/pkg/core"

// SurfaceTexel is one record of the geometry pass output: the world-space
// surface point visible through a texel and its reflection-relevant
// attributes. Invalid texels (sky, no geometry) have Valid == false and
// are never candidates for ray allocation.
type SurfaceTexel struct {
	Position  core.Vec3 // World-space surface point
	Normal    core.Vec3 // Unit surface normal
	Specular  float32   // Specular ratio (kS) of the surface
	Roughness float32   // Microfacet roughness in [0, 1]
	Valid     bool      // Whether geometry is visible through this texel
}

// SurfaceBuffer is the per-texel surface data an external geometry pass
// supplies for one frame. The reflection core only reads it.
type SurfaceBuffer struct {
	Width  int
	Height int
	Eye    core.Vec3 // Camera position the buffer was rendered from
	Texels []SurfaceTexel
}

// NewSurfaceBuffer creates an empty surface buffer for the target resolution
func NewSurfaceBuffer(width, height int) *SurfaceBuffer {
	return &SurfaceBuffer{
		Width:  width,
		Height: height,
		Texels: make([]SurfaceTexel, width*height),
	}
}

// At returns the surface record for a texel coordinate
func (sb *SurfaceBuffer) At(x, y int) *SurfaceTexel {
	return &sb.Texels[y*sb.Width+x]
}
