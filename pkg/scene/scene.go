// Package scene provides the collaborators the reflection core queries: a
// shape container with an acceleration structure, the global light, the
// camera, and the geometry pass that fills the per-texel surface buffer.
package scene

import (
	"github.com/df07/go-hybrid-reflections/pkg/core"
	"github.com/df07/go-hybrid-reflections/pkg/lights"
)

// Scene holds the shapes, camera and lighting for rendering. It satisfies
// the reflection core's World interface.
type Scene struct {
	Shapes []core.Shape
	Light  lights.Global
	Camera *Camera

	// Environment gradient colors returned for rays that leave the scene
	TopColor    core.Vec3
	BottomColor core.Vec3

	bvh *core.BVH
}

// NewScene creates an empty scene with the given camera and light
func NewScene(camera *Camera, light lights.Global) *Scene {
	return &Scene{
		Camera:      camera,
		Light:       light,
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// AddShape adds shapes to the scene. Invalidates any built BVH.
func (s *Scene) AddShape(shapes ...core.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
	s.bvh = nil
}

// BVH returns the scene's acceleration structure, building it on first use
func (s *Scene) BVH() *core.BVH {
	if s.bvh == nil {
		s.bvh = core.NewBVH(s.Shapes)
	}
	return s.bvh
}

// Intersect returns the closest hit along the ray, if any
func (s *Scene) Intersect(ray core.Ray, tMin, tMax float32) (*core.HitRecord, bool) {
	return s.BVH().Hit(ray, tMin, tMax)
}

// Occluded reports whether anything blocks the ray within [tMin, tMax].
// Unlike Intersect it stops at the first hit found.
func (s *Scene) Occluded(ray core.Ray, tMin, tMax float32) bool {
	return s.BVH().HitAny(ray, tMin, tMax)
}

// Environment returns the radiance of a ray that left the scene: a
// vertical gradient between the bottom and top colors.
func (s *Scene) Environment(dir core.Vec3) core.Vec3 {
	t := 0.5 * (dir.Normalize().Y + 1)
	return s.BottomColor.Multiply(1 - t).Add(s.TopColor.Multiply(t))
}
