package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-hybrid-reflections/pkg/core"
)

// Triangle represents a single triangle with optional per-vertex normals
type Triangle struct {
	V0, V1, V2 core.Vec3 // Vertex positions
	N0, N1, N2 core.Vec3 // Per-vertex normals (zero to use the face normal)
	Material   core.Material

	faceNormal core.Vec3 // Precomputed geometric normal
	smooth     bool      // Whether vertex normals are interpolated
}

// NewTriangle creates a flat-shaded triangle using the geometric face normal
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	return &Triangle{
		V0:         v0,
		V1:         v1,
		V2:         v2,
		Material:   material,
		faceNormal: v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
	}
}

// NewSmoothTriangle creates a triangle with interpolated vertex normals
func NewSmoothTriangle(v0, v1, v2, n0, n1, n2 core.Vec3, material core.Material) *Triangle {
	return &Triangle{
		V0:         v0,
		V1:         v1,
		V2:         v2,
		N0:         n0,
		N1:         n1,
		N2:         n2,
		Material:   material,
		faceNormal: v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
		smooth:     true,
	}
}

// Hit tests ray-triangle intersection using the Möller-Trumbore algorithm
func (tr *Triangle) Hit(ray core.Ray, tMin, tMax float32) (*core.HitRecord, bool) {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray parallel to the triangle plane
	if math32.Abs(a) < 1e-8 {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(tr.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	t := f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: tr.Material,
	}

	normal := tr.faceNormal
	if tr.smooth {
		// Barycentric interpolation of vertex normals
		w := 1 - u - v
		normal = tr.N0.Multiply(w).Add(tr.N1.Multiply(u)).Add(tr.N2.Multiply(v)).Normalize()
		if normal.NearZero() {
			normal = tr.faceNormal
		}
	}
	hitRecord.SetFaceNormal(ray, normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (tr *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(tr.V0, tr.V1, tr.V2).Expand(1e-4)
}
