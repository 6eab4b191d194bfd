package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-hybrid-reflections/pkg/core"
)

// Quad represents a parallelogram defined by a corner point and two edge vectors
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Material core.Material

	normal core.Vec3 // Precomputed unit normal
	d      float32   // Plane equation constant
	w      core.Vec3 // Precomputed vector for barycentric computation
}

// NewQuad creates a new quad from a corner and two edge vectors
func NewQuad(corner, u, v core.Vec3, material core.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()
	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: material,
		normal:   normal,
		d:        normal.Dot(corner),
		w:        n.Multiply(1.0 / n.Dot(n)),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float32) (*core.HitRecord, bool) {
	denom := q.normal.Dot(ray.Direction)

	// Ray parallel to the plane
	if math32.Abs(denom) < 1e-8 {
		return nil, false
	}

	t := (q.d - q.normal.Dot(ray.Origin)) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	// Check the plane hit point lies within the parallelogram
	point := ray.At(t)
	planar := point.Subtract(q.Corner)
	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    point,
		Material: q.Material,
	}
	hitRecord.SetFaceNormal(ray, q.normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this quad
func (q *Quad) BoundingBox() core.AABB {
	p0 := q.Corner
	p1 := q.Corner.Add(q.U)
	p2 := q.Corner.Add(q.V)
	p3 := q.Corner.Add(q.U).Add(q.V)
	// Pad so axis-aligned quads still have non-zero extent
	return core.NewAABBFromPoints(p0, p1, p2, p3).Expand(1e-4)
}
