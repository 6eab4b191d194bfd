package core

// Material describes how a surface responds to light at a hit point.
type Material interface {
	// EvaluateBRDF computes the material response for a view direction,
	// a direction toward the light, and the surface normal. The second
	// return value is the validity channel: values below the tracer's
	// validity epsilon mark the response as "no valid surface response"
	// rather than a legitimately black surface.
	EvaluateBRDF(view, light, normal Vec3) (Vec3, float32)

	// Emit returns the emissive contribution of the surface
	Emit() Vec3

	// SpecularRatio returns the fraction of incoming light reflected
	// specularly (the kS signal consumed by tile classification)
	SpecularRatio() float32

	// Roughness returns the microfacet roughness in [0, 1]
	Roughness() float32
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection
	T         float32  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Shape is anything a ray can intersect
type Shape interface {
	Hit(ray Ray, tMin, tMax float32) (*HitRecord, bool)
	BoundingBox() AABB
}
