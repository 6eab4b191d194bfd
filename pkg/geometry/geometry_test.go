package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-hybrid-reflections/pkg/core"
	"github.com/df07/go-hybrid-reflections/pkg/material"
)

func testMaterial() core.Material {
	return material.NewStandard(core.NewVec3(0.5, 0.5, 0.5), 0.3, 0.4)
}

// TestSphereHit tests ray-sphere intersection
func TestSphereHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, testMaterial())

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, found := sphere.Hit(ray, 0.001, 100)
	if !found {
		t.Fatal("Expected a hit")
	}
	if math32.Abs(hit.T-4) > 1e-4 {
		t.Errorf("hit at t = %v, want 4", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-4 {
		t.Errorf("normal = %v, want (0, 0, 1)", hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected a front-face hit from outside the sphere")
	}

	// Ray pointing away
	miss := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if _, found := sphere.Hit(miss, 0.001, 100); found {
		t.Error("Expected a miss for a ray pointing away")
	}
}

// TestSphereInsideHit tests the normal flip when hit from inside
func TestSphereInsideHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2, testMaterial())

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, found := sphere.Hit(ray, 0.001, 100)
	if !found {
		t.Fatal("Expected a hit from inside")
	}
	if hit.FrontFace {
		t.Error("Expected a back-face hit from inside the sphere")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-4 {
		t.Errorf("inside normal = %v, want flipped toward the ray origin", hit.Normal)
	}
}

// TestQuadHit tests parallelogram intersection bounds
func TestQuadHit(t *testing.T) {
	quad := NewQuad(
		core.NewVec3(-1, 0, -1),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 0, 2),
		testMaterial(),
	)

	// Straight down onto the middle
	inside := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))
	hit, found := quad.Hit(inside, 0.001, 100)
	if !found {
		t.Fatal("Expected a hit inside the quad")
	}
	if math32.Abs(hit.T-5) > 1e-4 {
		t.Errorf("hit at t = %v, want 5", hit.T)
	}

	// Just past the edge
	outside := core.NewRay(core.NewVec3(1.01, 5, 0), core.NewVec3(0, -1, 0))
	if _, found := quad.Hit(outside, 0.001, 100); found {
		t.Error("Expected a miss outside the quad bounds")
	}

	// Parallel to the plane
	parallel := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(1, 0, 0))
	if _, found := quad.Hit(parallel, 0.001, 100); found {
		t.Error("Expected a miss for a parallel ray")
	}
}

// TestTriangleHit tests Möller-Trumbore intersection
func TestTriangleHit(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, 0, -3),
		core.NewVec3(1, 0, -3),
		core.NewVec3(0, 2, -3),
		testMaterial(),
	)

	hit, found := tri.Hit(core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !found {
		t.Fatal("Expected a hit inside the triangle")
	}
	if math32.Abs(hit.T-3) > 1e-4 {
		t.Errorf("hit at t = %v, want 3", hit.T)
	}

	// Outside the triangle, still on its plane
	if _, found := tri.Hit(core.NewRay(core.NewVec3(2, 0.5, 0), core.NewVec3(0, 0, -1)), 0.001, 100); found {
		t.Error("Expected a miss outside the triangle")
	}
}

// TestSmoothTriangleNormals tests barycentric normal interpolation
func TestSmoothTriangleNormals(t *testing.T) {
	// Vertex normals tilt outward along x
	tri := NewSmoothTriangle(
		core.NewVec3(-1, -1, -3),
		core.NewVec3(1, -1, -3),
		core.NewVec3(0, 1, -3),
		core.NewVec3(-1, 0, 1).Normalize(),
		core.NewVec3(1, 0, 1).Normalize(),
		core.NewVec3(0, 0, 1),
		testMaterial(),
	)

	// Near the right vertex the interpolated normal leans right
	hit, found := tri.Hit(core.NewRay(core.NewVec3(0.8, -0.9, 0), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !found {
		t.Fatal("Expected a hit")
	}
	if hit.Normal.X <= 0 {
		t.Errorf("interpolated normal = %v, want a positive x lean", hit.Normal)
	}
	if math32.Abs(hit.Normal.Length()-1) > 1e-4 {
		t.Errorf("interpolated normal length = %v, want 1", hit.Normal.Length())
	}

	// A flat triangle with the same vertices keeps the face normal
	flat := NewTriangle(tri.V0, tri.V1, tri.V2, testMaterial())
	flatHit, _ := flat.Hit(core.NewRay(core.NewVec3(0.8, -0.9, 0), core.NewVec3(0, 0, -1)), 0.001, 100)
	if flatHit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-4 {
		t.Errorf("flat normal = %v, want (0, 0, 1)", flatHit.Normal)
	}
}

// TestBoundingBoxes tests that shapes report boxes containing themselves
func TestBoundingBoxes(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2, testMaterial())
	box := sphere.BoundingBox()
	if box.Min != core.NewVec3(-1, 0, 1) || box.Max != core.NewVec3(3, 4, 5) {
		t.Errorf("sphere box = %+v", box)
	}

	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), testMaterial())
	qbox := quad.BoundingBox()
	if !qbox.IsValid() {
		t.Error("quad box invalid")
	}
	if qbox.Size().Y <= 0 {
		t.Error("Expected padded extent for an axis-aligned quad")
	}
}
