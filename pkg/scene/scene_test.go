package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-hybrid-reflections/pkg/core"
	"github.com/df07/go-hybrid-reflections/pkg/geometry"
	"github.com/df07/go-hybrid-reflections/pkg/lights"
	"github.com/df07/go-hybrid-reflections/pkg/material"
)

func testScene(width, height int) *Scene {
	camera := NewCamera(CameraConfig{
		Eye:    core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
	}, width, height)
	light := lights.NewGlobal(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1), 1)
	return NewScene(camera, light)
}

// TestCameraRayForTexel tests that the center texel's ray points from the
// eye toward the look-at target.
func TestCameraRayForTexel(t *testing.T) {
	sc := testScene(100, 100)
	ray := sc.Camera.RayForTexel(50, 50)

	if ray.Origin != sc.Camera.Eye() {
		t.Errorf("ray origin = %v, want the eye %v", ray.Origin, sc.Camera.Eye())
	}
	if math32.Abs(ray.Direction.Length()-1) > 1e-4 {
		t.Errorf("direction length = %v, want 1", ray.Direction.Length())
	}

	// Looking down -z; the half-texel offset keeps it near, not exactly on,
	// the axis
	want := core.NewVec3(0, 0, -1)
	if ray.Direction.Dot(want) < 0.999 {
		t.Errorf("center ray direction = %v, want close to %v", ray.Direction, want)
	}
}

// TestCameraRaySpread tests that corner rays diverge from the center ray
func TestCameraRaySpread(t *testing.T) {
	sc := testScene(100, 100)
	center := sc.Camera.RayForTexel(50, 50)
	corner := sc.Camera.RayForTexel(0, 0)

	if corner.Direction.Dot(center.Direction) > 0.999 {
		t.Error("Expected the corner ray to diverge from the center ray")
	}
	// Top-left texel looks up and to the left
	if corner.Direction.X >= 0 || corner.Direction.Y <= 0 {
		t.Errorf("corner ray direction = %v, want -x +y", corner.Direction)
	}
}

// TestSceneIntersectAndOcclusion tests the world queries against a single
// blocking sphere.
func TestSceneIntersectAndOcclusion(t *testing.T) {
	sc := testScene(64, 64)
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMirror(core.NewVec3(1, 1, 1))))

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit, found := sc.Intersect(ray, 0.001, 100)
	if !found {
		t.Fatal("Expected an intersection")
	}
	if math32.Abs(hit.T-4) > 1e-4 {
		t.Errorf("hit at t = %v, want 4", hit.T)
	}

	if !sc.Occluded(ray, 0.001, 100) {
		t.Error("Expected the ray to be occluded")
	}
	if sc.Occluded(ray, 0.001, 3) {
		t.Error("Expected no occlusion before the sphere")
	}
	up := core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, 1, 0))
	if sc.Occluded(up, 0.001, 100) {
		t.Error("Expected no occlusion above the scene")
	}
}

// TestSceneEnvironmentGradient tests the vertical miss gradient
func TestSceneEnvironmentGradient(t *testing.T) {
	sc := testScene(64, 64)

	top := sc.Environment(core.NewVec3(0, 1, 0))
	bottom := sc.Environment(core.NewVec3(0, -1, 0))

	if top != sc.TopColor {
		t.Errorf("up radiance = %v, want %v", top, sc.TopColor)
	}
	if bottom != sc.BottomColor {
		t.Errorf("down radiance = %v, want %v", bottom, sc.BottomColor)
	}

	mid := sc.Environment(core.NewVec3(1, 0, 0))
	want := sc.TopColor.Add(sc.BottomColor).Multiply(0.5)
	if mid.Subtract(want).Length() > 1e-4 {
		t.Errorf("horizon radiance = %v, want %v", mid, want)
	}
}

// TestRenderGeometry tests the geometry pass output: valid surface texels
// where geometry is visible and invalid texels for the sky.
func TestRenderGeometry(t *testing.T) {
	sc := testScene(64, 64)
	mat := material.NewStandard(core.NewVec3(0.5, 0.5, 0.5), 0.7, 0.25)
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))

	surf := sc.RenderGeometry(64, 64)

	if surf.Eye != sc.Camera.Eye() {
		t.Errorf("surface eye = %v, want %v", surf.Eye, sc.Camera.Eye())
	}

	center := surf.At(32, 32)
	if !center.Valid {
		t.Fatal("Expected valid geometry at the image center")
	}
	if center.Specular != 0.7 || center.Roughness != 0.25 {
		t.Errorf("center texel attributes = %+v", center)
	}
	// Front of the sphere faces the camera
	if center.Normal.Z <= 0 {
		t.Errorf("center normal = %v, want +z toward the camera", center.Normal)
	}
	if math32.Abs(center.Position.Z-1) > 0.05 {
		t.Errorf("center position = %v, want z near 1", center.Position)
	}

	if corner := surf.At(0, 0); corner.Valid {
		t.Error("Expected the corner texel to miss the sphere")
	}
}

// TestDefaultScenes tests that the bundled scenes build and contain
// reflective geometry.
func TestDefaultScenes(t *testing.T) {
	for _, build := range []func(int, int) *Scene{NewDefaultScene, NewCornellScene} {
		sc := build(64, 64)
		if len(sc.Shapes) == 0 {
			t.Fatal("Expected shapes in the bundled scene")
		}

		surf := sc.RenderGeometry(64, 64)
		reflective := 0
		for i := range surf.Texels {
			if surf.Texels[i].Valid && surf.Texels[i].Specular > 0 {
				reflective++
			}
		}
		if reflective == 0 {
			t.Error("Expected reflective texels in the bundled scene")
		}
	}
}
