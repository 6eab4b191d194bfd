package scene

import (
	"github.com/df07/go-hybrid-reflections/pkg/core"
	"github.com/df07/go-hybrid-reflections/pkg/geometry"
	"github.com/df07/go-hybrid-reflections/pkg/lights"
	"github.com/df07/go-hybrid-reflections/pkg/material"
)

// NewDefaultScene creates a demo scene: a glossy ground plane with a mirror
// sphere, a rough glossy sphere, a diffuse sphere and an emissive sphere
// under a warm directional light.
func NewDefaultScene(width, height int) *Scene {
	camera := NewCamera(CameraConfig{
		Eye:    core.NewVec3(0, 1.2, 4),
		LookAt: core.NewVec3(0, 0.6, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50,
		Near:   0.1,
		Far:    200,
	}, width, height)

	light := lights.NewGlobal(
		core.NewVec3(-0.4, -1, -0.25),
		core.NewVec3(1.0, 0.96, 0.9),
		3.0,
	)
	light.Ambient = core.NewVec3(0.03, 0.03, 0.04)

	s := NewScene(camera, light)

	ground := material.NewStandard(core.NewVec3(0.55, 0.55, 0.6), 0.4, 0.15)
	mirror := material.NewMirror(core.NewVec3(0.95, 0.95, 0.95))
	glossy := material.NewStandard(core.NewVec3(0.7, 0.25, 0.2), 0.6, 0.35)
	diffuse := material.NewStandard(core.NewVec3(0.2, 0.45, 0.8), 0, 0.9)
	emissive := material.NewEmissive(core.NewVec3(4, 3.6, 3.0))

	s.AddShape(
		geometry.NewQuad(
			core.NewVec3(-20, 0, -20),
			core.NewVec3(40, 0, 0),
			core.NewVec3(0, 0, 40),
			ground,
		),
		geometry.NewSphere(core.NewVec3(-1.3, 0.6, 0), 0.6, mirror),
		geometry.NewSphere(core.NewVec3(0, 0.6, -0.4), 0.6, glossy),
		geometry.NewSphere(core.NewVec3(1.3, 0.6, 0), 0.6, diffuse),
		geometry.NewSphere(core.NewVec3(0.4, 0.25, 1.2), 0.25, emissive),
	)

	return s
}

// NewCornellScene creates an enclosed cornell-style box with colored walls,
// a mirror sphere and an emissive ceiling panel. Useful for exercising
// occlusion: most of the floor sits in the panel's shadow relative to the
// directional light shining through the open front.
func NewCornellScene(width, height int) *Scene {
	camera := NewCamera(CameraConfig{
		Eye:    core.NewVec3(0, 1, 3.4),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
		Near:   0.1,
		Far:    50,
	}, width, height)

	light := lights.NewGlobal(
		core.NewVec3(0, -0.8, -0.6),
		core.NewVec3(1, 1, 1),
		2.0,
	)
	light.Ambient = core.NewVec3(0.02, 0.02, 0.02)

	s := NewScene(camera, light)
	s.TopColor = core.NewVec3(0.05, 0.05, 0.05)
	s.BottomColor = core.NewVec3(0.05, 0.05, 0.05)

	white := material.NewStandard(core.NewVec3(0.73, 0.73, 0.73), 0.1, 0.6)
	red := material.NewStandard(core.NewVec3(0.65, 0.05, 0.05), 0.1, 0.6)
	green := material.NewStandard(core.NewVec3(0.12, 0.45, 0.15), 0.1, 0.6)
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	panel := material.NewEmissive(core.NewVec3(8, 8, 8))

	s.AddShape(
		// Floor, ceiling, back wall
		geometry.NewQuad(core.NewVec3(-1, 0, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 3), white),
		geometry.NewQuad(core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 3), white),
		geometry.NewQuad(core.NewVec3(-1, 0, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), white),
		// Side walls
		geometry.NewQuad(core.NewVec3(-1, 0, -1), core.NewVec3(0, 0, 3), core.NewVec3(0, 2, 0), red),
		geometry.NewQuad(core.NewVec3(1, 0, -1), core.NewVec3(0, 0, 3), core.NewVec3(0, 2, 0), green),
		// Ceiling panel and mirror sphere
		geometry.NewQuad(core.NewVec3(-0.4, 1.99, -0.2), core.NewVec3(0.8, 0, 0), core.NewVec3(0, 0, 0.8), panel),
		geometry.NewSphere(core.NewVec3(-0.35, 0.45, 0.3), 0.45, mirror),
		geometry.NewSphere(core.NewVec3(0.45, 0.3, 0.8), 0.3, white),
	)

	return s
}
