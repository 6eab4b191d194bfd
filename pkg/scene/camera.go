package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-hybrid-reflections/pkg/core"
)

// CameraConfig holds camera parameters
type CameraConfig struct {
	Eye    core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float32   // Vertical field of view in degrees
	Near   float32   // Near clip distance
	Far    float32   // Far clip distance
}

// Camera provides the view/projection data the geometry pass consumes and
// generates per-texel rays by unprojection.
type Camera struct {
	cfg         CameraConfig
	width       int
	height      int
	viewProj    mgl32.Mat4
	invViewProj mgl32.Mat4
}

// NewCamera creates a camera for the given target resolution
func NewCamera(cfg CameraConfig, width, height int) *Camera {
	if cfg.Near <= 0 {
		cfg.Near = 0.1
	}
	if cfg.Far <= cfg.Near {
		cfg.Far = 1000
	}

	aspect := float32(width) / float32(height)
	view := mgl32.LookAtV(toMgl(cfg.Eye), toMgl(cfg.LookAt), toMgl(cfg.Up))
	proj := mgl32.Perspective(mgl32.DegToRad(cfg.VFov), aspect, cfg.Near, cfg.Far)
	viewProj := proj.Mul4(view)

	return &Camera{
		cfg:         cfg,
		width:       width,
		height:      height,
		viewProj:    viewProj,
		invViewProj: viewProj.Inv(),
	}
}

// Eye returns the camera position
func (c *Camera) Eye() core.Vec3 {
	return c.cfg.Eye
}

// Far returns the far clip distance
func (c *Camera) Far() float32 {
	return c.cfg.Far
}

// ViewProjection returns the combined view-projection matrix
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.viewProj
}

// RayForTexel returns the world-space ray through the center of a texel
func (c *Camera) RayForTexel(x, y int) core.Ray {
	ndcX := 2*(float32(x)+0.5)/float32(c.width) - 1
	ndcY := 1 - 2*(float32(y)+0.5)/float32(c.height)

	near := c.unproject(ndcX, ndcY, -1)
	far := c.unproject(ndcX, ndcY, 1)

	return core.NewRay(c.cfg.Eye, far.Subtract(near).Normalize())
}

// unproject maps an NDC point back to world space
func (c *Camera) unproject(x, y, z float32) core.Vec3 {
	v := c.invViewProj.Mul4x1(mgl32.Vec4{x, y, z, 1})
	return core.NewVec3(v.X()/v.W(), v.Y()/v.W(), v.Z()/v.W())
}

// toMgl converts a core vector to an mgl32 vector
func toMgl(v core.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
