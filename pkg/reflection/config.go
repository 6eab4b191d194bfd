package reflection

// DefaultRayBudget is the per-frame ray budget the renderer provisions
// when the host does not configure one.
const DefaultRayBudget = 700_000

// FrameConfig is the per-frame configuration surface supplied by the host,
// mirroring the push-constant blocks of the GPU passes this core models.
type FrameConfig struct {
	CanvasWidth  int
	CanvasHeight int
	TargetWidth  int
	TargetHeight int

	InvTargetWidth  float32
	InvTargetHeight float32

	SampleIndex  int     // Which multisample position this frame samples
	SampleCount  int     // Total multisample positions
	MaxDistance  float32 // Maximum primary trace distance
	FrameCounter uint32  // Wrapping frame counter for temporal jitter
	RayBudget    int     // Maximum rays this frame may emit
}

// EffectiveBudget returns the ray buffer capacity provisioned for a target
// resolution: at least one slot per tile, never below the configured
// budget, rounded up to the next multiple of TexelsPerTile.
func EffectiveBudget(budget, width, height int) int {
	w, h := TileGridDims(width, height)
	n := max(budget, w*h)
	if rem := n % TexelsPerTile; rem != 0 {
		n += TexelsPerTile - rem
	}
	return n
}
