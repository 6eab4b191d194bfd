// Package reflection implements the adaptive hybrid reflection core: tile
// importance classification, budgeted ray generation, hybrid tracing with a
// shadow-occlusion follow-up, and per-tile statistic aggregation.
//
// The execution model is data-parallel: one independent unit of work per
// ray, with no ordering guarantees and no communication between units except
// atomic accumulation on shared, flat buffers.
package reflection

// TileSize is the side length of a screen tile in texels. The tile grid
// dimensions are computed by ceiling division of the target resolution by
// TileSize, identically in the classifier, the allocator and the tracer.
const TileSize = 8

// TexelsPerTile is the number of texels covered by one tile. The per-tile
// written bitmask has exactly this many bits.
const TexelsPerTile = TileSize * TileSize

// Tile holds the per-tile statistics that persist across frames: a bitmask
// of texels that received a fresh ray this frame, the maximum specular
// ratio observed in the tile, and the sum of ray travel lengths in
// fixed-point units. Written and RayLengthSum are mutated through the
// Accumulator only; MaxSpecular is written by the classifier, which owns
// its tile exclusively during classification.
type Tile struct {
	Written      uint64  // Bitmask of texels written this frame
	RayLengthSum uint32  // Fixed-point sum of ray travel lengths
	MaxSpecular  float32 // Maximum specular ratio observed in the tile
}

// TileBuffer is the double-buffered per-tile statistics store. Cur
// accumulates the statistics of the frame being rendered; Prev holds the
// completed previous frame for the classifier to read. The host swaps the
// buffers at frame boundaries; nothing inside a frame may observe a
// partially accumulated Cur through Prev.
type TileBuffer struct {
	TilesWide int
	TilesHigh int
	Cur       []Tile
	Prev      []Tile
}

// TileGridDims returns the tile grid dimensions for a target resolution,
// using ceiling division so partial edge tiles are included.
func TileGridDims(width, height int) (int, int) {
	return (width + TileSize - 1) / TileSize, (height + TileSize - 1) / TileSize
}

// NewTileBuffer creates a tile buffer sized for the target resolution
func NewTileBuffer(width, height int) *TileBuffer {
	w, h := TileGridDims(width, height)
	return &TileBuffer{
		TilesWide: w,
		TilesHigh: h,
		Cur:       make([]Tile, w*h),
		Prev:      make([]Tile, w*h),
	}
}

// Count returns the number of tiles in the grid
func (tb *TileBuffer) Count() int {
	return tb.TilesWide * tb.TilesHigh
}

// Swap publishes the current frame's statistics as the previous frame and
// resets the accumulation buffer. The host must call this exactly once per
// frame boundary, never concurrently with accumulation.
func (tb *TileBuffer) Swap() {
	tb.Cur, tb.Prev = tb.Prev, tb.Cur
	clear(tb.Cur)
}

// TileIndexFor maps a texel coordinate to its owning tile index using
// row-major tile ordering: (y/TileSize)*tilesWide + (x/TileSize).
func TileIndexFor(x, y, tilesWide int) int {
	return (y/TileSize)*tilesWide + (x / TileSize)
}

// TexelBit returns the bit index of a texel within its tile's written mask
func TexelBit(x, y int) uint {
	return uint((y%TileSize)*TileSize + (x % TileSize))
}

// PackTexel packs a texel coordinate into one 32-bit value with the row in
// the high 16 bits and the column in the low 16 bits. Each component must
// be below 65536.
func PackTexel(x, y uint32) uint32 {
	return y<<16 | (x & 0xFFFF)
}

// UnpackTexel splits a packed texel coordinate back into (x, y)
func UnpackTexel(packed uint32) (uint32, uint32) {
	return packed & 0xFFFF, packed >> 16
}
