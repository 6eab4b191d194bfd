package reflection

import "sync/atomic"

// Accumulator performs order-independent updates to the shared tile
// statistics buffer. All updates are atomic adds or ors, so the final
// values are identical under any interleaving of the contributing rays.
type Accumulator struct {
	tiles *TileBuffer
}

// NewAccumulator creates an accumulator over the given tile buffer
func NewAccumulator(tiles *TileBuffer) *Accumulator {
	return &Accumulator{tiles: tiles}
}

// MarkWritten records that the texel at the given bit received a fresh ray
// this frame. Safe for concurrent use.
func (a *Accumulator) MarkWritten(tileID int, bit uint) {
	atomic.OrUint64(&a.tiles.Cur[tileID].Written, 1<<(bit%TexelsPerTile))
}

// AddRayLength adds a fixed-point ray travel length to the owning tile's
// sum. Addition is commutative and associative, so the result is
// independent of dispatch order. Safe for concurrent use.
func (a *Accumulator) AddRayLength(tileID int, units uint32) {
	atomic.AddUint32(&a.tiles.Cur[tileID].RayLengthSum, units)
}

// WrittenMask returns the current frame's written bitmask for a tile
func (a *Accumulator) WrittenMask(tileID int) uint64 {
	return atomic.LoadUint64(&a.tiles.Cur[tileID].Written)
}

// RayLengthSum returns the current frame's ray length sum for a tile
func (a *Accumulator) RayLengthSum(tileID int) uint32 {
	return atomic.LoadUint32(&a.tiles.Cur[tileID].RayLengthSum)
}

// rayLengthScale converts world-space travel distance to fixed-point
// integer units for atomic summation (1000 units per world unit). The
// value is fixed behavior, not a tunable.
const rayLengthScale = 1000.0

// FixedPointLength converts a world-space distance to fixed-point units,
// truncating toward zero. Negative or non-finite distances yield zero.
func FixedPointLength(distance float32) uint32 {
	scaled := distance * rayLengthScale
	if !(scaled > 0) { // catches negatives and NaN
		return 0
	}
	if scaled >= 1<<32-1 {
		return 1<<32 - 1
	}
	return uint32(scaled)
}
