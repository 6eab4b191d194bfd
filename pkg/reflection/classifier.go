package reflection

// TileScore is the classifier's verdict for one tile: an importance score
// the allocator distributes the ray budget by, and the tile's demand (the
// number of texels that want a fresh ray this frame).
type TileScore struct {
	TileID int
	Score  float32
	Demand int
}

// Classifier scores each tile by expected reflection cost and importance.
// Classification is deterministic and has no cross-tile interaction: each
// tile's score depends only on its own surface texels and its own
// previous-frame statistics.
type Classifier struct {
	tiles *TileBuffer
}

// NewClassifier creates a classifier over the given tile buffer
func NewClassifier(tiles *TileBuffer) *Classifier {
	return &Classifier{tiles: tiles}
}

// Classify computes a score for every tile in the grid from the surface
// buffer and the previous frame's tile statistics. The returned slice is
// ordered by ascending tile index; tiles without reflective texels score
// zero and demand zero.
//
// The score is linear in the tile's maximum specular ratio, weighted up by
// the previous frame's average ray travel length: tiles whose reflections
// travel far are costlier and noisier, so they bid for more of the budget.
func (c *Classifier) Classify(surf *SurfaceBuffer, cfg FrameConfig) []TileScore {
	scores := make([]TileScore, c.tiles.Count())

	for ty := 0; ty < c.tiles.TilesHigh; ty++ {
		for tx := 0; tx < c.tiles.TilesWide; tx++ {
			tileID := ty*c.tiles.TilesWide + tx
			scores[tileID] = c.classifyTile(tileID, tx, ty, surf, cfg)
		}
	}

	return scores
}

// classifyTile scores a single tile
func (c *Classifier) classifyTile(tileID, tx, ty int, surf *SurfaceBuffer, cfg FrameConfig) TileScore {
	maxSpec := float32(0)
	demand := 0

	y0 := ty * TileSize
	x0 := tx * TileSize
	for y := y0; y < y0+TileSize && y < surf.Height; y++ {
		for x := x0; x < x0+TileSize && x < surf.Width; x++ {
			tex := surf.At(x, y)
			if !tex.Valid || tex.Specular <= 0 {
				continue
			}
			demand++
			maxSpec = max(maxSpec, tex.Specular)
		}
	}

	// Record the specular signal for inspection and the next frame
	c.tiles.Cur[tileID].MaxSpecular = maxSpec

	if demand == 0 {
		return TileScore{TileID: tileID}
	}

	// Previous-frame cost signal: average ray travel length in world
	// units, normalized by the trace distance cap
	cost := float32(0)
	if cfg.MaxDistance > 0 {
		prev := &c.tiles.Prev[tileID]
		avgLen := float32(prev.RayLengthSum) / rayLengthScale / TexelsPerTile
		cost = min(avgLen/cfg.MaxDistance, 1)
	}

	return TileScore{
		TileID: tileID,
		Score:  maxSpec * (1 + cost),
		Demand: demand,
	}
}
