package reflection

import (
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/df07/go-hybrid-reflections/pkg/core"
)

// Ray is a compact, transient ray descriptor: a world-space origin, an
// octahedrally encoded unit direction, and the packed coordinate of the
// texel the ray shades. Rays live only for the frame that created them.
type Ray struct {
	Origin core.Vec3 // World-space origin (the texel's surface point)
	DirOct uint32    // Octahedrally encoded unit direction
	Texel  uint32    // Packed texel coordinate (row<<16 | column)
}

// RayBuffer is the shared, flat ray array the allocator fills and the
// tracer consumes. Slots are claimed through an atomic counter so
// concurrent allocation across tiles never collides or drops a ray.
type RayBuffer struct {
	count uint32
	rays  []Ray
}

// NewRayBuffer creates a ray buffer with the given slot capacity
func NewRayBuffer(capacity int) *RayBuffer {
	return &RayBuffer{rays: make([]Ray, capacity)}
}

// Capacity returns the number of ray slots
func (rb *RayBuffer) Capacity() int {
	return len(rb.rays)
}

// Reset discards all claimed slots. Must not race with Claim.
func (rb *RayBuffer) Reset() {
	atomic.StoreUint32(&rb.count, 0)
}

// Claim atomically reserves the next free slot. It returns false when the
// buffer is full; the counter may then exceed the capacity, which Len
// clamps for.
func (rb *RayBuffer) Claim() (int, bool) {
	idx := atomic.AddUint32(&rb.count, 1) - 1
	if int(idx) >= len(rb.rays) {
		return 0, false
	}
	return int(idx), true
}

// Len returns the number of claimed slots
func (rb *RayBuffer) Len() int {
	return min(int(atomic.LoadUint32(&rb.count)), len(rb.rays))
}

// Rays returns the claimed prefix of the buffer. Read-only during tracing.
func (rb *RayBuffer) Rays() []Ray {
	return rb.rays[:rb.Len()]
}

// Generator distributes a fixed per-frame ray budget across tiles by
// descending importance and emits ray descriptors into the shared buffer.
//
// Guarantees: the total emitted equals min(budget, total demand); at least
// one ray is emitted when the budget is positive and some tile has nonzero
// importance; no two rays in one frame target the same texel; the emitted
// ray set is deterministic for identical inputs.
type Generator struct {
	rays *RayBuffer
}

// NewGenerator creates a generator emitting into the given ray buffer
func NewGenerator(rays *RayBuffer) *Generator {
	return &Generator{rays: rays}
}

// allocation is one tile's share of the frame budget
type allocation struct {
	score TileScore
	quota int
}

// Generate allocates the frame's ray budget across the scored tiles and
// writes ray descriptors for the selected texels. It returns the number of
// rays emitted.
func (g *Generator) Generate(surf *SurfaceBuffer, scores []TileScore, cfg FrameConfig) int {
	budget := min(cfg.RayBudget, g.rays.Capacity())
	if budget <= 0 {
		return 0
	}

	allocs := allocateBudget(scores, budget)
	if len(allocs) == 0 {
		return 0
	}

	// Emit per-tile allocations in parallel, claiming output slots
	// atomically. Tiles never share texels, so emission never writes the
	// same texel twice.
	tasks := make(chan allocation, len(allocs))
	for _, a := range allocs {
		tasks <- a
	}
	close(tasks)

	var emitted atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range tasks {
				emitted.Add(int64(g.emitTile(a, surf, cfg)))
			}
		}()
	}
	wg.Wait()

	return int(emitted.Load())
}

// allocateBudget computes per-tile ray quotas proportional to importance.
// Quotas sum to exactly min(budget, total demand): proportional floors
// first, then the remainder goes to tiles in descending importance order
// (ties broken by ascending tile index) until the budget is spent.
func allocateBudget(scores []TileScore, budget int) []allocation {
	// Active tiles in descending importance, ties by ascending index
	active := make([]TileScore, 0, len(scores))
	totalScore := float64(0)
	totalDemand := 0
	for _, s := range scores {
		if s.Score > 0 && s.Demand > 0 {
			active = append(active, s)
			totalScore += float64(s.Score)
			totalDemand += s.Demand
		}
	}
	if len(active) == 0 {
		return nil
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].Score != active[j].Score {
			return active[i].Score > active[j].Score
		}
		return active[i].TileID < active[j].TileID
	})

	target := min(budget, totalDemand)

	// Proportional floor allocation, capped by each tile's demand
	allocs := make([]allocation, len(active))
	assigned := 0
	for i, s := range active {
		quota := int(float64(target) * float64(s.Score) / totalScore)
		quota = min(quota, s.Demand)
		allocs[i] = allocation{score: s, quota: quota}
		assigned += quota
	}

	// Distribute the remainder by descending importance until the target
	// is met. Every pass assigns at least one ray while capacity remains,
	// so this terminates with assigned == target.
	for assigned < target {
		progress := false
		for i := range allocs {
			if assigned == target {
				break
			}
			if allocs[i].quota < allocs[i].score.Demand {
				allocs[i].quota++
				assigned++
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	// Drop tiles that ended up with nothing
	out := allocs[:0]
	for _, a := range allocs {
		if a.quota > 0 {
			out = append(out, a)
		}
	}
	return out
}

// emitTile selects the tile's texels for this frame and writes one ray
// descriptor per selected texel. Returns the number of rays emitted.
func (g *Generator) emitTile(a allocation, surf *SurfaceBuffer, cfg FrameConfig) int {
	tilesWide, _ := TileGridDims(surf.Width, surf.Height)
	tx := a.score.TileID % tilesWide
	ty := a.score.TileID / tilesWide

	// Collect eligible texels in row-major order
	type texelCoord struct{ x, y int }
	eligible := make([]texelCoord, 0, TexelsPerTile)
	y0, x0 := ty*TileSize, tx*TileSize
	for y := y0; y < y0+TileSize && y < surf.Height; y++ {
		for x := x0; x < x0+TileSize && x < surf.Width; x++ {
			tex := surf.At(x, y)
			if tex.Valid && tex.Specular > 0 {
				eligible = append(eligible, texelCoord{x, y})
			}
		}
	}
	if len(eligible) == 0 {
		return 0
	}

	quota := min(a.quota, len(eligible))

	// Temporal jitter: rotate the selection start with the frame counter
	// and stride through the eligible list so consecutive frames refresh
	// different texels. Stride selection keeps the chosen indices distinct.
	start := (int(cfg.FrameCounter) + cfg.SampleIndex) % len(eligible)
	stride := len(eligible) / quota

	emitted := 0
	for i := 0; i < quota; i++ {
		tc := eligible[(start+i*stride)%len(eligible)]
		if g.emitRay(tc.x, tc.y, surf, cfg) {
			emitted++
		}
	}
	return emitted
}

// emitRay writes one ray descriptor for the texel, returning false only
// when the shared buffer is out of slots.
func (g *Generator) emitRay(x, y int, surf *SurfaceBuffer, cfg FrameConfig) bool {
	tex := surf.At(x, y)

	incident := tex.Position.Subtract(surf.Eye).Normalize()
	dir := incident.Reflect(tex.Normal).Normalize()

	// Roughness jitter of the sample direction, deterministic per texel
	// and frame
	if tex.Roughness > 0 {
		seed := int64(PackTexel(uint32(x), uint32(y)))<<32 | int64(cfg.FrameCounter)
		random := rand.New(rand.NewSource(seed))
		jitter := core.RandomInUnitSphere(random).Multiply(tex.Roughness * 0.25)
		perturbed := dir.Add(jitter).Normalize()
		if perturbed.IsFinite() && !perturbed.NearZero() && perturbed.Dot(tex.Normal) > 0 {
			dir = perturbed
		}
	}
	if !dir.IsFinite() || dir.NearZero() {
		// Grazing degenerate reflection: fall back to the surface normal
		dir = tex.Normal
	}

	slot, ok := g.rays.Claim()
	if !ok {
		return false
	}
	g.rays.rays[slot] = Ray{
		Origin: tex.Position,
		DirOct: EncodeDirection(dir),
		Texel:  PackTexel(uint32(x), uint32(y)),
	}
	return true
}
