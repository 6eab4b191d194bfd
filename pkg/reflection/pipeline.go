package reflection

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/df07/go-hybrid-reflections/log"
	"github.com/df07/go-hybrid-reflections/pkg/lights"
)

var logger = log.New("reflection")

// chunkSize is the number of rays per trace task
const chunkSize = 4096

// Config contains the pipeline configuration that stays fixed across
// frames (until a resize).
type Config struct {
	Width       int     // Target resolution in texels
	Height      int     //
	RayBudget   int     // Per-frame ray budget (0 selects the default)
	SampleCount int     // Multisample positions cycled by temporal jitter
	MaxDistance float32 // Primary trace distance cap
	NumWorkers  int     // Trace workers (0 = use CPU count)
}

// DefaultConfig returns the configuration the renderer provisions by default
func DefaultConfig(width, height int) Config {
	return Config{
		Width:       width,
		Height:      height,
		RayBudget:   DefaultRayBudget,
		SampleCount: 4,
		MaxDistance: 100.0,
		NumWorkers:  0,
	}
}

// FrameStats summarizes one rendered frame for logging and inspection
type FrameStats struct {
	Frame       uint32        // Frame counter value
	ActiveTiles int           // Tiles with nonzero importance
	Demand      int           // Total texels that wanted a fresh ray
	RaysEmitted int           // Rays actually emitted (≤ budget)
	Trace       TraceStats    // Aggregated trace outcomes
	Duration    time.Duration // Wall time for the frame
}

// Pipeline runs the per-frame reflection passes in order: reset, tile
// classification, budgeted ray generation, hybrid tracing, and statistic
// publication. One Pipeline owns its tile buffer, ray buffer and output
// image; the host supplies a fresh surface buffer each frame and upholds
// the frame-boundary synchronization contract.
type Pipeline struct {
	cfg    Config
	world  World
	light  lights.Global
	tiles  *TileBuffer
	rays   *RayBuffer
	output *Image

	classifier *Classifier
	generator  *Generator
	accum      *Accumulator
	tracer     *Tracer
	pool       *WorkerPool

	// Counter selecting the multisample position and temporal jitter,
	// advanced atomically once per frame
	sampleCounter atomic.Uint64
}

// NewPipeline creates a reflection pipeline over the given world and light
func NewPipeline(world World, light lights.Global, cfg Config) *Pipeline {
	if cfg.RayBudget <= 0 {
		cfg.RayBudget = DefaultRayBudget
	}
	if cfg.SampleCount <= 0 {
		cfg.SampleCount = 1
	}

	p := &Pipeline{
		cfg:   cfg,
		world: world,
		light: light,
	}
	p.allocate(cfg.Width, cfg.Height)
	p.pool.Start()
	return p
}

// allocate builds the buffers and stages for a target resolution
func (p *Pipeline) allocate(width, height int) {
	p.tiles = NewTileBuffer(width, height)
	p.rays = NewRayBuffer(EffectiveBudget(p.cfg.RayBudget, width, height))
	p.output = NewImage(width, height)

	p.classifier = NewClassifier(p.tiles)
	p.generator = NewGenerator(p.rays)
	p.accum = NewAccumulator(p.tiles)
	p.tracer = NewTracer(p.world, p.light, p.accum, p.output)
	maxTasks := (p.rays.Capacity() + chunkSize - 1) / chunkSize
	p.pool = NewWorkerPool(p.tracer, p.cfg.NumWorkers, maxTasks)
}

// Resize rebuilds the tile buffer, ray buffer and output image for new
// target dimensions. Must not be called while a frame is rendering.
func (p *Pipeline) Resize(width, height int) {
	p.pool.Stop()
	p.cfg.Width = width
	p.cfg.Height = height
	p.allocate(width, height)
	p.pool.Start()
	logger.Infof("resized reflection target to %dx%d (%d ray slots)", width, height, p.rays.Capacity())
}

// Close shuts down the trace workers
func (p *Pipeline) Close() {
	p.pool.Stop()
}

// Output returns the reflection output image
func (p *Pipeline) Output() *Image {
	return p.output
}

// Tiles returns the tile statistics buffer
func (p *Pipeline) Tiles() *TileBuffer {
	return p.tiles
}

// Rays returns the rays emitted for the last frame, for debug inspection
func (p *Pipeline) Rays() []Ray {
	return p.rays.Rays()
}

// frameConfig assembles the per-frame configuration from the pipeline
// state and the frame's sample counter value
func (p *Pipeline) frameConfig(sample uint64) FrameConfig {
	return FrameConfig{
		CanvasWidth:     p.cfg.Width,
		CanvasHeight:    p.cfg.Height,
		TargetWidth:     p.cfg.Width,
		TargetHeight:    p.cfg.Height,
		InvTargetWidth:  1.0 / float32(p.cfg.Width),
		InvTargetHeight: 1.0 / float32(p.cfg.Height),
		SampleIndex:     int(sample % uint64(p.cfg.SampleCount)),
		SampleCount:     p.cfg.SampleCount,
		MaxDistance:     p.cfg.MaxDistance,
		FrameCounter:    uint32(sample % math.MaxUint32),
		RayBudget:       p.cfg.RayBudget,
	}
}

// RenderFrame runs one frame of the reflection pipeline against the given
// surface buffer. The statistics accumulated this frame become visible to
// the classifier on the next frame, never earlier.
func (p *Pipeline) RenderFrame(surf *SurfaceBuffer) FrameStats {
	start := time.Now()

	sample := p.sampleCounter.Add(1) - 1
	cfg := p.frameConfig(sample)

	// Reset pass: publish last frame's statistics, recycle the ray buffer
	p.tiles.Swap()
	p.rays.Reset()

	// Classify tiles
	scores := p.classifier.Classify(surf, cfg)
	stats := FrameStats{Frame: cfg.FrameCounter}
	for _, s := range scores {
		if s.Score > 0 {
			stats.ActiveTiles++
			stats.Demand += s.Demand
		}
	}

	// Allocate and generate rays
	stats.RaysEmitted = p.generator.Generate(surf, scores, cfg)

	// Trace rays in fixed-size chunks across the worker pool
	rays := p.rays.Rays()
	numTasks := 0
	for off := 0; off < len(rays); off += chunkSize {
		end := min(off+chunkSize, len(rays))
		p.pool.Submit(TraceTask{TaskID: numTasks, Rays: rays[off:end], Cfg: cfg})
		numTasks++
	}
	for i := 0; i < numTasks; i++ {
		result, ok := p.pool.GetResult()
		if !ok {
			break
		}
		stats.Trace.add(result.Stats)
	}

	stats.Duration = time.Since(start)
	logger.Debugf("frame %d: %d/%d rays (%d tiles, demand %d) hits=%d occluded=%d misses=%d in %v",
		cfg.FrameCounter, stats.RaysEmitted, cfg.RayBudget, stats.ActiveTiles,
		stats.Demand, stats.Trace.Hits, stats.Trace.Occluded, stats.Trace.Misses, stats.Duration)

	return stats
}
