package reflection

import (
	"github.com/df07/go-hybrid-reflections/pkg/core"
	"github.com/df07/go-hybrid-reflections/pkg/lights"
)

const (
	// brdfValidityEpsilon is the threshold under which a BRDF's validity
	// channel marks the response as "no valid surface response". Fixed
	// behavior, not a tunable.
	brdfValidityEpsilon = 0.001

	// traceEpsilon offsets trace origins along the ray direction to avoid
	// self-intersection
	traceEpsilon = 0.05

	// occlusionMaxDistance bounds the shadow ray toward the light
	occlusionMaxDistance = 1000.0
)

// World is the scene contract the tracer queries: closest-hit intersection
// for primary rays, a cheap any-hit test for occlusion rays, and an
// environment lookup for misses.
type World interface {
	Intersect(ray core.Ray, tMin, tMax float32) (*core.HitRecord, bool)
	Occluded(ray core.Ray, tMin, tMax float32) bool
	Environment(dir core.Vec3) core.Vec3
}

// primaryResult carries the state of one primary trace: set exactly once
// by the hit or miss resolution, then read by the shading step. The hit
// flag's zero value is "miss", so an unresolved trace defaults to a miss.
type primaryResult struct {
	dirToLight  core.Vec3
	brdf        core.Vec3
	validity    float32
	emissive    core.Vec3
	hitLocation core.Vec3
	randState   float32
	hit         bool
}

// occlusionResult carries the state of the follow-up shadow trace. It is a
// distinct type from primaryResult: the two are consumed in strict
// sequence within one unit of work and never shared across units.
type occlusionResult struct {
	hit bool
}

// TraceStats aggregates per-ray outcomes for one trace dispatch
type TraceStats struct {
	Rays       int // Rays processed
	Hits       int // Primary traces that hit geometry
	Occluded   int // Hits whose shadow ray was blocked
	Misses     int // Primary traces that left the scene
	Degenerate int // Rays rejected before any geometry query
}

// add merges another stats block into this one
func (s *TraceStats) add(other TraceStats) {
	s.Rays += other.Rays
	s.Hits += other.Hits
	s.Occluded += other.Occluded
	s.Misses += other.Misses
	s.Degenerate += other.Degenerate
}

// Tracer resolves ray descriptors against the scene: a primary visibility
// trace, material response evaluation, a shadow-occlusion follow-up toward
// the dominant light, and the composite write into the output image. Each
// ray is an independent unit of work.
type Tracer struct {
	world     World
	light     lights.Global
	accum     *Accumulator
	output    *Image
	tilesWide int
}

// NewTracer creates a tracer writing into the given output image and tile
// statistics
func NewTracer(world World, light lights.Global, accum *Accumulator, output *Image) *Tracer {
	tilesWide, _ := TileGridDims(output.Width, output.Height)
	return &Tracer{
		world:     world,
		light:     light,
		accum:     accum,
		output:    output,
		tilesWide: tilesWide,
	}
}

// TraceRay processes one ray descriptor end to end
func (t *Tracer) TraceRay(ray Ray, cfg FrameConfig) TraceStats {
	stats := TraceStats{Rays: 1}

	x, y := UnpackTexel(ray.Texel)
	tileID := TileIndexFor(int(x), int(y), t.tilesWide)
	dir := DecodeDirection(ray.DirOct)

	// Degenerate directions and non-positive trace distances never reach
	// a geometry query: guaranteed miss, zero contribution.
	if !dir.IsFinite() || dir.NearZero() || cfg.MaxDistance <= 0 {
		stats.Degenerate++
		t.output.Set(int(x), int(y), core.Vec3{})
		t.accum.MarkWritten(tileID, TexelBit(int(x), int(y)))
		return stats
	}

	primary := primaryResult{
		randState:  0,
		dirToLight: t.light.DirectionToLight(),
	}

	// Primary trace, origin offset along the direction to avoid
	// self-intersection
	traceRay := core.NewRay(ray.Origin.Add(dir.Multiply(traceEpsilon)), dir)
	if hit, ok := t.world.Intersect(traceRay, 0, cfg.MaxDistance); ok {
		primary.hit = true
		primary.hitLocation = hit.Point
		primary.brdf, primary.validity = hit.Material.EvaluateBRDF(dir, primary.dirToLight, hit.Normal)
		primary.emissive = hit.Material.Emit()
	} else {
		primary.hit = false
		primary.hitLocation = traceRay.At(cfg.MaxDistance)
		primary.emissive = t.world.Environment(dir)
	}

	// A near-zero validity channel is a sentinel for "no valid surface
	// response", distinct from a legitimately black surface: the response
	// is dropped entirely rather than shaded.
	response := primary.brdf
	if primary.validity < brdfValidityEpsilon {
		response = core.Vec3{}
	}

	// Ambient shades the surviving response only, so the sentinel drops
	// it along with the direct term. It survives occlusion, which zeroes
	// the response after this point.
	if primary.hit {
		primary.emissive = primary.emissive.Add(t.light.Ambient.MultiplyVec(response))
	}

	// Cost metric: travel distance from the original origin to the hit
	// location, in fixed-point units, summed atomically per tile
	travel := primary.hitLocation.Subtract(ray.Origin).Length()
	t.accum.AddRayLength(tileID, FixedPointLength(travel))

	if primary.hit {
		stats.Hits++

		// Occlusion-only follow-up toward the light: a cheap visibility
		// test from the hit location. Its hit flag supersedes the
		// primary's for the lighting decision.
		occlusion := occlusionResult{}
		shadowRay := core.NewRay(
			primary.hitLocation.Add(primary.dirToLight.Multiply(traceEpsilon)),
			primary.dirToLight,
		)
		occlusion.hit = t.world.Occluded(shadowRay, 0, occlusionMaxDistance)

		if occlusion.hit {
			// Light blocked: the response stays unlit and contributes
			// nothing; ambient and emissive carry the pixel
			stats.Occluded++
			response = core.Vec3{}
		} else {
			// The only place direct lighting is applied
			response = response.MultiplyVec(t.light.Radiance())
		}
	} else {
		stats.Misses++
	}

	// Composite and full-pixel replace
	radiance := response.Add(primary.emissive)
	t.output.Set(int(x), int(y), radiance)
	t.accum.MarkWritten(tileID, TexelBit(int(x), int(y)))

	return stats
}
