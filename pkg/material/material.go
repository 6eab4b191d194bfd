// Package material implements the opaque surface model consumed by the
// reflection tracer: a single physically-inspired material with diffuse and
// specular lobes, an emissive term, and a validity channel on the BRDF.
package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-hybrid-reflections/pkg/core"
)

// Standard is an opaque surface with diffuse and specular response.
type Standard struct {
	Albedo    core.Vec3 // Diffuse base color
	Specular  float32   // Fraction of light reflected specularly (kS)
	Rough     float32   // Microfacet roughness in [0, 1]
	Emissive  core.Vec3 // Emitted radiance, zero for non-emitters
	specColor core.Vec3 // Specular tint, defaults to white
}

// NewStandard creates an opaque surface with the given diffuse color,
// specular ratio and roughness.
func NewStandard(albedo core.Vec3, specular, roughness float32) *Standard {
	return &Standard{
		Albedo:    albedo,
		Specular:  clamp01(specular),
		Rough:     clamp01(roughness),
		specColor: core.NewVec3(1, 1, 1),
	}
}

// NewEmissive creates a surface that only emits light
func NewEmissive(radiance core.Vec3) *Standard {
	return &Standard{
		Emissive:  radiance,
		specColor: core.NewVec3(1, 1, 1),
	}
}

// NewMirror creates a fully specular surface with the given tint
func NewMirror(tint core.Vec3) *Standard {
	return &Standard{
		Specular:  1,
		specColor: tint,
	}
}

// EvaluateBRDF computes the surface response for a view direction, a
// direction toward the light, and the surface normal. The validity channel
// is 1 for a well-formed evaluation and 0 when the geometric inputs are
// degenerate (zero normal, light below the horizon); a near-zero validity
// is a sentinel for "no valid surface response", distinct from a surface
// that legitimately reflects nothing.
func (m *Standard) EvaluateBRDF(view, light, normal core.Vec3) (core.Vec3, float32) {
	if normal.NearZero() || !normal.IsFinite() || !light.IsFinite() {
		return core.Vec3{}, 0
	}

	nDotL := normal.Dot(light)
	if nDotL <= 0 {
		// Light below the horizon: no valid response at this point
		return core.Vec3{}, 0
	}

	// Diffuse lobe
	kd := 1 - m.Specular
	diffuse := m.Albedo.Multiply(kd * nDotL)

	// Specular lobe: Blinn-Phong with roughness-derived exponent
	specular := core.Vec3{}
	if m.Specular > 0 {
		half := view.Negate().Add(light).Normalize()
		nDotH := max(normal.Dot(half), 0)
		shininess := roughnessToShininess(m.Rough)
		specular = m.specColor.Multiply(m.Specular * math32.Pow(nDotH, shininess))
	}

	return diffuse.Add(specular), 1
}

// Emit returns the emissive contribution of the surface
func (m *Standard) Emit() core.Vec3 {
	return m.Emissive
}

// SpecularRatio returns the kS signal consumed by tile classification
func (m *Standard) SpecularRatio() float32 {
	return m.Specular
}

// Roughness returns the microfacet roughness in [0, 1]
func (m *Standard) Roughness() float32 {
	return m.Rough
}

// roughnessToShininess maps roughness in [0,1] to a Blinn-Phong exponent.
// Roughness 0 gives a tight highlight, roughness 1 a broad one.
func roughnessToShininess(roughness float32) float32 {
	r := max(roughness, 0.01)
	return 2/(r*r) - 2 + 1
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
