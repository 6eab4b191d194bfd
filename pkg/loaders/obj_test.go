package loaders

import (
	"testing"

	"github.com/g3n/engine/loader/obj"
	gmath "github.com/g3n/engine/math32"

	"github.com/df07/go-hybrid-reflections/pkg/core"
	"github.com/df07/go-hybrid-reflections/pkg/geometry"
	"github.com/df07/go-hybrid-reflections/pkg/material"
)

func fallbackMaterial() core.Material {
	return material.NewStandard(core.NewVec3(0.7, 0.7, 0.7), 0.2, 0.5)
}

// quadDecoder builds decoded OBJ data for one unit quad with four vertices
func quadDecoder() *obj.Decoder {
	return &obj.Decoder{
		Objects: []obj.Object{
			{
				Name: "quad",
				Faces: []obj.Face{
					{
						Vertices: []int{0, 1, 2, 3},
						Normals:  []int{0, 0, 0, 0},
						Material: "shiny",
					},
				},
			},
		},
		Vertices: gmath.ArrayF32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		},
		Normals: gmath.ArrayF32{0, 0, 1},
		Materials: map[string]*obj.Material{
			"shiny": {
				Name:      "shiny",
				Diffuse:   gmath.Color{R: 0.8, G: 0.2, B: 0.1},
				Specular:  gmath.Color{R: 1, G: 1, B: 1},
				Shininess: 199,
			},
		},
	}
}

// TestParseDecoderFanTriangulation tests that an n-gon face becomes n-2
// triangles sharing the first vertex.
func TestParseDecoderFanTriangulation(t *testing.T) {
	shapes, err := parseDecoder(quadDecoder(), 1, fallbackMaterial())
	if err != nil {
		t.Fatalf("parseDecoder failed: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("Expected 2 triangles from a quad, got %d shapes", len(shapes))
	}

	first, ok := shapes[0].(*geometry.Triangle)
	if !ok {
		t.Fatalf("Expected a triangle, got %T", shapes[0])
	}
	if first.V0 != core.NewVec3(0, 0, 0) || first.V1 != core.NewVec3(1, 0, 0) || first.V2 != core.NewVec3(1, 1, 0) {
		t.Errorf("first triangle vertices = %v %v %v", first.V0, first.V1, first.V2)
	}

	second := shapes[1].(*geometry.Triangle)
	if second.V0 != core.NewVec3(0, 0, 0) || second.V1 != core.NewVec3(1, 1, 0) || second.V2 != core.NewVec3(0, 1, 0) {
		t.Errorf("second triangle vertices = %v %v %v", second.V0, second.V1, second.V2)
	}
}

// TestParseDecoderScale tests uniform vertex scaling
func TestParseDecoderScale(t *testing.T) {
	shapes, err := parseDecoder(quadDecoder(), 2.5, fallbackMaterial())
	if err != nil {
		t.Fatalf("parseDecoder failed: %v", err)
	}

	tri := shapes[0].(*geometry.Triangle)
	if tri.V1 != core.NewVec3(2.5, 0, 0) {
		t.Errorf("scaled vertex = %v, want (2.5, 0, 0)", tri.V1)
	}
}

// TestParseDecoderMaterialMapping tests MTL attribute conversion
func TestParseDecoderMaterialMapping(t *testing.T) {
	shapes, err := parseDecoder(quadDecoder(), 1, fallbackMaterial())
	if err != nil {
		t.Fatalf("parseDecoder failed: %v", err)
	}

	mat := shapes[0].(*geometry.Triangle).Material
	std, ok := mat.(*material.Standard)
	if !ok {
		t.Fatalf("Expected a standard material, got %T", mat)
	}
	if std.Albedo != core.NewVec3(0.8, 0.2, 0.1) {
		t.Errorf("albedo = %v", std.Albedo)
	}
	// White specular color has luminance 1
	if std.SpecularRatio() != 1 {
		t.Errorf("specular ratio = %v, want 1", std.SpecularRatio())
	}
	// High shininess maps back to low roughness: sqrt(2/200) = 0.1
	if r := std.Roughness(); r < 0.09 || r > 0.11 {
		t.Errorf("roughness = %v, want about 0.1", r)
	}
}

// TestParseDecoderEmissiveMaterial tests that emissive MTL entries become
// emitters.
func TestParseDecoderEmissiveMaterial(t *testing.T) {
	dec := quadDecoder()
	dec.Materials["shiny"].Emissive = gmath.Color{R: 3, G: 2, B: 1}

	shapes, err := parseDecoder(dec, 1, fallbackMaterial())
	if err != nil {
		t.Fatalf("parseDecoder failed: %v", err)
	}

	mat := shapes[0].(*geometry.Triangle).Material
	if mat.Emit() != core.NewVec3(3, 2, 1) {
		t.Errorf("Emit = %v, want (3, 2, 1)", mat.Emit())
	}
}

// TestParseDecoderMissingMaterial tests the fallback path
func TestParseDecoderMissingMaterial(t *testing.T) {
	dec := quadDecoder()
	dec.Objects[0].Faces[0].Material = "nonexistent"

	fallback := fallbackMaterial()
	shapes, err := parseDecoder(dec, 1, fallback)
	if err != nil {
		t.Fatalf("parseDecoder failed: %v", err)
	}

	if shapes[0].(*geometry.Triangle).Material != fallback {
		t.Error("Expected the fallback material for an unresolvable name")
	}
}

// TestParseDecoderSmoothNormals tests per-vertex normal interpolation wiring
func TestParseDecoderSmoothNormals(t *testing.T) {
	dec := &obj.Decoder{
		Objects: []obj.Object{
			{
				Name: "tri",
				Faces: []obj.Face{
					{
						Vertices: []int{0, 1, 2},
						Normals:  []int{0, 1, 2},
						Smooth:   true,
					},
				},
			},
		},
		Vertices: gmath.ArrayF32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
		},
		Normals: gmath.ArrayF32{
			0, 0, 1,
			1, 0, 1,
			0, 1, 1,
		},
		Materials: map[string]*obj.Material{},
	}

	shapes, err := parseDecoder(dec, 1, fallbackMaterial())
	if err != nil {
		t.Fatalf("parseDecoder failed: %v", err)
	}
	tri := shapes[0].(*geometry.Triangle)
	if tri.N0 != core.NewVec3(0, 0, 1) {
		t.Errorf("vertex normal = %v, want (0, 0, 1)", tri.N0)
	}
	if tri.N1.Subtract(core.NewVec3(1, 0, 1).Normalize()).Length() > 1e-5 {
		t.Errorf("vertex normal = %v, want normalized (1, 0, 1)", tri.N1)
	}
}

// TestParseDecoderInvalidFace tests error reporting for malformed indices
func TestParseDecoderInvalidFace(t *testing.T) {
	dec := quadDecoder()
	dec.Objects[0].Faces[0].Vertices = []int{0, 1, 99}

	if _, err := parseDecoder(dec, 1, fallbackMaterial()); err == nil {
		t.Error("Expected an error for an out-of-range vertex index")
	}

	dec = quadDecoder()
	dec.Objects[0].Faces[0].Vertices = []int{0, 1}
	if _, err := parseDecoder(dec, 1, fallbackMaterial()); err == nil {
		t.Error("Expected an error for a degenerate face")
	}
}
