// Package loaders imports triangle meshes into the scene's shape set.
package loaders

import (
	"fmt"

	"github.com/g3n/engine/loader/obj"

	"github.com/df07/go-hybrid-reflections/log"
	"github.com/df07/go-hybrid-reflections/pkg/core"
	"github.com/df07/go-hybrid-reflections/pkg/geometry"
	"github.com/df07/go-hybrid-reflections/pkg/material"

	"github.com/chewxy/math32"
)

var logger = log.New("loaders")

// LoadOBJ reads a Wavefront OBJ file (and its sibling MTL file, when it
// names one) and returns its faces as triangles scaled by the given factor.
// Faces without a resolvable material use the fallback.
func LoadOBJ(path string, scale float32, fallback core.Material) ([]core.Shape, error) {
	dec, err := obj.Decode(path, "")
	if err != nil {
		return nil, fmt.Errorf("failed to decode OBJ file %s: %w", path, err)
	}

	for _, w := range dec.Warnings {
		logger.Warningf("%s: %s", path, w)
	}

	shapes, err := parseDecoder(dec, scale, fallback)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OBJ file %s: %w", path, err)
	}

	logger.Infof("loaded %s: %d objects, %d triangles", path, len(dec.Objects), len(shapes))
	return shapes, nil
}

// parseDecoder converts decoded OBJ data into triangles. Faces with more
// than three vertices are fan triangulated.
func parseDecoder(dec *obj.Decoder, scale float32, fallback core.Material) ([]core.Shape, error) {
	if scale <= 0 {
		scale = 1
	}

	vertices := make([]core.Vec3, 0, len(dec.Vertices)/3)
	for i := 0; i+2 < len(dec.Vertices); i += 3 {
		vertices = append(vertices, core.NewVec3(
			dec.Vertices[i]*scale,
			dec.Vertices[i+1]*scale,
			dec.Vertices[i+2]*scale,
		))
	}

	normals := make([]core.Vec3, 0, len(dec.Normals)/3)
	for i := 0; i+2 < len(dec.Normals); i += 3 {
		normals = append(normals, core.NewVec3(
			dec.Normals[i],
			dec.Normals[i+1],
			dec.Normals[i+2],
		).Normalize())
	}

	// Convert each referenced OBJ material once
	materials := make(map[string]core.Material, len(dec.Materials))
	materialFor := func(name string) core.Material {
		if mat, ok := materials[name]; ok {
			return mat
		}
		src, ok := dec.Materials[name]
		if !ok {
			materials[name] = fallback
			return fallback
		}
		mat := convertMaterial(src)
		materials[name] = mat
		return mat
	}

	var shapes []core.Shape
	for _, object := range dec.Objects {
		for fi, face := range object.Faces {
			if len(face.Vertices) < 3 {
				return nil, fmt.Errorf("object %q face %d has %d vertices", object.Name, fi, len(face.Vertices))
			}

			mat := materialFor(face.Material)
			smooth := face.Smooth && len(face.Normals) == len(face.Vertices)

			for i := 1; i+1 < len(face.Vertices); i++ {
				corners := [3]int{0, i, i + 1}

				var p [3]core.Vec3
				for j, c := range corners {
					vi := face.Vertices[c]
					if vi < 0 || vi >= len(vertices) {
						return nil, fmt.Errorf("object %q face %d references vertex %d of %d", object.Name, fi, vi, len(vertices))
					}
					p[j] = vertices[vi]
				}

				if smooth {
					var n [3]core.Vec3
					valid := true
					for j, c := range corners {
						ni := face.Normals[c]
						if ni < 0 || ni >= len(normals) {
							valid = false
							break
						}
						n[j] = normals[ni]
					}
					if valid {
						shapes = append(shapes, geometry.NewSmoothTriangle(p[0], p[1], p[2], n[0], n[1], n[2], mat))
						continue
					}
				}

				shapes = append(shapes, geometry.NewTriangle(p[0], p[1], p[2], mat))
			}
		}
	}

	return shapes, nil
}

// convertMaterial maps an MTL definition onto the renderer's material
// model: diffuse color becomes albedo, the specular color's luminance
// becomes the specular ratio, and Phong shininess maps back to roughness.
func convertMaterial(src *obj.Material) core.Material {
	albedo := core.NewVec3(src.Diffuse.R, src.Diffuse.G, src.Diffuse.B)
	emissive := core.NewVec3(src.Emissive.R, src.Emissive.G, src.Emissive.B)

	if emissive.Luminance() > 0 {
		return material.NewEmissive(emissive)
	}

	specular := core.NewVec3(src.Specular.R, src.Specular.G, src.Specular.B).Luminance()
	specular = math32.Min(math32.Max(specular, 0), 1)

	return material.NewStandard(albedo, specular, shininessToRoughness(src.Shininess))
}

// shininessToRoughness inverts the Blinn-Phong exponent mapping used when
// evaluating reflections: shininess = 2/roughness^2 - 1.
func shininessToRoughness(shininess float32) float32 {
	if shininess < 1 {
		shininess = 1
	}
	r := math32.Sqrt(2 / (shininess + 1))
	return math32.Min(math32.Max(r, 0.01), 1)
}
