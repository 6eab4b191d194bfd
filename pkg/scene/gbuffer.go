package scene

import (
	"runtime"
	"sync"

	"github.com/df07/go-hybrid-reflections/pkg/reflection"
)

// geometryEpsilon rejects self-intersections at the camera origin
const geometryEpsilon = 0.001

// RenderGeometry traces one camera ray per texel and fills a surface buffer
// with the hit geometry and material attributes. Texels whose ray escapes
// the scene stay invalid and are skipped by the reflection passes.
func (s *Scene) RenderGeometry(width, height int) *reflection.SurfaceBuffer {
	surf := reflection.NewSurfaceBuffer(width, height)
	surf.Eye = s.Camera.Eye()

	// Rows are independent, so split them across the CPUs
	numWorkers := runtime.NumCPU()
	rows := make(chan int, height)
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				s.renderRow(surf, y, width)
			}
		}()
	}
	wg.Wait()

	return surf
}

// renderRow fills one row of the surface buffer
func (s *Scene) renderRow(surf *reflection.SurfaceBuffer, y, width int) {
	for x := 0; x < width; x++ {
		ray := s.Camera.RayForTexel(x, y)
		hit, found := s.Intersect(ray, geometryEpsilon, s.Camera.Far())
		if !found {
			continue
		}

		texel := surf.At(x, y)
		texel.Position = hit.Point
		texel.Normal = hit.Normal
		texel.Specular = hit.Material.SpecularRatio()
		texel.Roughness = hit.Material.Roughness()
		texel.Valid = true
	}
}
