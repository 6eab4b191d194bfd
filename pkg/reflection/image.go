package reflection

import (
	"image"
	"image/color"

	"github.com/df07/go-hybrid-reflections/pkg/core"
)

// Image is the reflection output target: a flat float radiance buffer, one
// texel per screen position. Each texel is written by at most one ray per
// frame, and writes always replace the full pixel value.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage creates a zeroed radiance image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Set replaces the radiance value at a texel
func (img *Image) Set(x, y int, radiance core.Vec3) {
	img.Pixels[y*img.Width+x] = radiance
}

// At returns the radiance value at a texel
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Clear zeroes the whole image
func (img *Image) Clear() {
	clear(img.Pixels)
}

// ToRGBA converts the radiance buffer to an 8-bit image for inspection,
// clamping to [0,1] and applying gamma 2.0.
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y).Clamp(0, 1).GammaCorrect(2.0)
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(c.X * 255),
				G: uint8(c.Y * 255),
				B: uint8(c.Z * 255),
				A: 255,
			})
		}
	}
	return out
}
