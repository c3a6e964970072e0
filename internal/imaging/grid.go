package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// DrawGrid draws vertical and horizontal lines every spacing pixels, starting
// at the image origin. Non-positive spacing draws nothing. Translucent colors
// are composited over the frame; each pixel is blended once, crossings
// included.
func DrawGrid(dst *image.RGBA, spacing int, c color.Color) {
	if dst == nil || spacing <= 0 {
		return
	}

	bounds := dst.Bounds()
	mask := image.NewAlpha(bounds)
	on := color.Alpha{A: 0xff}

	// Vertical lines
	for x := bounds.Min.X; x < bounds.Max.X; x += spacing {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			mask.SetAlpha(x, y, on)
		}
	}

	// Horizontal lines
	for y := bounds.Min.Y; y < bounds.Max.Y; y += spacing {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			mask.SetAlpha(x, y, on)
		}
	}

	draw.DrawMask(dst, bounds, image.NewUniform(c), image.Point{}, mask, bounds.Min, draw.Over)
}

// GridOverlay returns an encoded copy of img with a grid drawn on it.
func GridOverlay(img image.Image, spacing int, colorHex string) (*EncodedImage, error) {
	dst := ToRGBA(img)
	DrawGrid(dst, spacing, ParseColorOr(colorHex, GridColor))
	return EncodePNG(dst, 1.0)
}
