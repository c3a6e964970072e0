package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/plate-vision/internal/vision"
)

const (
	axisLength    = 30
	axisThickness = 2
	arrowTipRatio = 0.2
)

// DrawPoseAxes draws the marker's rotation axes at its top-left corner: the X
// axis (red) along the pose angle and the Y axis (green) rotated a further
// 90°. The corner's coordinates are printed next to the origin. A nil pose
// draws nothing.
func DrawPoseAxes(dst *image.RGBA, pose *vision.Pose) {
	if dst == nil || pose == nil {
		return
	}

	origin := pose.Origin()
	ox, oy := int(origin.X), int(origin.Y)

	xEnd := axisEnd(ox, oy, pose.Angle)
	drawArrow(dst, image.Pt(ox, oy), xEnd, AxisXColor, axisThickness)
	DrawLabel(dst, xEnd.X+3, xEnd.Y-3, "X", AxisXColor)

	yEnd := axisEnd(ox, oy, pose.Angle+math.Pi/2)
	drawArrow(dst, image.Pt(ox, oy), yEnd, AxisYColor, axisThickness)
	DrawLabel(dst, yEnd.X+3, yEnd.Y-3, "Y", AxisYColor)

	DrawLabel(dst, ox+5, oy-15, fmt.Sprintf("TL X: %.1f", origin.X), AxisXColor)
	DrawLabel(dst, ox+5, oy, fmt.Sprintf("TL Y: %.1f", origin.Y), AxisYColor)
}

func axisEnd(ox, oy int, angle float64) image.Point {
	return image.Pt(
		int(float64(ox)+axisLength*math.Cos(angle)),
		int(float64(oy)+axisLength*math.Sin(angle)),
	)
}

// drawArrow draws a line from p0 to p1 with an arrow head at p1 whose sides
// are arrowTipRatio of the line length.
func drawArrow(dst *image.RGBA, p0, p1 image.Point, c color.Color, thickness int) {
	drawLine(dst, p0, p1, c, thickness)

	dx := float64(p1.X - p0.X)
	dy := float64(p1.Y - p0.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	tip := length * arrowTipRatio
	back := math.Atan2(-dy, -dx)
	for _, side := range []float64{-math.Pi / 4, math.Pi / 4} {
		a := back + side
		end := image.Pt(
			int(math.Round(float64(p1.X)+tip*math.Cos(a))),
			int(math.Round(float64(p1.Y)+tip*math.Sin(a))),
		)
		drawLine(dst, p1, end, c, thickness)
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm, stamping a
// thickness×thickness square at every step. Pixels outside dst are skipped.
func drawLine(dst *image.RGBA, p0, p1 image.Point, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	half := (thickness - 1) / 2

	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		stamp(dst, x0-half, y0-half, thickness, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func stamp(dst *image.RGBA, x, y, size int, c color.Color) {
	bounds := dst.Bounds()
	for py := y; py < y+size; py++ {
		for px := x; px < x+size; px++ {
			if image.Pt(px, py).In(bounds) {
				dst.Set(px, py, c)
			}
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
