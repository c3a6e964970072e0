package vision

import (
	"fmt"
	"image"
	"math"
)

// Point is a sub-pixel image coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Corners holds a marker's corners, clockwise from top-left.
type Corners [4]Point

// Marker is a single detection reported by a Detector.
type Marker struct {
	ID      int     `json:"id"`
	Corners Corners `json:"corners"`
}

// Pose is the position and orientation of the first detected marker.
type Pose struct {
	Center   Point   `json:"center"`
	Angle    float64 `json:"angle"`
	Corners  Corners `json:"corners"`
	MarkerID int     `json:"marker_id"`
}

// Center returns the componentwise mean of the corners.
func Center(c Corners) Point {
	var sx, sy float64
	for _, p := range c {
		sx += p.X
		sy += p.Y
	}
	return Point{X: sx / float64(len(c)), Y: sy / float64(len(c))}
}

// Angle returns the rotation of the edge from corner 0 to corner 1 in radians,
// in the range [-π, π].
func Angle(c Corners) float64 {
	return math.Atan2(c[1].Y-c[0].Y, c[1].X-c[0].X)
}

// PoseFromMarker derives the pose of a single marker.
func PoseFromMarker(m Marker) *Pose {
	return &Pose{
		Center:   Center(m.Corners),
		Angle:    Angle(m.Corners),
		Corners:  m.Corners,
		MarkerID: m.ID,
	}
}

// Origin is the marker's top-left corner, where overlay axes are anchored.
func (p *Pose) Origin() Point {
	return p.Corners[0]
}

// Bounds returns the smallest integer rectangle containing every corner.
func (p *Pose) Bounds() image.Rectangle {
	minX, minY := p.Corners[0].X, p.Corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range p.Corners[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// LabelRegion returns the marker bounds grown by scale around the marker
// center. Plate labels are printed next to the marker, so OCR looks there.
func (p *Pose) LabelRegion(scale float64) image.Rectangle {
	if scale <= 0 {
		scale = 1
	}
	b := p.Bounds()
	halfW := float64(b.Dx()) * scale / 2
	halfH := float64(b.Dy()) * scale / 2
	return image.Rect(
		int(math.Floor(p.Center.X-halfW)),
		int(math.Floor(p.Center.Y-halfH)),
		int(math.Ceil(p.Center.X+halfW)),
		int(math.Ceil(p.Center.Y+halfH)),
	)
}
