// Package imaging provides the image plumbing around marker detection:
// loading still images, drawing overlays onto frames and encoding results.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward. This matches the corner
// coordinates reported by the vision package, so a pose can be drawn directly
// onto the frame it was extracted from.
//
// # Overlays
//
// Overlay functions draw in place on an *image.RGBA and never fail: drawing
// outside the frame is clipped, and absent inputs (a nil destination or a nil
// pose) are ignored. Use ToRGBA to obtain a drawable copy of any image.
//
//   - DrawGrid: evenly spaced reference grid
//   - DrawPoseAxes: X/Y rotation axes anchored at the marker's top-left
//     corner, with the corner coordinates printed beside it
//
// # Colors
//
// Overlay colors are given as hex strings ("#RRGGBB" or "#RRGGBBAA") and
// parsed with ParseColor.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Drawing functions are not; callers
// must not draw on the same image from several goroutines.
package imaging
