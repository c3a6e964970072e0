// Package vision extracts the pose of a fiducial marker from camera frames.
//
// Marker detection is delegated to a Detector. The package only consumes the
// first marker a detector reports and derives a Pose from its four corners:
//
//   - Center: arithmetic mean of the corners
//   - Angle: direction of the edge from corner 0 to corner 1, in radians,
//     computed with math.Atan2 so it is defined at ±π/2
//
// # Corner Order
//
// Corners follow the ArUco convention: clockwise starting at the marker's
// top-left corner, in image coordinates (X right, Y down). An angle of 0
// therefore means the marker's top edge is horizontal, and positive angles
// rotate clockwise on screen.
//
// # Absent Markers
//
// A frame without a marker is a normal outcome. Extract returns a nil *Pose
// and a nil error; callers must never substitute a previous pose.
//
// # OpenCV
//
// ArucoDetector wraps OpenCV's ArUco module through gocv and is only built
// with the "gocv" build tag. Without it NewArucoDetector returns
// ErrDetectorUnavailable and every other part of the package still works.
package vision
