//go:build !gocv

package vision

import "image"

// ArucoDetector is unavailable without the gocv build tag.
type ArucoDetector struct{}

// NewArucoDetector returns ErrDetectorUnavailable when built without OpenCV.
func NewArucoDetector(dict Dictionary) (*ArucoDetector, error) {
	_ = dict
	return nil, ErrDetectorUnavailable
}

// Detect always returns ErrDetectorUnavailable.
func (a *ArucoDetector) Detect(gray image.Image) ([]Marker, error) {
	_ = gray
	return nil, ErrDetectorUnavailable
}

// Close is a no-op.
func (a *ArucoDetector) Close() error {
	return nil
}
