//go:build !gocv

package capture

import "image"

// Camera is unavailable without the gocv build tag.
type Camera struct{}

// OpenCamera returns ErrCaptureUnavailable when built without OpenCV.
func OpenCamera(device int) (*Camera, error) {
	_ = device
	return nil, ErrCaptureUnavailable
}

func (c *Camera) Read() (image.Image, error) { return nil, ErrCaptureUnavailable }
func (c *Camera) Close() error               { return nil }

// Window is unavailable without the gocv build tag.
type Window struct{}

// NewWindow returns ErrCaptureUnavailable when built without OpenCV.
func NewWindow(title string) (*Window, error) {
	_ = title
	return nil, ErrCaptureUnavailable
}

func (w *Window) Show(frame image.Image) error { return ErrCaptureUnavailable }
func (w *Window) WaitKey(delayMs int) int      { return -1 }
func (w *Window) Close() error                 { return nil }
