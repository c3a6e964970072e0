package capture

import (
	"errors"
	"image"
)

// ErrCaptureUnavailable is returned when the binary was built without OpenCV.
var ErrCaptureUnavailable = errors.New("camera capture unavailable: build with -tags gocv")

// ErrReadFailed reports that the camera returned no frame.
var ErrReadFailed = errors.New("failed to read frame")

// Source delivers frames, typically from a camera.
type Source interface {
	Read() (image.Image, error)
	Close() error
}

// Display shows frames and reports key presses.
type Display interface {
	Show(frame image.Image) error
	// WaitKey waits up to delayMs milliseconds for a key press and returns its
	// code, or -1 if no key was pressed.
	WaitKey(delayMs int) int
	Close() error
}
