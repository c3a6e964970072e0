//go:build gocv

package capture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Camera reads frames from a system video device.
type Camera struct {
	device int
	webcam *gocv.VideoCapture
	mat    gocv.Mat
}

// OpenCamera opens the video device with the given index.
func OpenCamera(device int) (*Camera, error) {
	webcam, err := gocv.VideoCaptureDevice(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", device, err)
	}
	return &Camera{device: device, webcam: webcam, mat: gocv.NewMat()}, nil
}

// Read implements Source.
func (c *Camera) Read() (image.Image, error) {
	if ok := c.webcam.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, fmt.Errorf("camera %d: %w", c.device, ErrReadFailed)
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	return img, nil
}

// Close releases the device.
func (c *Camera) Close() error {
	c.mat.Close()
	return c.webcam.Close()
}

// Window is an OpenCV highgui window.
type Window struct {
	window *gocv.Window
}

// NewWindow opens a titled window.
func NewWindow(title string) (*Window, error) {
	return &Window{window: gocv.NewWindow(title)}, nil
}

// Show implements Display.
func (w *Window) Show(frame image.Image) error {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("failed to convert frame: %w", err)
	}
	defer mat.Close()

	w.window.IMShow(mat)
	return nil
}

// WaitKey implements Display.
func (w *Window) WaitKey(delayMs int) int {
	return w.window.WaitKey(delayMs)
}

// Close destroys the window.
func (w *Window) Close() error {
	w.window.Close()
	return nil
}
