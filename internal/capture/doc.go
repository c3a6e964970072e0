// Package capture drives the live camera loop: read a frame, extract the
// marker pose, draw overlays, show the frame and poll the keyboard.
//
// The loop is single-threaded and blocking. It ends when the quit key is
// pressed, when the camera fails to deliver a frame, or when its context is
// cancelled. A camera read failure ends the loop but is not returned as an
// error; the caller still gets a Summary of the last processed frame.
//
// Camera and Window are backed by OpenCV and need the "gocv" build tag.
package capture
