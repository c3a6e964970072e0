// Package ocr reads the printed label next to a plate's fiducial marker
// using Tesseract (via gosseract/v2).
//
// The marker says what kind of plate is on the deck; the label says which
// one. ReadLabel crops the region around the marker, runs OCR on it and
// returns the recognized words with their confidence and position in the
// original frame.
//
// # Prerequisites
//
// Tesseract and its language data must be installed and the binary built
// with cgo enabled:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng libtesseract-dev
//   - macOS: brew install tesseract
//
// Without cgo every call returns ErrOCRUnavailable.
package ocr
