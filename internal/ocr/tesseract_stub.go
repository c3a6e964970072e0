//go:build !cgo

package ocr

func recognize(png []byte, language string) (string, []Word, error) {
	_, _ = png, language
	return "", nil, ErrOCRUnavailable
}

// Version reports that Tesseract is not linked.
func Version() string {
	return "unavailable"
}
