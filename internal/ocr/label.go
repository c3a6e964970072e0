package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/plate-vision/internal/imaging"
)

// ErrOCRUnavailable is returned when the binary was built without cgo.
var ErrOCRUnavailable = errors.New("OCR unavailable: build with cgo and Tesseract installed")

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Word is one recognized word and its bounding box in frame coordinates.
type Word struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"`
	Bounds     image.Rectangle `json:"bounds"`
}

// LabelResult is the text read from a label region.
type LabelResult struct {
	Text   string          `json:"text"`
	Words  []Word          `json:"words"`
	Region image.Rectangle `json:"region"`
}

// ReadLabel runs OCR on the part of img inside region. The region is clipped
// to the image; word bounds are translated back to img's coordinates.
func ReadLabel(img image.Image, region image.Rectangle, language string) (*LabelResult, error) {
	if language == "" {
		language = DefaultLanguage
	}

	cropped, err := imaging.CropRegion(img, region)
	if err != nil {
		return nil, err
	}
	clipped := region.Intersect(img.Bounds())

	var buf bytes.Buffer
	if err := imaging.WritePNG(&buf, cropped); err != nil {
		return nil, err
	}

	text, words, err := recognize(buf.Bytes(), language)
	if err != nil {
		return nil, err
	}

	for i := range words {
		words[i].Bounds = words[i].Bounds.Add(clipped.Min)
	}

	return &LabelResult{
		Text:   strings.TrimSpace(text),
		Words:  words,
		Region: clipped,
	}, nil
}

// wrapOCR annotates a Tesseract failure.
func wrapOCR(step string, err error) error {
	return fmt.Errorf("OCR %s failed: %w", step, err)
}
