//go:build cgo

package ocr

import (
	"github.com/otiai10/gosseract/v2"
)

// recognize runs Tesseract on a PNG-encoded image.
func recognize(png []byte, language string) (string, []Word, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", nil, wrapOCR("language setup", err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", nil, wrapOCR("image setup", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", nil, wrapOCR("recognition", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Word boxes are optional; the text is still useful.
		return text, []Word{}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     box.Box,
		})
	}
	return text, words, nil
}

// Version reports the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}
