package vision

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/effect"
)

// ErrDetectorUnavailable is returned when the binary was built without OpenCV.
var ErrDetectorUnavailable = errors.New("marker detector unavailable: build with -tags gocv")

// Detector finds fiducial markers in a grayscale image.
//
// Markers are returned in the detector's own order; callers must not assume
// they are sorted by identifier. An empty result with a nil error means no
// marker is visible.
type Detector interface {
	Detect(gray image.Image) ([]Marker, error)
	Close() error
}

// Dictionary names a predefined ArUco marker dictionary.
type Dictionary string

// Supported dictionaries. Dict4x4_50 produces identifiers 0-49.
const (
	Dict4x4_50   Dictionary = "4x4_50"
	Dict4x4_100  Dictionary = "4x4_100"
	Dict5x5_50   Dictionary = "5x5_50"
	Dict5x5_100  Dictionary = "5x5_100"
	Dict6x6_50   Dictionary = "6x6_50"
	Dict6x6_250  Dictionary = "6x6_250"
	DictOriginal Dictionary = "original"
)

var dictionaries = map[Dictionary]bool{
	Dict4x4_50:   true,
	Dict4x4_100:  true,
	Dict5x5_50:   true,
	Dict5x5_100:  true,
	Dict6x6_50:   true,
	Dict6x6_250:  true,
	DictOriginal: true,
}

// ParseDictionary validates a dictionary name.
func ParseDictionary(name string) (Dictionary, error) {
	d := Dictionary(name)
	if !dictionaries[d] {
		return "", fmt.Errorf("unknown marker dictionary %q (supported: %v)", name, DictionaryNames())
	}
	return d, nil
}

// DictionaryNames lists the supported dictionary names in sorted order.
func DictionaryNames() []string {
	names := make([]string, 0, len(dictionaries))
	for d := range dictionaries {
		names = append(names, string(d))
	}
	sort.Strings(names)
	return names
}

// Extractor computes marker poses from frames.
type Extractor struct {
	detector Detector
}

// NewExtractor returns an Extractor that delegates detection to d.
func NewExtractor(d Detector) *Extractor {
	return &Extractor{detector: d}
}

// Extract desaturates the frame, runs the detector and returns the pose of the
// first reported marker. It returns nil, nil when no marker is visible.
func (e *Extractor) Extract(frame image.Image) (*Pose, error) {
	if frame == nil {
		return nil, errors.New("nil frame")
	}

	gray := effect.Grayscale(frame)

	markers, err := e.detector.Detect(gray)
	if err != nil {
		return nil, fmt.Errorf("failed to detect markers: %w", err)
	}
	if len(markers) == 0 {
		return nil, nil
	}

	return PoseFromMarker(markers[0]), nil
}

// Close releases the underlying detector.
func (e *Extractor) Close() error {
	return e.detector.Close()
}
