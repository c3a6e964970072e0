//go:build gocv

package vision

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

var dictionaryCodes = map[Dictionary]gocv.ArucoDictionaryCode{
	Dict4x4_50:   gocv.ArucoDict4x4_50,
	Dict4x4_100:  gocv.ArucoDict4x4_100,
	Dict5x5_50:   gocv.ArucoDict5x5_50,
	Dict5x5_100:  gocv.ArucoDict5x5_100,
	Dict6x6_50:   gocv.ArucoDict6x6_50,
	Dict6x6_250:  gocv.ArucoDict6x6_250,
	DictOriginal: gocv.ArucoDictArucoOriginal,
}

// ArucoDetector detects ArUco markers with OpenCV.
//
// The underlying OpenCV detector is not safe for concurrent use, so Detect
// calls are serialized.
type ArucoDetector struct {
	mu       sync.Mutex
	detector gocv.ArucoDetector
}

// NewArucoDetector creates a detector for the given predefined dictionary
// using OpenCV's default detector parameters.
func NewArucoDetector(dict Dictionary) (*ArucoDetector, error) {
	code, ok := dictionaryCodes[dict]
	if !ok {
		return nil, fmt.Errorf("unknown marker dictionary %q", dict)
	}

	d := gocv.NewArucoDetectorWithParams(
		gocv.GetPredefinedDictionary(code),
		gocv.NewArucoDetectorParameters(),
	)
	return &ArucoDetector{detector: d}, nil
}

// Detect implements Detector.
func (a *ArucoDetector) Detect(gray image.Image) ([]Marker, error) {
	src, err := gocv.ImageToMatRGB(gray)
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	defer src.Close()

	mat := gocv.NewMat()
	defer mat.Close()
	gocv.CvtColor(src, &mat, gocv.ColorBGRToGray)

	a.mu.Lock()
	corners, ids, _ := a.detector.DetectMarkers(mat)
	a.mu.Unlock()

	markers := make([]Marker, 0, len(ids))
	for i, id := range ids {
		if i >= len(corners) || len(corners[i]) < 4 {
			continue
		}
		var c Corners
		for j := range c {
			c[j] = Point{X: float64(corners[i][j].X), Y: float64(corners[i][j].Y)}
		}
		markers = append(markers, Marker{ID: id, Corners: c})
	}
	return markers, nil
}

// Close releases the OpenCV detector.
func (a *ArucoDetector) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector.Close()
	return nil
}
