package vision

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDetector returns one scripted result per call.
type scriptedDetector struct {
	results [][]Marker
	err     error
	calls   int
	last    image.Image
	closed  bool
}

func (d *scriptedDetector) Detect(gray image.Image) ([]Marker, error) {
	d.last = gray
	if d.err != nil {
		return nil, d.err
	}
	var out []Marker
	if d.calls < len(d.results) {
		out = d.results[d.calls]
	}
	d.calls++
	return out, nil
}

func (d *scriptedDetector) Close() error {
	d.closed = true
	return nil
}

func colorFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 20), uint8(y * 30), 200, 255})
		}
	}
	return img
}

func TestExtractor_NoMarkers(t *testing.T) {
	d := &scriptedDetector{results: [][]Marker{nil}}
	e := NewExtractor(d)

	pose, err := e.Extract(colorFrame(8, 8))
	require.NoError(t, err)
	assert.Nil(t, pose)
}

func TestExtractor_FirstMarkerWins(t *testing.T) {
	d := &scriptedDetector{results: [][]Marker{{
		{ID: 25, Corners: square(0, 0, 10)},
		{ID: 10, Corners: square(50, 50, 10)},
	}}}
	e := NewExtractor(d)

	pose, err := e.Extract(colorFrame(8, 8))
	require.NoError(t, err)
	require.NotNil(t, pose)
	assert.Equal(t, 25, pose.MarkerID)
	assert.Equal(t, Point{X: 5, Y: 5}, pose.Center)
}

func TestExtractor_NoStalePose(t *testing.T) {
	d := &scriptedDetector{results: [][]Marker{
		{{ID: 20, Corners: square(0, 0, 10)}},
		{},
	}}
	e := NewExtractor(d)
	frame := colorFrame(8, 8)

	first, err := e.Extract(frame)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := e.Extract(frame)
	require.NoError(t, err)
	assert.Nil(t, second, "a frame without markers must not reuse the previous pose")
}

func TestExtractor_Deterministic(t *testing.T) {
	m := Marker{ID: 15, Corners: Corners{{12, 3}, {30, 9}, {25, 27}, {7, 21}}}
	d := &scriptedDetector{results: [][]Marker{{m}, {m}}}
	e := NewExtractor(d)
	frame := colorFrame(8, 8)

	a, err := e.Extract(frame)
	require.NoError(t, err)
	b, err := e.Extract(frame)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestExtractor_PassesGrayscale(t *testing.T) {
	d := &scriptedDetector{}
	e := NewExtractor(d)

	_, err := e.Extract(colorFrame(6, 6))
	require.NoError(t, err)
	require.NotNil(t, d.last)

	b := d.last.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := d.last.At(x, y).RGBA()
			if r != g || g != bl {
				t.Fatalf("pixel (%d,%d) not gray: %d %d %d", x, y, r>>8, g>>8, bl>>8)
			}
		}
	}
}

func TestExtractor_DetectorError(t *testing.T) {
	boom := errors.New("boom")
	e := NewExtractor(&scriptedDetector{err: boom})

	pose, err := e.Extract(colorFrame(4, 4))
	assert.Nil(t, pose)
	assert.ErrorIs(t, err, boom)
}

func TestExtractor_NilFrame(t *testing.T) {
	e := NewExtractor(&scriptedDetector{})

	_, err := e.Extract(nil)
	assert.Error(t, err)
}

func TestExtractor_Close(t *testing.T) {
	d := &scriptedDetector{}
	require.NoError(t, NewExtractor(d).Close())
	assert.True(t, d.closed)
}

func TestParseDictionary(t *testing.T) {
	d, err := ParseDictionary("4x4_50")
	require.NoError(t, err)
	assert.Equal(t, Dict4x4_50, d)

	_, err = ParseDictionary("9x9_1")
	assert.Error(t, err)
}

func TestDictionaryNames(t *testing.T) {
	names := DictionaryNames()
	assert.Len(t, names, 7)
	assert.Contains(t, names, "4x4_50")
	assert.IsNonDecreasing(t, names)
}
