package capture

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/plate-vision/internal/vision"
)

func TestWriteSummary(t *testing.T) {
	pose := vision.PoseFromMarker(vision.Marker{
		ID:      10,
		Corners: vision.Corners{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, pose))

	want := "Marker ID: 10\n" +
		"Angle: 0\n" +
		"Plate Type: 96well\n" +
		"Plate Center: (5, 5)\n" +
		", Corners: [[(0, 0) (10, 0) (10, 10) (0, 10)]]\n" +
		", Marker Corners: [(0, 0) (10, 0) (10, 10) (0, 10)]\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSummary_NoPose(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, nil))

	want := "Marker ID: None\n" +
		"Angle: None\n" +
		"Plate Type: Unknown Plate Type\n" +
		"Plate Center: None\n" +
		", Corners: None\n" +
		", Marker Corners: None\n"
	assert.Equal(t, want, buf.String())
}
