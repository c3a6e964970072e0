package capture

import (
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/plate-vision/internal/plate"
	"github.com/ironsheep/plate-vision/internal/vision"
)

const none = "None"

// WriteSummary prints the marker identifier, angle, plate type and geometry
// of pose. A nil pose prints "None" for every value it would have supplied.
func WriteSummary(w io.Writer, pose *vision.Pose) error {
	id, angle, center, corners, marker := none, none, none, none, none
	p := plate.FromMarker(nil)
	if pose != nil {
		id = fmt.Sprint(pose.MarkerID)
		angle = fmt.Sprint(pose.Angle)
		center = pose.Center.String()
		marker = formatCorners(pose.Corners)
		corners = "[" + marker + "]"
		p = plate.New(pose.MarkerID)
	}

	_, err := fmt.Fprintf(w, "Marker ID: %s\nAngle: %s\nPlate Type: %s\nPlate Center: %s\n, Corners: %s\n, Marker Corners: %s\n",
		id, angle, p.Type, center, corners, marker)
	return err
}

func formatCorners(c vision.Corners) string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
