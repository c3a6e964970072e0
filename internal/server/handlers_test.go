package server

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ironsheep/plate-vision/internal/vision"
)

// fixedDetector reports the same markers for every frame.
type fixedDetector struct {
	markers []vision.Marker
	err     error
}

func (d *fixedDetector) Detect(gray image.Image) ([]vision.Marker, error) {
	return d.markers, d.err
}

func (d *fixedDetector) Close() error { return nil }

// brightDetector reports marker 10 only when the frame's first pixel is bright.
type brightDetector struct{}

func (brightDetector) Detect(gray image.Image) ([]vision.Marker, error) {
	r, _, _, _ := gray.At(gray.Bounds().Min.X, gray.Bounds().Min.Y).RGBA()
	if r>>8 < 128 {
		return nil, nil
	}
	return []vision.Marker{squareMarker(10, 2, 2, 4)}, nil
}

func (brightDetector) Close() error { return nil }

func squareMarker(id int, x, y, side float64) vision.Marker {
	return vision.Marker{
		ID: id,
		Corners: vision.Corners{
			{X: x, Y: y}, {X: x + side, Y: y}, {X: x + side, Y: y + side}, {X: x, Y: y + side},
		},
	}
}

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "plate.png")
	writeImage(t, path, img)
	return path
}

// writeTestImage overwrites path with a uniformly filled PNG.
func writeTestImage(t *testing.T, path string, width, height int, c color.Color) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	writeImage(t, path, img)
}

func writeImage(t *testing.T, path string, img image.Image) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("failed to encode image: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	paramsJSON, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: paramsJSON})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResult decodes the JSON text content of a successful tool call.
func toolResult(t *testing.T, resp *MCPResponse) map[string]interface{} {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %+v", content)
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), &out); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
	return out
}

func TestHandleToolsCall_PlateDetect(t *testing.T) {
	d := &fixedDetector{markers: []vision.Marker{squareMarker(20, 10, 10, 20), squareMarker(10, 50, 50, 10)}}
	s := New(vision.NewExtractor(d), nil)
	imgPath := createTestImageFile(t, 80, 80, color.White)

	result := toolResult(t, callTool(t, s, "plate_detect", map[string]interface{}{"path": imgPath}))

	if result["found"] != true {
		t.Fatalf("found: got %v, want true", result["found"])
	}
	if result["plate_type"] != "12well" {
		t.Errorf("plate_type: got %v, want 12well", result["plate_type"])
	}
	if result["wells"] != float64(12) {
		t.Errorf("wells: got %v, want 12", result["wells"])
	}
	if result["marker_id"] != float64(20) {
		t.Errorf("marker_id: got %v, want 20 (first marker)", result["marker_id"])
	}
	pose := result["pose"].(map[string]interface{})
	center := pose["center"].(map[string]interface{})
	if center["x"] != float64(20) || center["y"] != float64(20) {
		t.Errorf("center: got %v, want (20, 20)", center)
	}
	if _, ok := result["annotated"]; ok {
		t.Error("annotated image should be omitted unless requested")
	}
}

func TestHandleToolsCall_PlateDetectAnnotated(t *testing.T) {
	d := &fixedDetector{markers: []vision.Marker{squareMarker(25, 10, 10, 20)}}
	s := New(vision.NewExtractor(d), nil)
	imgPath := createTestImageFile(t, 80, 60, color.White)

	result := toolResult(t, callTool(t, s, "plate_detect", map[string]interface{}{
		"path":         imgPath,
		"annotate":     true,
		"grid_spacing": 20,
		"scale":        0.5,
	}))

	annotated, ok := result["annotated"].(map[string]interface{})
	if !ok {
		t.Fatal("expected annotated image")
	}
	if annotated["width"] != float64(40) || annotated["height"] != float64(30) {
		t.Errorf("annotated size: got %vx%v, want 40x30", annotated["width"], annotated["height"])
	}
	if annotated["mime_type"] != "image/png" {
		t.Errorf("mime_type: got %v", annotated["mime_type"])
	}
}

func TestHandleToolsCall_PlateDetectRewrittenFile(t *testing.T) {
	s := New(vision.NewExtractor(brightDetector{}), nil)
	imgPath := createTestImageFile(t, 20, 20, color.White)

	result := toolResult(t, callTool(t, s, "plate_detect", map[string]interface{}{"path": imgPath}))
	if result["found"] != true {
		t.Fatalf("first call: found = %v, want true", result["found"])
	}

	// Overwrite the same path with a frame that has no marker.
	writeTestImage(t, imgPath, 20, 20, color.Black)
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(imgPath, later, later); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}

	result = toolResult(t, callTool(t, s, "plate_detect", map[string]interface{}{"path": imgPath}))
	if result["found"] != false {
		t.Errorf("after rewrite: found = %v, want false", result["found"])
	}
	if _, ok := result["pose"]; ok {
		t.Error("a pose from the replaced frame must not be reported")
	}
}

func TestHandleToolsCall_PlateDetectNoMarker(t *testing.T) {
	s := New(vision.NewExtractor(&fixedDetector{}), nil)
	imgPath := createTestImageFile(t, 40, 40, color.White)

	result := toolResult(t, callTool(t, s, "plate_detect", map[string]interface{}{"path": imgPath}))

	if result["found"] != false {
		t.Errorf("found: got %v, want false", result["found"])
	}
	if _, ok := result["pose"]; ok {
		t.Error("pose should be omitted when no marker is found")
	}
	if result["plate_type"] != "Unknown Plate Type" {
		t.Errorf("plate_type: got %v", result["plate_type"])
	}
	if v, ok := result["marker_id"]; !ok || v != nil {
		t.Errorf("marker_id: got %v, want null", v)
	}
}

func TestHandleToolsCall_PlateDetectErrors(t *testing.T) {
	imgPath := createTestImageFile(t, 10, 10, color.White)

	tests := []struct {
		name      string
		server    *Server
		args      map[string]interface{}
		wantInErr string
	}{
		{"no detector", New(nil, nil), map[string]interface{}{"path": imgPath}, vision.ErrDetectorUnavailable.Error()},
		{"missing path", New(vision.NewExtractor(&fixedDetector{}), nil), map[string]interface{}{}, "path is required"},
		{"missing file", New(vision.NewExtractor(&fixedDetector{}), nil), map[string]interface{}{"path": "/nonexistent.png"}, "failed to open"},
		{
			"detector failure",
			New(vision.NewExtractor(&fixedDetector{err: errors.New("boom")}), nil),
			map[string]interface{}{"path": imgPath},
			"boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, tt.server, "plate_detect", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("error code: got %d, want -32000", resp.Error.Code)
			}
			if data, _ := resp.Error.Data.(string); !strings.Contains(data, tt.wantInErr) {
				t.Errorf("error data %q should contain %q", data, tt.wantInErr)
			}
		})
	}
}

func TestHandleToolsCall_PlateClassify(t *testing.T) {
	tests := []struct {
		name  string
		args  map[string]interface{}
		want  string
		wells float64
	}{
		{"96 well", map[string]interface{}{"marker_id": 10}, "96well", 96},
		{"24 well", map[string]interface{}{"marker_id": 15}, "24well", 24},
		{"12 well", map[string]interface{}{"marker_id": 20}, "12well", 12},
		{"6 well", map[string]interface{}{"marker_id": 25}, "6well", 6},
		{"unknown", map[string]interface{}{"marker_id": 999}, "Unknown Plate Type", 0},
		{"absent", map[string]interface{}{}, "Unknown Plate Type", 0},
	}

	s := New(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toolResult(t, callTool(t, s, "plate_classify", tt.args))
			if result["plate_type"] != tt.want {
				t.Errorf("plate_type: got %v, want %s", result["plate_type"], tt.want)
			}
			if result["wells"] != tt.wells {
				t.Errorf("wells: got %v, want %v", result["wells"], tt.wells)
			}
		})
	}
}

func TestHandleToolsCall_PlateGridOverlay(t *testing.T) {
	s := New(nil, nil)
	imgPath := createTestImageFile(t, 100, 60, color.White)

	result := toolResult(t, callTool(t, s, "plate_grid_overlay", map[string]interface{}{"path": imgPath}))

	if result["width"] != float64(100) || result["height"] != float64(60) {
		t.Errorf("size: got %vx%v, want 100x60", result["width"], result["height"])
	}
	if data, _ := result["image_base64"].(string); data == "" {
		t.Error("expected base64 image data")
	}
}

func TestHandleToolsCall_PlateReadLabelNoMarker(t *testing.T) {
	s := New(vision.NewExtractor(&fixedDetector{}), nil)
	imgPath := createTestImageFile(t, 40, 40, color.White)

	resp := callTool(t, s, "plate_read_label", map[string]interface{}{"path": imgPath})
	if resp.Error == nil {
		t.Fatal("expected error when no marker is visible")
	}
	if data, _ := resp.Error.Data.(string); data != ErrNoMarker.Error() {
		t.Errorf("error data: got %q, want %q", data, ErrNoMarker.Error())
	}
}

func TestHandleToolsCall_PlateReadLabelRegionOutside(t *testing.T) {
	s := New(nil, nil)
	imgPath := createTestImageFile(t, 40, 40, color.White)

	resp := callTool(t, s, "plate_read_label", map[string]interface{}{
		"path":   imgPath,
		"region": map[string]interface{}{"x1": 100, "y1": 100, "x2": 120, "y2": 120},
	})
	if resp.Error == nil {
		t.Fatal("expected error for region outside the image")
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := New(nil, nil)
	resp := callTool(t, s, "image_load", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
	if data, _ := resp.Error.Data.(string); data != "unknown tool: image_load" {
		t.Errorf("error data: got %q", data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil, nil)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: []byte(`"not an object"`)})
	if resp.Error == nil {
		t.Fatal("expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("error code: got %d, want -32602", resp.Error.Code)
	}
}
