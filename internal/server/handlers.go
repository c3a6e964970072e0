package server

import (
	"errors"
	"fmt"
	"image"

	jsoniter "github.com/json-iterator/go"

	"github.com/ironsheep/plate-vision/internal/imaging"
	"github.com/ironsheep/plate-vision/internal/ocr"
	"github.com/ironsheep/plate-vision/internal/plate"
	"github.com/ironsheep/plate-vision/internal/vision"
)

// ErrNoMarker is returned by tools that need a visible marker.
var ErrNoMarker = errors.New("no marker visible in image")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "plate_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments jsoniter.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args jsoniter.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = jsoniter.RawMessage("{}")
	}

	switch name {
	case "plate_detect":
		return s.handlePlateDetect(args)
	case "plate_classify":
		return s.handlePlateClassify(args)
	case "plate_grid_overlay":
		return s.handlePlateGridOverlay(args)
	case "plate_read_label":
		return s.handlePlateReadLabel(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// extract loads path and runs the extractor on it.
func (s *Server) extract(path string) (image.Image, *vision.Pose, error) {
	if s.extractor == nil {
		return nil, nil, vision.ErrDetectorUnavailable
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, err
	}
	pose, err := s.extractor.Extract(img)
	if err != nil {
		return nil, nil, err
	}
	return img, pose, nil
}

// === Detection ===

type plateDetectArgs struct {
	Path        string  `json:"path"`
	Annotate    bool    `json:"annotate"`
	GridSpacing int     `json:"grid_spacing"`
	Scale       float64 `json:"scale"`
}

// DetectResult is the plate_detect tool result. The plate fields are
// inlined next to the pose.
type DetectResult struct {
	Found bool         `json:"found"`
	Pose  *vision.Pose `json:"pose,omitempty"`
	plate.Plate
	Annotated *imaging.EncodedImage `json:"annotated,omitempty"`
}

func (s *Server) handlePlateDetect(args jsoniter.RawMessage) (interface{}, error) {
	var a plateDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	img, pose, err := s.extract(a.Path)
	if err != nil {
		return nil, err
	}

	result := &DetectResult{Found: pose != nil, Pose: pose, Plate: plate.FromMarker(nil)}
	if pose != nil {
		result.Plate = plate.New(pose.MarkerID)
	}

	if a.Annotate {
		canvas := imaging.ToRGBA(img)
		imaging.DrawGrid(canvas, a.GridSpacing, imaging.GridColor)
		imaging.DrawPoseAxes(canvas, pose)
		if a.Scale == 0 {
			a.Scale = 1.0
		}
		enc, err := imaging.EncodePNG(canvas, a.Scale)
		if err != nil {
			return nil, err
		}
		result.Annotated = enc
	}

	return result, nil
}

// === Classification ===

type plateClassifyArgs struct {
	MarkerID *int `json:"marker_id"`
}

func (s *Server) handlePlateClassify(args jsoniter.RawMessage) (interface{}, error) {
	var a plateClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	return plate.FromMarker(a.MarkerID), nil
}

// === Grid Overlay ===

type plateGridOverlayArgs struct {
	Path        string `json:"path"`
	GridSpacing int    `json:"grid_spacing"`
	GridColor   string `json:"grid_color"`
}

func (s *Server) handlePlateGridOverlay(args jsoniter.RawMessage) (interface{}, error) {
	var a plateGridOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.GridOverlay(img, a.GridSpacing, a.GridColor)
}

// === Label OCR ===

type plateReadLabelArgs struct {
	Path     string  `json:"path"`
	Language string  `json:"language"`
	Scale    float64 `json:"scale"`
	Region   *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

func (s *Server) handlePlateReadLabel(args jsoniter.RawMessage) (interface{}, error) {
	var a plateReadLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.language
	}
	if a.Scale == 0 {
		a.Scale = s.labelScale
	}

	if a.Region != nil {
		img, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		return ocr.ReadLabel(img, image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2), a.Language)
	}

	img, pose, err := s.extract(a.Path)
	if err != nil {
		return nil, err
	}
	if pose == nil {
		return nil, ErrNoMarker
	}
	return ocr.ReadLabel(img, pose.LabelRegion(a.Scale), a.Language)
}
