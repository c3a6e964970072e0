package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "plate_detect",
			Description: "Detect the first ArUco marker in an image and report its center, rotation angle (radians), corners and the well-plate type it identifies. Reports found=false when no marker is visible.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Return a PNG with the marker axes drawn. Default false",
						"default":     false,
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Also draw a reference grid with this spacing when annotating. Default 0 (no grid)",
						"default":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor for the annotated image. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_classify",
			Description: "Map a marker identifier to its well-plate type (10=96well, 15=24well, 20=12well, 25=6well). Anything else is 'Unknown Plate Type'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"marker_id": map[string]interface{}{
						"type":        "integer",
						"description": "Marker identifier; omit when no marker was observed",
					},
				},
			},
		},
		{
			Name:        "plate_grid_overlay",
			Description: "Draw an evenly spaced reference grid on an image and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Grid line spacing in pixels. Default 50",
						"default":     50,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid color as hex (#RRGGBB or #RRGGBBAA). Default #646464",
						"default":     "#646464",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_read_label",
			Description: "Read the text printed on the plate label. By default the region around the detected marker is used; pass region to read an explicit rectangle instead.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default eng",
						"default":     "eng",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Size of the searched region relative to the marker. Default 3.0",
						"default":     3.0,
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Explicit region {x1, y1, x2, y2}; skips marker detection",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
