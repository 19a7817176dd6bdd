package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Map Information
		{
			Name:        "map_load",
			Description: "Load a battle map image and return its dimensions, format, and file metadata.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image (PNG, JPEG, GIF, or WebP)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Grid Detection
		{
			Name:        "grid_detect",
			Description: "Detect whether the map carries a regular square grid and recover its cell size in pixels and sub-cell x/y offset. Returns grid_found=false when no periodic line structure is present.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image",
					},
					"min_cell": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest cell size in pixels to consider (default 20)",
						"default":     20,
					},
					"max_cell": map[string]interface{}{
						"type":        "integer",
						"description": "Largest cell size in pixels to consider (default 150)",
						"default":     150,
					},
					"top_k": map[string]interface{}{
						"type":        "integer",
						"description": "How many period candidates to score for offset alignment (default 10)",
						"default":     10,
					},
					"smooth": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply a light Gaussian blur before detection; helps on noisy JPEG scans",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_overlay",
			Description: "Render a grid over the map for visual verification. Uses the supplied cell size and offsets, or runs detection first when cell_size is omitted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image",
					},
					"cell_size": map[string]interface{}{
						"type":        "integer",
						"description": "Grid cell size in pixels. Omit to detect automatically.",
					},
					"x_offset": map[string]interface{}{
						"type":        "integer",
						"description": "Horizontal offset of the first gridline (default 0)",
					},
					"y_offset": map[string]interface{}{
						"type":        "integer",
						"description": "Vertical offset of the first gridline (default 0)",
					},
					"show_cells": map[string]interface{}{
						"type":        "boolean",
						"description": "Label each cell with its column,row index",
						"default":     false,
					},
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Gridline color as hex (default #ff0000)",
						"default":     "#ff0000",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_edges",
			Description: "Render the edge fields the grid detector derives from the map as a grayscale image. Gridlines show up as bright line families; useful for debugging a detection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image",
					},
				},
				"required": []string{"path"},
			},
		},

		// Map Inspection
		{
			Name:        "map_crop",
			Description: "Crop a rectangular region from the map and return it as base64-encoded PNG. Use with a scale factor to zoom into gridline details.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "map_crop_cell",
			Description: "Crop a single grid cell plus a one-cell margin around it, given the cell index and grid geometry. The margin shows neighboring gridlines so alignment errors are visible.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image",
					},
					"col":       map[string]interface{}{"type": "integer", "description": "Cell column index (0-based)"},
					"row":       map[string]interface{}{"type": "integer", "description": "Cell row index (0-based)"},
					"cell_size": map[string]interface{}{"type": "integer", "description": "Grid cell size in pixels"},
					"x_offset":  map[string]interface{}{"type": "integer", "description": "Horizontal grid offset (default 0)"},
					"y_offset":  map[string]interface{}{"type": "integer", "description": "Vertical grid offset (default 0)"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "col", "row", "cell_size"},
			},
		},
		{
			Name:        "map_measure",
			Description: "Measure the distance between two points in pixels, and in grid cells when a cell size is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image",
					},
					"x1": map[string]interface{}{"type": "integer", "description": "First point X"},
					"y1": map[string]interface{}{"type": "integer", "description": "First point Y"},
					"x2": map[string]interface{}{"type": "integer", "description": "Second point X"},
					"y2": map[string]interface{}{"type": "integer", "description": "Second point Y"},
					"cell_size": map[string]interface{}{
						"type":        "integer",
						"description": "Grid cell size in pixels; when given, the distance is also reported in cells",
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "map_cell_at",
			Description: "Map a pixel coordinate to its grid cell index and the cell's pixel bounds, given the grid geometry.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x":         map[string]interface{}{"type": "integer", "description": "Pixel X coordinate"},
					"y":         map[string]interface{}{"type": "integer", "description": "Pixel Y coordinate"},
					"cell_size": map[string]interface{}{"type": "integer", "description": "Grid cell size in pixels"},
					"x_offset":  map[string]interface{}{"type": "integer", "description": "Horizontal grid offset (default 0)"},
					"y_offset":  map[string]interface{}{"type": "integer", "description": "Vertical grid offset (default 0)"},
				},
				"required": []string{"x", "y", "cell_size"},
			},
		},
		{
			Name:        "map_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, in hex, RGBA, and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
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
