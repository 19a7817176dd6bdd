package server

import (
	"encoding/json"
	"fmt"

	"github.com/mapsmith/mapgrid-mcp/internal/griddetect"
	"github.com/mapsmith/mapgrid-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "grid_detect", "map_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the map from cache as needed
//  4. Calls the appropriate griddetect/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Map Information
	case "map_load":
		return s.handleMapLoad(args)

	// Grid Detection
	case "grid_detect":
		return s.handleGridDetect(args)
	case "grid_overlay":
		return s.handleGridOverlay(args)
	case "grid_edges":
		return s.handleGridEdges(args)

	// Map Inspection
	case "map_crop":
		return s.handleMapCrop(args)
	case "map_crop_cell":
		return s.handleMapCropCell(args)
	case "map_measure":
		return s.handleMapMeasure(args)
	case "map_cell_at":
		return s.handleMapCellAt(args)
	case "map_sample_color":
		return s.handleMapSampleColor(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Map Information Handlers ===

type mapLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleMapLoad(args json.RawMessage) (interface{}, error) {
	var a mapLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadMapInfo(s.cache, a.Path)
}

// === Grid Detection Handlers ===

type gridDetectArgs struct {
	Path    string `json:"path"`
	MinCell int    `json:"min_cell"`
	MaxCell int    `json:"max_cell"`
	TopK    int    `json:"top_k"`
	Smooth  bool   `json:"smooth"`
}

// GridDetectResult is the grid_detect tool response.
type GridDetectResult struct {
	// GridFound reports whether a periodic grid was detected at all.
	GridFound bool `json:"grid_found"`

	// CellSize is the detected cell size in pixels, 0 when no grid was found.
	CellSize int `json:"cell_size"`

	// XOffset and YOffset locate the first gridline from the map's left and
	// top edges, each in [0, CellSize).
	XOffset int `json:"x_offset"`
	YOffset int `json:"y_offset"`

	// SNR is the line-contrast signal-to-noise ratio of the winning grid.
	SNR float64 `json:"snr"`

	// Confident reports whether the SNR clears the threshold consumers
	// should require before trusting the detection.
	Confident bool `json:"confident"`
}

func (s *Server) handleGridDetect(args json.RawMessage) (interface{}, error) {
	var a gridDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	hyp, err := griddetect.Detect(img, a.config())
	if err != nil {
		return nil, err
	}

	return &GridDetectResult{
		GridFound: hyp.Found(),
		CellSize:  hyp.CellSize,
		XOffset:   hyp.XOffset,
		YOffset:   hyp.YOffset,
		SNR:       hyp.SNR,
		Confident: hyp.Confident(),
	}, nil
}

// config builds a detection config with defaults applied for omitted fields.
func (a gridDetectArgs) config() griddetect.Config {
	cfg := griddetect.DefaultConfig()
	if a.MinCell != 0 {
		cfg.MinCell = a.MinCell
	}
	if a.MaxCell != 0 {
		cfg.MaxCell = a.MaxCell
	}
	if a.TopK != 0 {
		cfg.TopK = a.TopK
	}
	cfg.Smooth = a.Smooth
	return cfg
}

type gridOverlayArgs struct {
	Path      string `json:"path"`
	CellSize  int    `json:"cell_size"`
	XOffset   int    `json:"x_offset"`
	YOffset   int    `json:"y_offset"`
	ShowCells bool   `json:"show_cells"`
	LineColor string `json:"line_color"`
}

func (s *Server) handleGridOverlay(args json.RawMessage) (interface{}, error) {
	var a gridOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.LineColor == "" {
		a.LineColor = "#ff0000"
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	// Without an explicit cell size, detect the grid first.
	if a.CellSize == 0 {
		hyp, err := griddetect.Detect(img, griddetect.DefaultConfig())
		if err != nil {
			return nil, err
		}
		if !hyp.Found() {
			return nil, fmt.Errorf("no grid detected in %s; pass cell_size explicitly", a.Path)
		}
		a.CellSize = hyp.CellSize
		a.XOffset = hyp.XOffset
		a.YOffset = hyp.YOffset
	}

	return imaging.GridOverlay(img, a.CellSize, a.XOffset, a.YOffset, a.ShowCells, a.LineColor)
}

func (s *Server) handleGridEdges(args json.RawMessage) (interface{}, error) {
	var a mapLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgePreview(img)
}

// === Map Inspection Handlers ===

type mapCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleMapCrop(args json.RawMessage) (interface{}, error) {
	var a mapCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, imaging.Region{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}, a.Scale)
}

type mapCropCellArgs struct {
	Path     string  `json:"path"`
	Col      int     `json:"col"`
	Row      int     `json:"row"`
	CellSize int     `json:"cell_size"`
	XOffset  int     `json:"x_offset"`
	YOffset  int     `json:"y_offset"`
	Scale    float64 `json:"scale"`
}

func (s *Server) handleMapCropCell(args json.RawMessage) (interface{}, error) {
	var a mapCropCellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropCell(img, a.Col, a.Row, a.CellSize, a.XOffset, a.YOffset, a.Scale)
}

type mapMeasureArgs struct {
	Path     string `json:"path"`
	X1       int    `json:"x1"`
	Y1       int    `json:"y1"`
	X2       int    `json:"x2"`
	Y2       int    `json:"y2"`
	CellSize int    `json:"cell_size"`
}

func (s *Server) handleMapMeasure(args json.RawMessage) (interface{}, error) {
	var a mapMeasureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.MeasureDistance(img, a.X1, a.Y1, a.X2, a.Y2, a.CellSize)
}

type mapCellAtArgs struct {
	X        int `json:"x"`
	Y        int `json:"y"`
	CellSize int `json:"cell_size"`
	XOffset  int `json:"x_offset"`
	YOffset  int `json:"y_offset"`
}

func (s *Server) handleMapCellAt(args json.RawMessage) (interface{}, error) {
	var a mapCellAtArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.CellSize < 2 {
		return nil, fmt.Errorf("cell size must be at least 2, got %d", a.CellSize)
	}
	return imaging.CellAt(a.X, a.Y, a.CellSize, a.XOffset, a.YOffset), nil
}

type mapSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleMapSampleColor(args json.RawMessage) (interface{}, error) {
	var a mapSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
