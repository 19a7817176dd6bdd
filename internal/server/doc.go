// Package server implements the MCP (Model Context Protocol) server for
// battle-map grid analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes grid detection and
// map inspection capabilities through the MCP protocol, so MCP-compatible
// clients can recover and verify the grid geometry of tabletop map images.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Map information:
//   - map_load: Load a map and get metadata
//
// Grid detection:
//   - grid_detect: Detect the map's grid cell size and offsets
//   - grid_overlay: Render a grid over the map for visual verification
//   - grid_edges: Render the edge fields the detector works from
//
// Map inspection:
//   - map_crop: Extract and optionally scale a rectangular region
//   - map_crop_cell: Extract one grid cell plus its neighbors
//   - map_measure: Measure a distance in pixels and grid cells
//   - map_cell_at: Map a pixel coordinate to its grid cell
//   - map_sample_color: Get the color at a pixel
//
// # Map Caching
//
// The server maintains an in-memory cache of loaded maps. Maps are cached by
// path and reused across multiple tool calls, avoiding redundant decodes of
// multi-megapixel images. The cache persists for the lifetime of the server
// process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
