// Package server exposes plate detection as MCP (Model Context Protocol) tools.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line, so an
// MCP client can ask where a plate is and what kind it is from a still
// photo of the deck.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - plate_detect: Find the first marker, report its pose and plate type,
//     optionally returning an annotated PNG
//   - plate_classify: Map a marker identifier to a plate type
//   - plate_grid_overlay: Draw a reference grid on an image
//   - plate_read_label: OCR the label printed next to the marker
//
// A photo without a marker is not an error: plate_detect reports
// "found": false and plate type "Unknown Plate Type".
//
// # Error Handling
//
// Tool failures are JSON-RPC error responses with code -32000 and the Go
// error string as data. When the binary is built without OpenCV, the
// detection tools fail with the detector-unavailable error while the
// remaining tools keep working.
//
// # Image Caching
//
// Images are decoded once per path and kept for the lifetime of the process.
package server
