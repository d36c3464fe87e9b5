// Package server implements the MCP (Model Context Protocol) server for the
// pixel-map Sobel tools.
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
//   - pixmap_load: Read a P2/P5 file and report its metadata
//   - pixmap_sobel: Compute a normalized Sobel edge map and write it out
//   - pixmap_import: Convert a PNG, JPEG or other common image to an 8-bit pixel map
//   - pixmap_compare: Diff a computed file against a golden reference
//   - pixmap_compare_suite: Run a YAML list of comparisons in order
//
// # Image Caching
//
// Source images are cached by path for the lifetime of the process. Files
// written by pixmap_sobel and pixmap_import are evicted from the cache so a later load sees the
// new content.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which includes the file path for codec errors
//
// # Logging
//
// Failures are logged with the standard log package; setting
// PIXMAP_MCP_LOG_LEVEL=debug also logs every tool call.
package server
