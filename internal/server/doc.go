// Package server implements an MCP (Model Context Protocol) server for form
// validation.
//
// The server exposes the validation pipeline over JSON-RPC 2.0 so that an
// MCP client can inspect individual scans: where the grid was found, how
// each field was measured, and what verdict it received.
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
//   - form_layout: Describe the fields and rules of the configured form
//   - form_detect_grid: Find the grid boundaries and field regions of a scan
//   - form_validate: Validate every field of a scan
//   - form_annotate: Write the PASS/FAIL annotated first field of a scan
//
// # Image Caching
//
// Scans are decoded once, converted to grayscale and cached by path for the
// lifetime of the server process.
//
// # Error Handling
//
// Argument and I/O errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. A scan whose grid cannot be found
// is not a tool failure: the result reports the error and, for
// form_validate, every field as failed.
package server
